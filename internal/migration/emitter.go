// internal/migration/emitter.go

// Package migration serializes the classification results into the SQL
// migration the inventory database consumes. The shape is fixed: column
// additions, one annotated upsert per classified SKU, the classification
// view and the 9-grid policy table.
package migration

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/wms-classify/internal/domain"
)

// metersPerInch converts the imperial carton dimensions to cubic meters.
const metersPerInch = 0.0254

// Emitter renders the migration script.
type Emitter struct {
	// Suffix used to widen the upsert key match, since the target table
	// may hold either code variant.
	Suffix string

	// Now is injectable so rendered headers are reproducible under test.
	Now func() time.Time
}

func NewEmitter(suffix string) *Emitter {
	return &Emitter{Suffix: suffix, Now: time.Now}
}

// Render produces the full migration for every record that carries an ABC
// class, ordered by descending annual consumption value.
func (e *Emitter) Render(records []*domain.SKURecord, policies []domain.ClassificationPolicy) string {
	sorted := make([]*domain.SKURecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnnualValue > sorted[j].AnnualValue
	})

	var b strings.Builder
	e.writeHeader(&b)
	e.writeColumns(&b)
	e.writeUpserts(&b, sorted)
	e.writeView(&b)
	e.writePolicies(&b, policies)
	e.writeGrants(&b)
	return b.String()
}

// WriteFile renders the migration and writes it to path.
func (e *Emitter) WriteFile(path string, records []*domain.SKURecord, policies []domain.ClassificationPolicy) error {
	sql := e.Render(records, policies)
	if err := os.WriteFile(path, []byte(sql), 0644); err != nil {
		return fmt.Errorf("failed to write migration %s: %w", path, err)
	}
	return nil
}

func (e *Emitter) writeHeader(b *strings.Builder) {
	rule := "-- " + strings.Repeat("=", 75)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "-- SKU Classification & Master Data Import")
	fmt.Fprintln(b, "--")
	fmt.Fprintln(b, "-- Auto-generated by wms-classify")
	fmt.Fprintf(b, "-- Generated: %s\n", e.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(b, "--")
	fmt.Fprintln(b, "-- Data sources: inventory depletion, item view, item activity reports")
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)
}

func (e *Emitter) writeColumns(b *strings.Builder) {
	writeSection(b, "PART 1: Add classification columns to skus table")
	for _, col := range []string{
		"unit_cost", "annual_consumption_value", "avg_weekly_demand",
		"cv_demand", "dimensions_cbm", "length_in", "width_in", "height_in",
	} {
		fmt.Fprintf(b, "ALTER TABLE skus ADD COLUMN IF NOT EXISTS %s NUMERIC;\n", col)
	}
	fmt.Fprintln(b)
}

func (e *Emitter) writeUpserts(b *strings.Builder, sorted []*domain.SKURecord) {
	writeSection(b, "PART 2: Update/Insert SKU master data + classification")

	for _, rec := range sorted {
		if rec.ABCClass == "" {
			continue
		}
		e.writeUpsert(b, rec)
	}
}

func (e *Emitter) writeUpsert(b *strings.Builder, rec *domain.SKURecord) {
	cvSQL := "NULL"
	if rec.HasFiniteCV() {
		cvSQL = fixed(*rec.CV, 4)
	}

	estimated := ""
	if rec.XYZEstimated {
		estimated = " (XYZ estimated)"
	}
	fmt.Fprintf(b, "-- %s: %s | $%s/yr | Avg %s/wk | CV=%s | Cost $%s%s\n",
		rec.SKUCode, rec.MatrixCell(),
		groupThousands(rec.AnnualValue),
		fixed(rec.AvgWeeklyShipments, 1),
		cvSQL,
		fixed(rec.UnitCost, 2),
		estimated)

	fmt.Fprintln(b, "UPDATE skus SET")
	fmt.Fprintf(b, "  unit_cost = %s,\n", fixed(rec.UnitCost, 4))
	fmt.Fprintf(b, "  unit_weight = %s,\n", fixed(rec.WeightLbs, 4))
	fmt.Fprintf(b, "  abc_class = '%s',\n", rec.ABCClass)
	fmt.Fprintf(b, "  xyz_class = '%s',\n", rec.XYZClass)
	fmt.Fprintf(b, "  annual_consumption_value = %s,\n", fixed(rec.AnnualValue, 2))
	fmt.Fprintf(b, "  avg_weekly_demand = %s,\n", fixed(rec.AvgWeeklyShipments, 4))
	fmt.Fprintf(b, "  cv_demand = %s,\n", cvSQL)

	if cbm := e.cubicMeters(rec); cbm > 0 {
		fmt.Fprintf(b, "  dimensions_cbm = %s,\n", fixed(cbm, 6))
		fmt.Fprintf(b, "  length_in = %s,\n", fixed(rec.LengthIn, 2))
		fmt.Fprintf(b, "  width_in = %s,\n", fixed(rec.WidthIn, 2))
		fmt.Fprintf(b, "  height_in = %s,\n", fixed(rec.HeightIn, 2))
	}
	if rec.Supplier != "" {
		fmt.Fprintf(b, "  supplier_code = '%s',\n", escape(rec.Supplier))
	}
	fmt.Fprintln(b, "  updated_at = NOW()")

	// The target table may key this SKU under either suffix variant.
	code := escape(rec.SKUCode)
	fmt.Fprintf(b, "WHERE sku_code = '%s'\n", code)
	if stripped := strings.TrimSuffix(code, e.Suffix); stripped != code {
		fmt.Fprintf(b, "   OR sku_code = '%s'\n", stripped)
		fmt.Fprintf(b, "   OR sku_code = '%s%s';\n", stripped, e.Suffix)
	} else {
		fmt.Fprintf(b, "   OR sku_code = '%s%s';\n", code, e.Suffix)
	}
	fmt.Fprintln(b)
}

// cubicMeters is only defined when all three dimensions are known.
func (e *Emitter) cubicMeters(rec *domain.SKURecord) float64 {
	if rec.LengthIn <= 0 || rec.WidthIn <= 0 || rec.HeightIn <= 0 {
		return 0
	}
	return (rec.LengthIn * metersPerInch) * (rec.WidthIn * metersPerInch) * (rec.HeightIn * metersPerInch)
}

func (e *Emitter) writeView(b *strings.Builder) {
	writeSection(b, "PART 3: SKU classification view")
	fmt.Fprintln(b, `CREATE OR REPLACE VIEW v_sku_classification AS
SELECT
  s.id,
  s.sku_code,
  s.description,
  s.supplier_code,
  s.abc_class,
  s.xyz_class,
  COALESCE(s.abc_class, '') || COALESCE(s.xyz_class, '') AS matrix_cell,
  s.unit_cost,
  s.annual_consumption_value,
  s.avg_weekly_demand,
  s.cv_demand,
  s.unit_weight,
  s.dimensions_cbm,
  s.length_in,
  s.width_in,
  s.height_in,
  p.service_level,
  p.target_woh,
  p.review_frequency,
  p.replenishment_method
FROM skus s
LEFT JOIN classification_policies p
  ON p.matrix_cell = COALESCE(s.abc_class, '') || COALESCE(s.xyz_class, '')
WHERE s.abc_class IS NOT NULL
ORDER BY
  CASE s.abc_class WHEN 'A' THEN 1 WHEN 'B' THEN 2 ELSE 3 END,
  CASE s.xyz_class WHEN 'X' THEN 1 WHEN 'Y' THEN 2 ELSE 3 END,
  s.annual_consumption_value DESC NULLS LAST;`)
	fmt.Fprintln(b)
}

func (e *Emitter) writePolicies(b *strings.Builder, policies []domain.ClassificationPolicy) {
	writeSection(b, "PART 4: Classification policies table (9-grid)")
	fmt.Fprintln(b, `CREATE TABLE IF NOT EXISTS classification_policies (
  id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
  matrix_cell TEXT NOT NULL UNIQUE,
  service_level NUMERIC NOT NULL,
  target_woh NUMERIC NOT NULL,
  review_frequency TEXT NOT NULL,
  replenishment_method TEXT NOT NULL,
  notes TEXT,
  created_at TIMESTAMPTZ DEFAULT NOW(),
  updated_at TIMESTAMPTZ DEFAULT NOW()
);`)
	fmt.Fprintln(b)

	fmt.Fprintln(b, "INSERT INTO classification_policies (matrix_cell, service_level, target_woh, review_frequency, replenishment_method, notes) VALUES")
	for i, p := range policies {
		sep := ","
		if i == len(policies)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "  ('%s', %s, %s, '%s', '%s', '%s')%s\n",
			p.MatrixCell,
			fixed(p.ServiceLevel, 2),
			decimal.NewFromFloat(p.TargetWeeksOnHand).String(),
			p.ReviewFrequency,
			p.ReplenishmentMethod,
			escape(p.Notes),
			sep)
	}
	fmt.Fprintln(b, `ON CONFLICT (matrix_cell) DO UPDATE SET
  service_level = EXCLUDED.service_level,
  target_woh = EXCLUDED.target_woh,
  review_frequency = EXCLUDED.review_frequency,
  replenishment_method = EXCLUDED.replenishment_method,
  notes = EXCLUDED.notes,
  updated_at = NOW();`)
	fmt.Fprintln(b)
}

func (e *Emitter) writeGrants(b *strings.Builder) {
	writeSection(b, "PART 5: Permissions")
	fmt.Fprintln(b, "GRANT ALL ON classification_policies TO authenticated;")
	fmt.Fprintln(b, "GRANT SELECT ON v_sku_classification TO authenticated;")
}

func writeSection(b *strings.Builder, title string) {
	rule := "-- " + strings.Repeat("=", 45)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "-- "+title)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)
}

// fixed renders v with exactly places decimal places. SQL NUMERIC columns
// get decimal rendering rather than %f to avoid float artifacts.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// groupThousands renders a value rounded to whole units with comma
// separators, for the human-readable annotations.
func groupThousands(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
