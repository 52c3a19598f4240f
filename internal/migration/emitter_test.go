package migration

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/wms-classify/internal/domain"
)

func testEmitter() *Emitter {
	e := NewEmitter("GT")
	e.Now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func classifiedRecord() *domain.SKURecord {
	cv := 0.1045
	return &domain.SKURecord{
		SKUCode:            "TJ-100GT",
		Supplier:           "TianJin",
		AvgWeeklyShipments: 20,
		UnitCost:           5,
		AnnualValue:        5200,
		WeightLbs:          42.5,
		LengthIn:           18,
		WidthIn:            12,
		HeightIn:           10,
		CV:                 &cv,
		ABCClass:           "A",
		XYZClass:           "X",
	}
}

func TestRenderUpsert(t *testing.T) {
	sql := testEmitter().Render([]*domain.SKURecord{classifiedRecord()}, domain.DefaultPolicies())

	for _, want := range []string{
		"ALTER TABLE skus ADD COLUMN IF NOT EXISTS unit_cost NUMERIC;",
		"ALTER TABLE skus ADD COLUMN IF NOT EXISTS cv_demand NUMERIC;",
		"-- TJ-100GT: AX | $5,200/yr | Avg 20.0/wk | CV=0.1045 | Cost $5.00",
		"unit_cost = 5.0000,",
		"abc_class = 'A',",
		"xyz_class = 'X',",
		"annual_consumption_value = 5200.00,",
		"cv_demand = 0.1045,",
		"supplier_code = 'TianJin',",
		"WHERE sku_code = 'TJ-100GT'",
		"   OR sku_code = 'TJ-100'",
		"   OR sku_code = 'TJ-100GT';",
		"CREATE OR REPLACE VIEW v_sku_classification",
		"CREATE TABLE IF NOT EXISTS classification_policies",
		"ON CONFLICT (matrix_cell) DO UPDATE SET",
		"GRANT SELECT ON v_sku_classification TO authenticated;",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("rendered SQL missing %q", want)
		}
	}
}

func TestRenderCubicMeters(t *testing.T) {
	sql := testEmitter().Render([]*domain.SKURecord{classifiedRecord()}, nil)

	// 18in x 12in x 10in = 0.4572m x 0.3048m x 0.254m = 0.035396 cbm
	if !strings.Contains(sql, "dimensions_cbm = 0.035396,") {
		t.Error("cubic meters not derived from inch dimensions")
	}
	if !strings.Contains(sql, "length_in = 18.00,") {
		t.Error("raw dimensions not emitted alongside cbm")
	}
}

func TestRenderOmitsDimensionsWhenIncomplete(t *testing.T) {
	rec := classifiedRecord()
	rec.HeightIn = 0
	sql := testEmitter().Render([]*domain.SKURecord{rec}, nil)

	// The ALTER statement still mentions the column; the SET must not.
	if strings.Contains(sql, "  dimensions_cbm = ") {
		t.Error("cbm must be omitted when a dimension is missing")
	}
}

func TestRenderInfiniteCVIsNull(t *testing.T) {
	rec := classifiedRecord()
	inf := math.Inf(1)
	rec.CV = &inf
	sql := testEmitter().Render([]*domain.SKURecord{rec}, nil)

	if !strings.Contains(sql, "cv_demand = NULL,") {
		t.Error("infinite CV must render as NULL")
	}
}

func TestRenderSkipsUnclassified(t *testing.T) {
	rec := classifiedRecord()
	rec.ABCClass = ""
	sql := testEmitter().Render([]*domain.SKURecord{rec}, nil)

	if strings.Contains(sql, "WHERE sku_code = 'TJ-100GT'") {
		t.Error("records without an ABC class must not be upserted")
	}
}

func TestRenderOrdersByValueDescending(t *testing.T) {
	low := classifiedRecord()
	low.SKUCode = "LOW-1"
	low.AnnualValue = 10
	high := classifiedRecord()
	high.SKUCode = "HIGH-1"
	high.AnnualValue = 99999

	sql := testEmitter().Render([]*domain.SKURecord{low, high}, nil)

	if strings.Index(sql, "HIGH-1") > strings.Index(sql, "LOW-1") {
		t.Error("upserts must be ordered by descending annual value")
	}
}

func TestRenderPolicies(t *testing.T) {
	sql := testEmitter().Render(nil, domain.DefaultPolicies())

	for _, want := range []string{
		"('AX', 0.97, 4, 'weekly', 'auto',",
		"('BZ', 0.90, 8, 'biweekly', 'manual_review',",
		"('CZ', 0.85, 10, 'monthly', 'on_demand',",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("policies missing %q", want)
		}
	}
}

func TestRenderEscapesQuotes(t *testing.T) {
	rec := classifiedRecord()
	rec.SKUCode = "O'BRIEN-1"
	rec.Supplier = "O'Brien"
	sql := testEmitter().Render([]*domain.SKURecord{rec}, nil)

	if !strings.Contains(sql, "WHERE sku_code = 'O''BRIEN-1'") {
		t.Error("SKU codes must be SQL-escaped")
	}
	if !strings.Contains(sql, "supplier_code = 'O''Brien',") {
		t.Error("supplier codes must be SQL-escaped")
	}
}
