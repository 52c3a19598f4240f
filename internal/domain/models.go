// internal/domain/models.go
package domain

import "math"

// SKURecord aggregates everything known about a single SKU across the WMS
// exports. Records are created by the depletion reader, enriched in place by
// the master-data merge and both classifiers, and read-only afterwards.
type SKURecord struct {
	SKUCode   string
	Supplier  string
	Warehouse string

	// From the inventory depletion export
	AvgWeeklyShipments float64
	WeeksOnHand        float64
	BeginningInventory int
	EndingInventory    int
	Received           int
	Shipped            int

	// From the item view export
	UnitCost     float64
	WeightLbs    float64
	LengthIn     float64
	WidthIn      float64
	HeightIn     float64
	DimUnitCount float64 // units per dimensional UOM

	// Computed
	AnnualValue  float64
	MonthlyOut   map[string]float64 // "2024-01" -> qty shipped out
	CV           *float64           // nil until computed; +Inf when mean demand is zero
	ABCClass     string
	XYZClass     string
	XYZEstimated bool // true when XYZ came from the volume heuristic
}

// MatrixCell returns the combined classification cell, e.g. "AX".
// Empty until both classifiers have run.
func (r *SKURecord) MatrixCell() string {
	return r.ABCClass + r.XYZClass
}

// HasFiniteCV reports whether a real coefficient of variation was computed.
func (r *SKURecord) HasFiniteCV() bool {
	return r.CV != nil && !math.IsInf(*r.CV, 1)
}

// ItemMaster holds per-SKU master data recovered from the item view export.
type ItemMaster struct {
	SKUCode      string
	Description  string
	Cost         float64
	WeightLbs    float64
	LengthIn     float64
	WidthIn      float64
	HeightIn     float64
	DimUnitCount float64
	Supplier     string
}

// RecordSet is an insertion-ordered collection of SKU records. The depletion
// export is the authoritative source of SKU identity, and its file order
// drives stable-sort tie-breaks downstream, so order must be preserved.
type RecordSet struct {
	records []*SKURecord
	index   map[string]*SKURecord
}

func NewRecordSet() *RecordSet {
	return &RecordSet{index: make(map[string]*SKURecord)}
}

// Get returns the record for code if one exists.
func (s *RecordSet) Get(code string) (*SKURecord, bool) {
	r, ok := s.index[code]
	return r, ok
}

// Add appends a new record, keeping first-seen order. Callers merge
// duplicates via Get before adding.
func (s *RecordSet) Add(r *SKURecord) {
	if _, ok := s.index[r.SKUCode]; !ok {
		s.records = append(s.records, r)
	}
	s.index[r.SKUCode] = r
}

// Records returns the records in first-seen order. The returned slice is
// shared; callers must not reorder it.
func (s *RecordSet) Records() []*SKURecord {
	return s.records
}

func (s *RecordSet) Len() int {
	return len(s.records)
}

// ClassificationPolicy is one cell of the ABC/XYZ 9-grid with its
// recommended inventory policy.
type ClassificationPolicy struct {
	MatrixCell          string
	ServiceLevel        float64
	TargetWeeksOnHand   float64
	ReviewFrequency     string
	ReplenishmentMethod string
	Notes               string
}

// DefaultPolicies returns the nine default cell policies emitted with every
// migration.
func DefaultPolicies() []ClassificationPolicy {
	return []ClassificationPolicy{
		{"AX", 0.97, 4, "weekly", "auto", "High value + stable: tight control, auto replenish"},
		{"AY", 0.95, 5, "weekly", "auto", "High value + moderate: buffer slightly more"},
		{"AZ", 0.93, 6, "weekly", "manual_review", "High value + erratic: human review before ordering"},
		{"BX", 0.95, 5, "biweekly", "auto", "Medium value + stable: standard auto"},
		{"BY", 0.93, 6, "biweekly", "auto", "Medium value + moderate: moderate buffer"},
		{"BZ", 0.90, 8, "biweekly", "manual_review", "Medium value + erratic: review before ordering"},
		{"CX", 0.92, 6, "monthly", "auto", "Low value + stable: less frequent review"},
		{"CY", 0.90, 8, "monthly", "auto", "Low value + moderate: bulk order"},
		{"CZ", 0.85, 10, "monthly", "on_demand", "Low value + erratic: order only when needed"},
	}
}
