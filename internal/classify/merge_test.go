package classify

import (
	"testing"

	"github.com/andresuchdata/wms-classify/internal/domain"
)

func recordSet(recs ...*domain.SKURecord) *domain.RecordSet {
	set := domain.NewRecordSet()
	for _, r := range recs {
		set.Add(r)
	}
	return set
}

func TestMergeMasterData(t *testing.T) {
	set := recordSet(
		&domain.SKURecord{SKUCode: "TJ-100GT", Supplier: "TianJin"},
		&domain.SKURecord{SKUCode: "AM-5"},
		&domain.SKURecord{SKUCode: "GHOST-1"},
	)
	items := map[string]*domain.ItemMaster{
		// Matched by suffix strip.
		"TJ-100": {SKUCode: "TJ-100", Cost: 4.25, WeightLbs: 42.5, LengthIn: 18, WidthIn: 12, HeightIn: 10, DimUnitCount: 24, Supplier: "ShouldNotWin"},
		"AM-5":   {SKUCode: "AM-5", Cost: 9, Supplier: "AMC"},
	}

	res := MergeMasterData(set, items, "GT")

	if res.Matched != 2 {
		t.Errorf("matched = %d, want 2", res.Matched)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "GHOST-1" {
		t.Errorf("unmatched = %v, want [GHOST-1]", res.Unmatched)
	}

	tj, _ := set.Get("TJ-100GT")
	if tj.UnitCost != 4.25 || tj.WeightLbs != 42.5 || tj.LengthIn != 18 {
		t.Errorf("TJ-100GT not enriched: %+v", tj)
	}
	if tj.Supplier != "TianJin" {
		t.Errorf("supplier = %q, want TianJin (depletion supplier is kept)", tj.Supplier)
	}

	am, _ := set.Get("AM-5")
	if am.Supplier != "AMC" {
		t.Errorf("supplier = %q, want AMC (adopted when unset)", am.Supplier)
	}

	// No match is a soft default, never an error.
	ghost, _ := set.Get("GHOST-1")
	if ghost.UnitCost != 0 {
		t.Errorf("unmatched record cost = %v, want 0", ghost.UnitCost)
	}
}
