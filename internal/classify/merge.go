// internal/classify/merge.go
package classify

import "github.com/andresuchdata/wms-classify/internal/domain"

// MergeResult reports the cross-source match rate for the run summary.
type MergeResult struct {
	Matched   int
	Unmatched []string
}

// MergeMasterData copies cost, weight and dimensions from the item view
// onto each SKU record, matching keys through Resolve. A record keeps its
// depletion-sourced supplier; the item view's supplier is adopted only when
// the depletion export never named one. Records without a match keep zero
// values; the ABC pass routes those toward class C on its own.
func MergeMasterData(set *domain.RecordSet, items map[string]*domain.ItemMaster, suffix string) MergeResult {
	var res MergeResult
	for _, rec := range set.Records() {
		item, ok := Resolve(items, rec.SKUCode, suffix)
		if !ok {
			res.Unmatched = append(res.Unmatched, rec.SKUCode)
			continue
		}

		rec.UnitCost = item.Cost
		rec.WeightLbs = item.WeightLbs
		rec.LengthIn = item.LengthIn
		rec.WidthIn = item.WidthIn
		rec.HeightIn = item.HeightIn
		rec.DimUnitCount = item.DimUnitCount
		if rec.Supplier == "" {
			rec.Supplier = item.Supplier
		}
		res.Matched++
	}
	return res
}
