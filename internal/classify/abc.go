// internal/classify/abc.go
package classify

import (
	"sort"

	"github.com/andresuchdata/wms-classify/internal/config"
	"github.com/andresuchdata/wms-classify/internal/domain"
)

const weeksPerYear = 52

// ABCResult summarizes the value ranking for reporting and for the emitter,
// which writes records in descending value order.
type ABCResult struct {
	TotalValue float64
	CountA     int
	CountB     int
	CountC     int
	Ranked     []*domain.SKURecord // descending annual value, input order on ties
}

// ClassifyABC assigns every record one of A/B/C by cumulative share of
// trailing annual consumption value. Unit cost is resolved from the item
// view through the suffix-tolerant lookup; a SKU with no cost match gets
// value zero and sorts to the bottom.
func ClassifyABC(set *domain.RecordSet, items map[string]*domain.ItemMaster, cfg config.ClassificationConfig) ABCResult {
	recs := set.Records()

	for _, rec := range recs {
		cost := 0.0
		if item, ok := Resolve(items, rec.SKUCode, cfg.SKUSuffix); ok {
			cost = item.Cost
		}
		rec.UnitCost = cost
		rec.AnnualValue = rec.AvgWeeklyShipments * weeksPerYear * cost
	}

	ranked := make([]*domain.SKURecord, len(recs))
	copy(ranked, recs)
	// Stable keeps the depletion file order on equal values.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AnnualValue > ranked[j].AnnualValue
	})

	res := ABCResult{Ranked: ranked}
	for _, rec := range ranked {
		res.TotalValue += rec.AnnualValue
	}

	// Degenerate data: without positive value there is nothing to rank.
	if res.TotalValue <= 0 {
		for _, rec := range ranked {
			rec.ABCClass = "C"
		}
		res.CountC = len(ranked)
		return res
	}

	cumulative := 0.0
	for _, rec := range ranked {
		cumulative += rec.AnnualValue
		share := cumulative / res.TotalValue
		switch {
		case share <= cfg.ABCAThreshold:
			rec.ABCClass = "A"
			res.CountA++
		case share <= cfg.ABCBThreshold:
			rec.ABCClass = "B"
			res.CountB++
		default:
			rec.ABCClass = "C"
			res.CountC++
		}
	}

	// When the top record alone crosses the A threshold nothing qualifies
	// as A above; the highest-value record is promoted so class A is never
	// empty while total value is positive.
	if res.CountA == 0 && len(ranked) > 0 {
		top := ranked[0]
		switch top.ABCClass {
		case "B":
			res.CountB--
		case "C":
			res.CountC--
		}
		top.ABCClass = "A"
		res.CountA = 1
	}

	return res
}
