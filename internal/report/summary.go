// internal/report/summary.go

// Package report prints the operator-facing run summary: per-supplier
// totals, classification counts, the top SKUs by value and the 9-grid
// matrix. Structured logs carry progress; these tables are the artifact the
// planners actually read.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/andresuchdata/wms-classify/internal/classify"
	"github.com/andresuchdata/wms-classify/internal/domain"
)

type Reporter struct {
	w io.Writer
}

func New() *Reporter {
	return &Reporter{w: os.Stdout}
}

// NewWriter reports into w instead of stdout.
func NewWriter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) section(title string) {
	fmt.Fprintf(r.w, "\n%s\n%s\n", title, dashes(60))
}

// DepletionSummary prints SKU and velocity totals grouped by supplier.
func (r *Reporter) DepletionSummary(set *domain.RecordSet) {
	r.section("Inventory depletion")

	bySupplier := make(map[string][]*domain.SKURecord)
	for _, rec := range set.Records() {
		bySupplier[rec.Supplier] = append(bySupplier[rec.Supplier], rec)
	}

	names := make([]string, 0, len(bySupplier))
	for name := range bySupplier {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(r.w, "  %d unique SKUs\n", set.Len())
	for _, name := range names {
		recs := bySupplier[name]
		total := 0.0
		for _, rec := range recs {
			total += rec.AvgWeeklyShipments
		}
		label := name
		if label == "" {
			label = "(no supplier)"
		}
		fmt.Fprintf(r.w, "  %s: %d SKUs, total avg ship/wk = %.1f\n", label, len(recs), total)
	}
}

// ItemMasterSummary prints the parsed item count and cost range.
func (r *Reporter) ItemMasterSummary(items map[string]*domain.ItemMaster) {
	r.section("Item view")

	minCost, maxCost := 0.0, 0.0
	expensive := 0
	first := true
	for _, item := range items {
		if item.Cost <= 0 {
			continue
		}
		if first || item.Cost < minCost {
			minCost = item.Cost
		}
		if first || item.Cost > maxCost {
			maxCost = item.Cost
		}
		first = false
		if item.Cost > 100 {
			expensive++
		}
	}

	fmt.Fprintf(r.w, "  %d SKUs parsed\n", len(items))
	if !first {
		fmt.Fprintf(r.w, "  cost range: $%.2f - $%.2f (%d SKUs above $100)\n", minCost, maxCost, expensive)
	}
}

// ABCSummary prints the tier counts and the top SKUs by annual value.
func (r *Reporter) ABCSummary(res classify.ABCResult, topN int) {
	r.section("ABC classification")

	total := len(res.Ranked)
	if total == 0 {
		fmt.Fprintln(r.w, "  no records")
		return
	}

	fmt.Fprintf(r.w, "  total annual consumption value: $%.2f\n", res.TotalValue)
	fmt.Fprintf(r.w, "  A: %d SKUs (%.0f%%)\n", res.CountA, pct(res.CountA, total))
	fmt.Fprintf(r.w, "  B: %d SKUs (%.0f%%)\n", res.CountB, pct(res.CountB, total))
	fmt.Fprintf(r.w, "  C: %d SKUs (%.0f%%)\n", res.CountC, pct(res.CountC, total))

	if topN > len(res.Ranked) {
		topN = len(res.Ranked)
	}
	fmt.Fprintf(r.w, "\n  top %d by annual value:\n", topN)
	for i, rec := range res.Ranked[:topN] {
		fmt.Fprintf(r.w, "  %2d. %-16s [%s] $%.2f/yr (avg %.1f/wk x $%.2f)\n",
			i+1, rec.SKUCode, rec.ABCClass, rec.AnnualValue, rec.AvgWeeklyShipments, rec.UnitCost)
	}
}

// XYZSummary prints the volatility tier counts.
func (r *Reporter) XYZSummary(res classify.XYZResult) {
	r.section("XYZ classification")
	fmt.Fprintf(r.w, "  X (stable):   %d SKUs\n", res.CountX)
	fmt.Fprintf(r.w, "  Y (moderate): %d SKUs\n", res.CountY)
	fmt.Fprintf(r.w, "  Z (erratic):  %d SKUs\n", res.CountZ)
	fmt.Fprintf(r.w, "  estimated (insufficient history): %d SKUs\n", res.Estimated)
}

// MatrixSummary prints the 9-grid cell counts and values, then a per-cell
// SKU breakdown sorted by descending annual value. Estimated CVs are marked
// with an asterisk.
func (r *Reporter) MatrixSummary(set *domain.RecordSet) {
	r.section("ABC/XYZ matrix")

	cells := make(map[string][]*domain.SKURecord)
	for _, rec := range set.Records() {
		cell := rec.MatrixCell()
		if len(cell) != 2 {
			continue
		}
		cells[cell] = append(cells[cell], rec)
	}

	fmt.Fprintf(r.w, "%8s  %-22s %-22s %-22s\n", "", "X (stable)", "Y (moderate)", "Z (erratic)")
	for _, abc := range []string{"A", "B", "C"} {
		fmt.Fprintf(r.w, "%8s ", abc)
		for _, xyz := range []string{"X", "Y", "Z"} {
			recs := cells[abc+xyz]
			value := 0.0
			for _, rec := range recs {
				value += rec.AnnualValue
			}
			fmt.Fprintf(r.w, " %3d SKUs $%-11.0f", len(recs), value)
		}
		fmt.Fprintln(r.w)
	}

	fmt.Fprintf(r.w, "\n  detailed breakdown:\n")
	for _, abc := range []string{"A", "B", "C"} {
		for _, xyz := range []string{"X", "Y", "Z"} {
			cell := abc + xyz
			recs := cells[cell]
			if len(recs) == 0 {
				continue
			}
			sorted := make([]*domain.SKURecord, len(recs))
			copy(sorted, recs)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].AnnualValue > sorted[j].AnnualValue
			})

			fmt.Fprintf(r.w, "\n  [%s] %d SKUs:\n", cell, len(sorted))
			for _, rec := range sorted {
				cvStr := "CV=N/A"
				if rec.HasFiniteCV() {
					cvStr = fmt.Sprintf("CV=%.2f", *rec.CV)
				}
				est := ""
				if rec.XYZEstimated {
					est = "*"
				}
				fmt.Fprintf(r.w, "    %-15s %-12s $%10.0f/yr  Avg %7.1f/wk  %s%s\n",
					rec.SKUCode, rec.Supplier, rec.AnnualValue, rec.AvgWeeklyShipments, cvStr, est)
			}
		}
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
