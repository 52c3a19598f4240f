// internal/classify/xyz.go
package classify

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/andresuchdata/wms-classify/internal/config"
	"github.com/andresuchdata/wms-classify/internal/domain"
)

// XYZResult summarizes the volatility tiering for reporting.
type XYZResult struct {
	CountX    int
	CountY    int
	CountZ    int
	Estimated int
}

// ClassifyXYZ assigns every record one of X/Y/Z by coefficient of variation
// of monthly outbound quantity. SKUs with enough history get a measured CV;
// the rest get a volume heuristic, flagged estimated, that deliberately
// biases low-volume SKUs toward the erratic tier.
func ClassifyXYZ(set *domain.RecordSet, monthly map[string]map[string]float64, cfg config.ClassificationConfig) XYZResult {
	var res XYZResult

	for _, rec := range set.Records() {
		hist, ok := Resolve(monthly, rec.SKUCode, cfg.SKUSuffix)
		var cv float64
		if ok && len(hist) >= cfg.MinMonthsForXYZ {
			cv = measuredCV(hist)
			rec.MonthlyOut = hist // referenced, not copied
		} else {
			cv = estimatedCV(rec.AvgWeeklyShipments)
			rec.XYZEstimated = true
			res.Estimated++
		}
		rec.CV = &cv

		switch rec.XYZClass = ClassForCV(cv, cfg); rec.XYZClass {
		case "X":
			res.CountX++
		case "Y":
			res.CountY++
		default:
			res.CountZ++
		}
	}

	return res
}

// measuredCV is sample standard deviation over mean of the month buckets.
// A single data point has zero deviation by definition; a zero mean yields
// the infinity sentinel instead of a division error.
func measuredCV(hist map[string]float64) float64 {
	values := make([]float64, 0, len(hist))
	for _, v := range hist {
		values = append(values, v)
	}

	mean, err := stats.Mean(values)
	if err != nil || mean <= 0 {
		return math.Inf(1)
	}

	sd := 0.0
	if len(values) > 1 {
		sd, _ = stats.StandardDeviationSample(values)
	}
	return sd / mean
}

// estimatedCV is the fallback for SKUs with insufficient history: weekly
// velocity stands in for variability, with low volume read as erratic.
func estimatedCV(avgWeeklyShipments float64) float64 {
	switch {
	case avgWeeklyShipments >= 10:
		return 0.6
	case avgWeeklyShipments >= 1:
		return 0.8
	case avgWeeklyShipments > 0:
		return 1.2
	default:
		return math.Inf(1)
	}
}

// ClassForCV applies the tier thresholds. Boundaries are half-open: a CV
// exactly at a threshold falls into the higher-volatility tier.
func ClassForCV(cv float64, cfg config.ClassificationConfig) string {
	switch {
	case cv < cfg.XYZXThreshold:
		return "X"
	case cv < cfg.XYZYThreshold:
		return "Y"
	default:
		return "Z"
	}
}
