// internal/parser/activity.go
package parser

import (
	"strings"
	"time"

	"github.com/andresuchdata/wms-classify/internal/sheet"
)

// Column positions in the item activity (transaction detail) export.
const (
	actColSKU          = 1
	actColQtyIndicator = 4
	actColDate         = 5
	actColRef          = 7
	actColQtyOut       = 10
)

// Textual dates in the export use US month-first order.
const actDateLayout = "1/2/2006"

// Reference-number shapes that are not customer consumption. Adjustments
// and internal moves would inflate apparent demand variability and corrupt
// the XYZ signal, so they never reach the histogram.
const (
	refAdjustFull = "adjust"
	refAdjustAbbr = "adj"
	refMovePrefix = "mv"
)

// ActivityAggregator folds one or more transaction detail exports into a
// single per-SKU calendar-month outbound histogram. Totals accumulate
// across files, not per file.
type ActivityAggregator struct {
	monthly map[string]map[string]float64

	// Aggregate counters surfaced in the run summary.
	Transactions        int
	FilteredAdjustments int
	FilteredMoves       int

	currentSKU string
}

// FileStats reports what one source file contributed.
type FileStats struct {
	Transactions int
	Filtered     int
}

func NewActivityAggregator() *ActivityAggregator {
	return &ActivityAggregator{
		monthly: make(map[string]map[string]float64),
	}
}

// ReadSheet consumes one export sheet. Each file opens with its own SKU
// headers, so the open-SKU context resets per sheet.
func (a *ActivityAggregator) ReadSheet(s sheet.Sheet) FileStats {
	a.currentSKU = ""

	var fs FileStats
	for _, row := range s.Rows {
		a.consume(row, &fs)
	}
	return fs
}

// Monthly returns the cross-file histogram: SKU code -> "YYYY-MM" -> qty.
func (a *ActivityAggregator) Monthly() map[string]map[string]float64 {
	return a.monthly
}

func (a *ActivityAggregator) consume(row sheet.Row, fs *FileStats) {
	// SKU header rows name the SKU and indicate a quantity, but carry no
	// transaction themselves.
	code := row.At(actColSKU).Trimmed()
	if code != "" && code != "Totals:" && code != "SKU" {
		if v, ok := row.At(actColQtyIndicator).Float(); ok && v > 0 {
			a.currentSKU = code
			return
		}
	}

	if a.currentSKU == "" {
		return
	}

	dt, ok := a.transactionDate(row.At(actColDate))
	if !ok {
		return
	}

	ref := strings.ToLower(row.At(actColRef).Trimmed())
	if strings.Contains(ref, refAdjustFull) || strings.Contains(ref, refAdjustAbbr) {
		a.FilteredAdjustments++
		fs.Filtered++
		return
	}
	if strings.HasPrefix(ref, refMovePrefix) {
		a.FilteredMoves++
		fs.Filtered++
		return
	}

	qty, ok := row.At(actColQtyOut).Float()
	if !ok || qty <= 0 {
		return
	}

	bucket := a.monthly[a.currentSKU]
	if bucket == nil {
		bucket = make(map[string]float64)
		a.monthly[a.currentSKU] = bucket
	}
	bucket[dt.Format("2006-01")] += qty
	a.Transactions++
	fs.Transactions++
}

// transactionDate extracts the activity date. Native date cells pass
// through; text must match the fixed layout; balance markers, repeated
// headers and anything unparseable drop the row from the demand signal.
func (a *ActivityAggregator) transactionDate(c sheet.Cell) (time.Time, bool) {
	if c.Kind == sheet.KindDate {
		return c.Date, true
	}

	txt := c.Trimmed()
	switch txt {
	case "", "Activity Date", "Beginning Balance", "Ending Balance":
		return time.Time{}, false
	}

	dt, err := time.Parse(actDateLayout, txt)
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}
