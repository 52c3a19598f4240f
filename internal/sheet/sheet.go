// internal/sheet/sheet.go

// Package sheet is the boundary between the WMS spreadsheet exports and the
// row-classification state machines. It presents each source as an ordered
// sequence of rows of typed cells (number, text, date or empty) so the
// parsers never touch the xlsx layer directly.
package sheet

import (
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the cell union.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindDate
)

// Cell is a single typed spreadsheet cell.
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
	Date   time.Time
}

// Row is an ordered sequence of cells. Rows from real exports are ragged;
// use At for out-of-range-safe access.
type Row []Cell

// Sheet is one worksheet of a source file.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is a fully loaded source file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// At returns the cell at index i, or an empty cell when the row is too short.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Empty returns the empty cell.
func Empty() Cell { return Cell{} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// Float returns the numeric value of the cell. Only number cells are
// numeric; everything else reports false so callers degrade to zero.
func (c Cell) Float() (float64, bool) {
	if c.Kind == KindNumber {
		return c.Number, true
	}
	return 0, false
}

// Trimmed renders the cell as trimmed text the way the row heuristics see
// it: numbers render bare, dates in US order, empty as "".
func (c Cell) Trimmed() string {
	switch c.Kind {
	case KindText:
		return strings.TrimSpace(c.Text)
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindDate:
		return c.Date.Format("01/02/2006")
	default:
		return ""
	}
}

// dateLayouts are the textual date shapes the exports produce. Listed
// longest first so date-time strings are not half-parsed.
var dateLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Classify types a raw string the way the exports are read: empty, then
// date, then number (thousands separators tolerated), else text.
func Classify(raw string) Cell {
	t := strings.TrimSpace(raw)
	if t == "" {
		return Cell{}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return Cell{Kind: KindDate, Date: d}
		}
	}
	n := strings.ReplaceAll(t, ",", "")
	if v, err := strconv.ParseFloat(n, 64); err == nil {
		return Cell{Kind: KindNumber, Number: v}
	}
	return Cell{Kind: KindText, Text: t}
}
