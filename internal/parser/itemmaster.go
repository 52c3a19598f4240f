// internal/parser/itemmaster.go
package parser

import (
	"strings"

	"github.com/andresuchdata/wms-classify/internal/domain"
	"github.com/andresuchdata/wms-classify/internal/sheet"
)

// Column positions in the item view export.
const (
	imColDescription = 1
	imColDimUOM      = 2
	imColDimUnits    = 3
	imColLength      = 6
	imColWidth       = 7
	imColHeight      = 8
	imColCost        = 9
	imColWeight      = 10
)

// Label rows the item view repeats throughout each sheet.
var imSkipPrefixes = []string{"SKU", "Dimensional", "Storage", "Track By", "View Item"}

// The one label that matters: the row after it carries the imperial
// dimensions for the currently open SKU.
const dimensionalUOMLabel = "Dimensional UOM"

// ItemMasterReader recovers per-SKU cost, weight and carton dimensions from
// the item view export. Each SKU spans several rows: a cost row opens the
// record and a later unlabeled row, announced one row ahead by the
// "Dimensional UOM" banner, carries its dimensions.
type ItemMasterReader struct {
	normalizer *Normalizer
	items      map[string]*domain.ItemMaster

	// Per-sheet context, reset at every sheet boundary.
	currentSKU     string
	supplierName   string
	nextRowHasDims bool
}

func NewItemMasterReader(n *Normalizer) *ItemMasterReader {
	return &ItemMasterReader{
		normalizer: n,
		items:      make(map[string]*domain.ItemMaster),
	}
}

// ReadWorkbook consumes every sheet independently; the export restarts its
// banner and section structure per sheet.
func (r *ItemMasterReader) ReadWorkbook(wb *sheet.Workbook) {
	for _, s := range wb.Sheets {
		r.ReadSheet(s)
	}
}

// ReadSheet consumes one sheet with fresh context.
func (r *ItemMasterReader) ReadSheet(s sheet.Sheet) {
	r.currentSKU = ""
	r.supplierName = ""
	r.nextRowHasDims = false

	for _, row := range s.Rows {
		r.consume(row)
	}
}

// Items returns every parsed item keyed by SKU code.
func (r *ItemMasterReader) Items() map[string]*domain.ItemMaster {
	return r.items
}

func (r *ItemMasterReader) consume(row sheet.Row) {
	first := row.At(0).Trimmed()

	for _, p := range imSkipPrefixes {
		if strings.HasPrefix(first, p) {
			r.nextRowHasDims = first == dimensionalUOMLabel
			return
		}
	}

	if first != "" {
		r.nextRowHasDims = false
		if cost, ok := row.At(imColCost).Float(); ok && cost > 0 {
			// A positive cost makes this a SKU row. Re-sightings of the
			// same code overwrite: the export repeats items verbatim.
			r.currentSKU = first
			r.items[first] = &domain.ItemMaster{
				SKUCode:      first,
				Description:  row.At(imColDescription).Trimmed(),
				Cost:         cost,
				DimUnitCount: 1,
				Supplier:     r.normalizer.Resolve(r.supplierName),
			}
			return
		}
		// Anything else with a first cell is a supplier section banner,
		// e.g. "TianJin/WHI - Kent".
		r.supplierName = first
		return
	}

	// Unlabeled continuation row.
	if r.currentSKU == "" || !r.nextRowHasDims {
		return
	}
	// The look-ahead is consumed whether or not the row yields dimensions.
	r.nextRowHasDims = false

	item, ok := r.items[r.currentSKU]
	if !ok {
		return
	}

	uom := row.At(imColDimUOM).Trimmed()
	units, unitsOK := row.At(imColDimUnits).Float()
	if uom == "" || !unitsOK || units == 0 {
		return
	}

	length := floatAt(row, imColLength)
	width := floatAt(row, imColWidth)
	height := floatAt(row, imColHeight)
	weight := floatAt(row, imColWeight)

	// First dimensions row wins; later metric or storage duplicates are
	// ignored.
	if length > 0 && item.LengthIn == 0 {
		item.LengthIn = length
		item.WidthIn = width
		item.HeightIn = height
		item.WeightLbs = weight
		item.DimUnitCount = units
	}
}
