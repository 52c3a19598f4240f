package parser

import (
	"testing"

	"github.com/andresuchdata/wms-classify/internal/sheet"
)

func itemRow(skuCode, desc string, cost float64) sheet.Row {
	row := make(sheet.Row, 11)
	row[0] = sheet.Text(skuCode)
	row[imColDescription] = sheet.Text(desc)
	row[imColCost] = sheet.Number(cost)
	return row
}

func dimsRow(uom string, units, l, w, h, weight float64) sheet.Row {
	row := make(sheet.Row, 11)
	row[imColDimUOM] = sheet.Text(uom)
	row[imColDimUnits] = sheet.Number(units)
	row[imColLength] = sheet.Number(l)
	row[imColWidth] = sheet.Number(w)
	row[imColHeight] = sheet.Number(h)
	row[imColWeight] = sheet.Number(weight)
	return row
}

func TestItemMasterReaderBasic(t *testing.T) {
	r := NewItemMasterReader(NewNormalizer())
	r.ReadSheet(sheet.Sheet{Rows: []sheet.Row{
		{sheet.Text("View Item Report")},
		{sheet.Text("TianJin/WHI - Kent")},
		{sheet.Text("SKU")},
		itemRow("TJ-100", "Steel bracket", 4.25),
		{sheet.Text("Dimensional UOM")},
		dimsRow("Carton", 24, 18, 12, 10, 42.5),
	}})

	item, ok := r.Items()["TJ-100"]
	if !ok {
		t.Fatal("TJ-100 not parsed")
	}
	if item.Cost != 4.25 {
		t.Errorf("cost = %v, want 4.25", item.Cost)
	}
	if item.Description != "Steel bracket" {
		t.Errorf("description = %q", item.Description)
	}
	if item.Supplier != "TianJin" {
		t.Errorf("supplier = %q, want TianJin", item.Supplier)
	}
	if item.LengthIn != 18 || item.WidthIn != 12 || item.HeightIn != 10 {
		t.Errorf("dims = %v/%v/%v, want 18/12/10", item.LengthIn, item.WidthIn, item.HeightIn)
	}
	if item.WeightLbs != 42.5 || item.DimUnitCount != 24 {
		t.Errorf("weight/units = %v/%v, want 42.5/24", item.WeightLbs, item.DimUnitCount)
	}
}

func TestItemMasterReaderFirstDimensionsRowWins(t *testing.T) {
	r := NewItemMasterReader(NewNormalizer())
	r.ReadSheet(sheet.Sheet{Rows: []sheet.Row{
		itemRow("AM-5", "Valve", 9.0),
		{sheet.Text("Dimensional UOM")},
		dimsRow("Carton", 12, 20, 15, 9, 30),
		{sheet.Text("Dimensional UOM")},
		dimsRow("Pallet", 480, 48, 40, 55, 1200),
	}})

	item := r.Items()["AM-5"]
	if item.LengthIn != 20 {
		t.Errorf("length = %v, want 20 (first dimensions row wins)", item.LengthIn)
	}
	if item.DimUnitCount != 12 {
		t.Errorf("unit count = %v, want 12", item.DimUnitCount)
	}
}

func TestItemMasterReaderLookAheadConsumedOnFailure(t *testing.T) {
	// The row after the banner lacks a unit count, so it yields nothing,
	// but it still consumes the look-ahead: a later unlabeled row must not
	// be read as dimensions.
	incomplete := make(sheet.Row, 11)
	incomplete[imColDimUOM] = sheet.Text("Carton")

	r := NewItemMasterReader(NewNormalizer())
	r.ReadSheet(sheet.Sheet{Rows: []sheet.Row{
		itemRow("AM-6", "Elbow", 2.0),
		{sheet.Text("Dimensional UOM")},
		incomplete,
		dimsRow("Carton", 6, 10, 8, 4, 11),
	}})

	item := r.Items()["AM-6"]
	if item.LengthIn != 0 {
		t.Errorf("length = %v, want 0 (look-ahead already consumed)", item.LengthIn)
	}
}

func TestItemMasterReaderNonCostRowBecomesSupplier(t *testing.T) {
	r := NewItemMasterReader(NewNormalizer())
	r.ReadSheet(sheet.Sheet{Rows: []sheet.Row{
		{sheet.Text("Changzhou Nuode")},
		itemRow("ND-1", "Gasket", 1.1),
		{sheet.Text("HX/ WHI")},
		itemRow("HX-2", "Seal", 3.3),
	}})

	if got := r.Items()["ND-1"].Supplier; got != "Nuode" {
		t.Errorf("ND-1 supplier = %q, want Nuode", got)
	}
	if got := r.Items()["HX-2"].Supplier; got != "HX" {
		t.Errorf("HX-2 supplier = %q, want HX", got)
	}
}

func TestItemMasterReaderSheetResetsContext(t *testing.T) {
	r := NewItemMasterReader(NewNormalizer())
	r.ReadWorkbook(&sheet.Workbook{Sheets: []sheet.Sheet{
		{Name: "Page1", Rows: []sheet.Row{
			{sheet.Text("AMC")},
			itemRow("AM-7", "Clamp", 5.0),
			{sheet.Text("Dimensional UOM")},
		}},
		{Name: "Page2", Rows: []sheet.Row{
			// Armed look-ahead from the previous sheet must not leak:
			// this unlabeled row would otherwise be read as dimensions.
			dimsRow("Carton", 10, 30, 20, 10, 50),
			itemRow("AM-8", "Hinge", 6.0),
		}},
	}})

	if got := r.Items()["AM-7"].LengthIn; got != 0 {
		t.Errorf("AM-7 length = %v, want 0 (flag must not cross sheets)", got)
	}
	if got, ok := r.Items()["AM-8"]; !ok || got.Supplier != "" {
		t.Errorf("AM-8 supplier = %q, want empty (supplier context resets per sheet)", got.Supplier)
	}
}

func TestItemMasterReaderZeroCostIsNotASKU(t *testing.T) {
	r := NewItemMasterReader(NewNormalizer())
	r.ReadSheet(sheet.Sheet{Rows: []sheet.Row{
		itemRow("FREE-1", "Sample", 0),
	}})

	if _, ok := r.Items()["FREE-1"]; ok {
		t.Error("zero-cost row must be treated as a supplier banner, not a SKU")
	}
}
