// internal/parser/depletion.go
package parser

import (
	"strings"

	"github.com/andresuchdata/wms-classify/internal/domain"
	"github.com/andresuchdata/wms-classify/internal/sheet"
)

// Column positions in the inventory depletion export.
const (
	depColBeginningInv = 2
	depColReceived     = 5
	depColShipped      = 9
	depColEndingInv    = 13
	depColAvgShipWk    = 16
	depColWeeksOnHand  = 17
)

// Activity counters live in this inclusive column range; a row with no
// number anywhere in it is a supplier header, not data.
const (
	depActivityColFirst = 2
	depActivityColLast  = 17
)

const warehouseMarker = "Warehouse:"

// supplierHeaderHint appears in the column next to the beginning-inventory
// column on supplier section rows.
const supplierHeaderHint = "Item Activity From"

// DepletionReader walks the inventory depletion export and aggregates one
// record per SKU code. The export is sectioned by warehouse and supplier
// banners, so the reader tracks both and stamps them onto every data row
// that follows.
type DepletionReader struct {
	normalizer *Normalizer
	records    *domain.RecordSet

	warehouse string
	supplier  string
}

func NewDepletionReader(n *Normalizer) *DepletionReader {
	return &DepletionReader{
		normalizer: n,
		records:    domain.NewRecordSet(),
	}
}

// ReadSheet consumes every row of the sheet in file order.
func (r *DepletionReader) ReadSheet(s sheet.Sheet) {
	for _, row := range s.Rows {
		r.consume(row)
	}
}

// Records returns the aggregated SKU records in first-seen order.
func (r *DepletionReader) Records() *domain.RecordSet {
	return r.records
}

func (r *DepletionReader) consume(row sheet.Row) {
	first := row.At(0).Trimmed()

	// Warehouse section markers reset context and carry no SKU.
	if strings.HasPrefix(first, warehouseMarker) {
		r.warehouse = strings.TrimSpace(strings.TrimPrefix(first, warehouseMarker))
		return
	}

	// Headers, totals and report banners.
	if first == "" || first == "SKU" ||
		strings.HasPrefix(first, "Total") ||
		strings.HasPrefix(first, "Grand") ||
		strings.HasPrefix(first, "Item Activity") {
		return
	}

	// A row without a beginning-inventory number is a supplier banner when
	// it also has no counter anywhere in the activity range. Sparse data
	// rows fall through and are read below. This can misread a legitimate
	// all-blank SKU row as a banner; the source gives no way to tell.
	if !isNumber(row.At(depColBeginningInv)) {
		if strings.Contains(row.At(depColBeginningInv+1).Trimmed(), supplierHeaderHint) ||
			!anyNumberInRange(row, depActivityColFirst, depActivityColLast) {
			r.supplier = r.normalizer.Resolve(first)
			return
		}
	}

	// SKU data row. Non-numeric cells degrade to zero; the worst outcome
	// is an under-counted SKU, never a failed run.
	avgShip := floatAt(row, depColAvgShipWk)
	woh := floatAt(row, depColWeeksOnHand)
	beginning := floatAt(row, depColBeginningInv)
	received := floatAt(row, depColReceived)
	shipped := floatAt(row, depColShipped)
	ending := floatAt(row, depColEndingInv)

	if rec, ok := r.records.Get(first); ok {
		// Same SKU in another warehouse section: counters are additive.
		rec.AvgWeeklyShipments += avgShip
		rec.BeginningInventory += int(beginning)
		rec.EndingInventory += int(ending)
		rec.Received += int(received)
		rec.Shipped += int(shipped)
		// Weeks-on-hand follows the dominant section: the new sighting
		// wins only when it exceeds the previously accumulated total.
		if avgShip > rec.AvgWeeklyShipments-avgShip {
			rec.WeeksOnHand = woh
			rec.Warehouse = r.warehouse
		}
		return
	}

	r.records.Add(&domain.SKURecord{
		SKUCode:            first,
		Supplier:           r.supplier,
		Warehouse:          r.warehouse,
		AvgWeeklyShipments: avgShip,
		WeeksOnHand:        woh,
		BeginningInventory: int(beginning),
		EndingInventory:    int(ending),
		Received:           int(received),
		Shipped:            int(shipped),
	})
}

func isNumber(c sheet.Cell) bool {
	_, ok := c.Float()
	return ok
}

func floatAt(row sheet.Row, i int) float64 {
	v, _ := row.At(i).Float()
	return v
}

func anyNumberInRange(row sheet.Row, first, last int) bool {
	for i := first; i <= last; i++ {
		if isNumber(row.At(i)) {
			return true
		}
	}
	return false
}
