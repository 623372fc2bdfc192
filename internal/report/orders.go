package report

import (
	"strconv"
	"strings"
	"time"
)

// Column names consumed from Amazon order and inventory reports.
const (
	colPurchaseDate = "purchase-date"
	colASIN         = "asin"
	colProductName  = "product-name"
	colQuantity     = "quantity"
	colItemPrice    = "item-price"
	colOrderStatus  = "order-status"
	colCancelReason = "cancellation-reason"
	colSKU          = "sku"
	colPrice        = "price"
)

const unknownProduct = "Unknown Product"

// dateLayouts covers the purchase-date formats seen in order reports.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// OrderRecord is one order line item. Numeric fields coerce to zero when
// missing or unparsable; an unparsable purchase date leaves DateValid false
// so the record is skipped from time-windowed aggregates only.
type OrderRecord struct {
	PurchaseDate       time.Time `json:"-"`
	DateValid          bool      `json:"-"`
	RawDate            string    `json:"purchase-date"`
	ASIN               string    `json:"asin"`
	ProductName        string    `json:"product-name"`
	Quantity           int       `json:"quantity"`
	HasQuantity        bool      `json:"-"`
	ItemPrice          float64   `json:"item-price"`
	Status             string    `json:"order-status"`
	CancellationReason string    `json:"cancellation-reason"`
}

// OrderFromRecord builds a typed order from a raw report record.
func OrderFromRecord(rec Record) OrderRecord {
	rawDate := rec[colPurchaseDate]
	parsed, ok := parseDate(rawDate)

	qty, hasQty := parseUnits(rec[colQuantity])

	reason := strings.TrimSpace(rec[colCancelReason])
	if reason == "" {
		reason = "Unknown"
	}

	name := rec[colProductName]
	if name == "" {
		name = unknownProduct
	}

	return OrderRecord{
		PurchaseDate:       parsed,
		DateValid:          ok,
		RawDate:            rawDate,
		ASIN:               rec[colASIN],
		ProductName:        name,
		Quantity:           qty,
		HasQuantity:        hasQty,
		ItemPrice:          parsePrice(rec[colItemPrice]),
		Status:             rec[colOrderStatus],
		CancellationReason: reason,
	}
}

// OrdersFromRecords maps every raw record to a typed order.
func OrdersFromRecords(records []Record) []OrderRecord {
	orders := make([]OrderRecord, 0, len(records))
	for _, rec := range records {
		orders = append(orders, OrderFromRecord(rec))
	}
	return orders
}

// IsShipped reports whether the status marks the order as shipped.
// Matching is by substring, so "Shipped - Delivered to buyer" counts.
func (o OrderRecord) IsShipped() bool {
	return strings.Contains(o.Status, "Shipped")
}

// IsCancelled reports whether the status marks the order as cancelled.
func (o OrderRecord) IsCancelled() bool {
	return strings.Contains(o.Status, "Cancelled")
}

// Units returns the line quantity, zero when absent.
func (o OrderRecord) Units() int {
	return o.Quantity
}

// UnitsOrOne returns the line quantity, treating a missing quantity field as
// a single unit. Order totals count every line as at least one item.
func (o OrderRecord) UnitsOrOne() int {
	if !o.HasQuantity {
		return 1
	}
	return o.Quantity
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseUnits parses an integer quantity the forgiving way: a leading numeric
// prefix is accepted, anything else coerces to zero. The second result
// reports whether the field carried a value at all.
func parseUnits(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, true
	}
	return n, true
}

// parsePrice parses a decimal amount, coercing missing or malformed values
// to zero so downstream sums never see NaN.
func parsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
