package report

// InventoryItem is one stocked SKU. Quantity and price coerce to zero when
// missing or malformed.
type InventoryItem struct {
	ASIN        string  `json:"asin"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product-name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ItemFromRecord builds a typed inventory item from a raw report record.
func ItemFromRecord(rec Record) InventoryItem {
	name := rec[colProductName]
	if name == "" {
		name = unknownProduct
	}

	qty, _ := parseUnits(rec[colQuantity])

	return InventoryItem{
		ASIN:        rec[colASIN],
		SKU:         rec[colSKU],
		ProductName: name,
		Quantity:    qty,
		Price:       parsePrice(rec[colPrice]),
	}
}

// ItemsFromRecords maps every raw record to a typed inventory item.
func ItemsFromRecords(records []Record) []InventoryItem {
	items := make([]InventoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, ItemFromRecord(rec))
	}
	return items
}
