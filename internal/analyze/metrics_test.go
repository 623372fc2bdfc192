package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func shippedOrder(asin, name string, qty int, price float64, daysAgo int) report.OrderRecord {
	return report.OrderRecord{
		PurchaseDate: testNow.AddDate(0, 0, -daysAgo),
		DateValid:    true,
		ASIN:         asin,
		ProductName:  name,
		Quantity:     qty,
		HasQuantity:  true,
		ItemPrice:    price,
		Status:       "Shipped",
	}
}

func cancelledOrder(reason string) report.OrderRecord {
	if reason == "" {
		reason = "Unknown"
	}
	return report.OrderRecord{
		Status:             "Cancelled",
		CancellationReason: reason,
	}
}

func item(asin string, qty int, price float64) report.InventoryItem {
	return report.InventoryItem{ASIN: asin, SKU: "SKU-" + asin, ProductName: "Item " + asin, Quantity: qty, Price: price}
}

func TestPartitionBucketsAreDisjoint(t *testing.T) {
	orders := []report.OrderRecord{
		{Status: "Shipped"},
		{Status: "Shipped - Delivered to buyer"},
		{Status: "Cancelled"},
		{Status: "Pending"},
		{Status: ""},
	}

	shipped, cancelled := Partition(orders)
	assert.Len(t, shipped, 2)
	assert.Len(t, cancelled, 1)
	// Pending and blank statuses land in neither bucket.
	assert.Equal(t, 3, len(shipped)+len(cancelled))
}

func TestSalesByASINNestedWindows(t *testing.T) {
	shipped := []report.OrderRecord{
		shippedOrder("A1", "Widget", 2, 100, 1),
		shippedOrder("A1", "Widget", 3, 100, 5),
		shippedOrder("A1", "Widget", 4, 100, 20),
		shippedOrder("A1", "Widget", 7, 100, 45),
	}

	agg := SalesByASIN(shipped, testNow)
	s := agg.Get("A1")
	require.NotNil(t, s)

	assert.Equal(t, 2, s.D3)
	assert.Equal(t, 5, s.D7)
	assert.Equal(t, 9, s.D30)
	assert.LessOrEqual(t, s.D3, s.D7)
	assert.LessOrEqual(t, s.D7, s.D30)
}

func TestSalesByASINNameFromFirstOrder(t *testing.T) {
	shipped := []report.OrderRecord{
		shippedOrder("A1", "First Listing Title", 1, 100, 1),
		shippedOrder("A1", "Renamed Listing", 1, 100, 2),
	}

	agg := SalesByASIN(shipped, testNow)
	assert.Equal(t, "First Listing Title", agg.Get("A1").Name)
}

func TestSalesByASINInvalidDateSkippedFromWindows(t *testing.T) {
	bad := shippedOrder("A2", "No Date", 5, 100, 1)
	bad.DateValid = false

	agg := SalesByASIN([]report.OrderRecord{bad}, testNow)
	s := agg.Get("A2")
	require.NotNil(t, s, "the product still registers")
	assert.Equal(t, 0, s.D30)
}

func TestStockByASINLastEntryWins(t *testing.T) {
	stock := StockByASIN([]report.InventoryItem{
		item("A1", 5, 100),
		item("A1", 12, 100),
	})
	assert.Equal(t, 12, stock["A1"])
}

func TestLowStockStrictThreshold(t *testing.T) {
	inventory := []report.InventoryItem{
		item("A1", 9, 100),
		item("A2", 10, 100),
	}

	low := LowStock(inventory, 10)
	require.Len(t, low, 1)
	assert.Equal(t, "A1", low[0].ASIN)
}

func TestTopSellingStableOrder(t *testing.T) {
	shipped := []report.OrderRecord{
		shippedOrder("A1", "First", 3, 100, 1),
		shippedOrder("A2", "Second", 5, 100, 1),
		shippedOrder("A3", "Third", 3, 100, 1),
	}

	agg := SalesByASIN(shipped, testNow)
	ranked := TopSelling(agg, map[string]int{"A2": 4}, 5)

	require.Len(t, ranked, 3)
	assert.Equal(t, "A2", ranked[0].ASIN)
	assert.Equal(t, 4, ranked[0].Stock)
	// A1 and A3 tie on d30; report order breaks the tie.
	assert.Equal(t, "A1", ranked[1].ASIN)
	assert.Equal(t, "A3", ranked[2].ASIN)
}

func TestTopSellingLimit(t *testing.T) {
	shipped := []report.OrderRecord{
		shippedOrder("A1", "a", 1, 0, 1),
		shippedOrder("A2", "b", 2, 0, 1),
		shippedOrder("A3", "c", 3, 0, 1),
	}
	agg := SalesByASIN(shipped, testNow)
	assert.Len(t, TopSelling(agg, nil, 2), 2)
}

func TestDaysRemainingUnboundedSentinel(t *testing.T) {
	assert.Equal(t, DaysUnbounded, DaysRemaining(0, 0, 7))
	assert.Equal(t, DaysUnbounded, DaysRemaining(50, 0, 7))
}

func TestDaysRemainingWorkedExample(t *testing.T) {
	// One order of 5 units two days ago, 10 units on hand.
	shipped := []report.OrderRecord{shippedOrder("A1", "Widget", 5, 100, 2)}
	agg := SalesByASIN(shipped, testNow)
	s := agg.Get("A1")

	assert.Equal(t, 5, s.D3)
	assert.Equal(t, 5, s.D7)
	assert.Equal(t, 5, s.D30)
	assert.Equal(t, 14, DaysRemaining(10, s.D7, 7))
}

func TestReorderRecommendations(t *testing.T) {
	shipped := []report.OrderRecord{
		shippedOrder("A1", "Fast Mover", 60, 100, 1), // 2/day, 5 in stock
		shippedOrder("A2", "Healthy", 30, 100, 1),    // 1/day, 90 in stock
		shippedOrder("A3", "Urgent", 90, 100, 1),     // 3/day, 3 in stock
	}
	agg := SalesByASIN(shipped, testNow)
	stock := map[string]int{"A1": 5, "A2": 90, "A3": 3}

	recs := ReorderRecommendations(agg, stock, RunwayThresholdDays, TargetCoverageDays)
	require.Len(t, recs, 2, "A2 has 90 days of runway and stays out")

	// Most urgent first.
	assert.Equal(t, "A3", recs[0].ASIN)
	assert.Equal(t, 1, recs[0].DaysRemaining)
	assert.Equal(t, 177, recs[0].SuggestedOrder) // ceil(3*60) - 3

	assert.Equal(t, "A1", recs[1].ASIN)
	assert.Equal(t, 3, recs[1].DaysRemaining) // round(5 / 2)
	assert.Equal(t, 115, recs[1].SuggestedOrder)
}

func TestReorderSuggestionNeverNegative(t *testing.T) {
	// Slow mover with big stock relative to coverage but short runway is
	// impossible; construct the clamp directly instead: tiny daily sales,
	// stock above coverage, runway forced by a low threshold.
	shipped := []report.OrderRecord{shippedOrder("A1", "x", 30, 0, 1)}
	agg := SalesByASIN(shipped, testNow)

	recs := ReorderRecommendations(agg, map[string]int{"A1": 70}, 100, 60)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].SuggestedOrder)
}

func TestTurnoverRate(t *testing.T) {
	assert.Equal(t, 0.0, TurnoverRate(0, 100))
	assert.Equal(t, "Low", TurnoverRating(TurnoverRate(0, 100)))

	assert.Equal(t, 40.0, TurnoverRate(40, 100))
	assert.Equal(t, "Good", TurnoverRating(40))

	assert.Equal(t, 0.0, TurnoverRate(10, 0), "empty inventory yields zero, not a division error")
	assert.Equal(t, "Average", TurnoverRating(20))
	assert.Equal(t, "Good", TurnoverRating(30))
}

func TestStagnantItems(t *testing.T) {
	shipped := []report.OrderRecord{shippedOrder("A1", "Seller", 1, 100, 1)}
	agg := SalesByASIN(shipped, testNow)

	inventory := []report.InventoryItem{
		item("A1", 10, 100), // has sales
		item("A2", 10, 100), // no sales at all
		item("A3", 0, 100),  // no sales but also no stock
	}

	stagnant := StagnantItems(inventory, agg)
	require.Len(t, stagnant, 1)
	assert.Equal(t, "A2", stagnant[0].ASIN)
}

func TestCancellationBreakdown(t *testing.T) {
	cancelled := []report.OrderRecord{
		cancelledOrder("Buyer changed mind"),
		cancelledOrder(""),
	}

	breakdown := CancellationBreakdown(cancelled)
	assert.Equal(t, map[string]int{
		"Buyer changed mind": 1,
		"Unknown":            1,
	}, breakdown)
}

func TestTopCancellationReasons(t *testing.T) {
	cancelled := []report.OrderRecord{
		cancelledOrder("Price too high"),
		cancelledOrder("Buyer changed mind"),
		cancelledOrder("Buyer changed mind"),
		cancelledOrder("Found cheaper elsewhere"),
		cancelledOrder("Ordered by mistake"),
	}

	top := TopCancellationReasons(cancelled, 3)
	require.Len(t, top, 3)
	assert.Equal(t, ReasonCount{Reason: "Buyer changed mind", Count: 2}, top[0])
	// Equal counts keep first-occurrence order.
	assert.Equal(t, "Price too high", top[1].Reason)
	assert.Equal(t, "Found cheaper elsewhere", top[2].Reason)
}

func TestCancellationRate(t *testing.T) {
	assert.Equal(t, 0.0, CancellationRate(0, 0))
	assert.InDelta(t, 25.0, CancellationRate(3, 1), 1e-9)
}

func TestRevenueAndUnits(t *testing.T) {
	orders := []report.OrderRecord{
		shippedOrder("A1", "a", 2, 100, 1),
		shippedOrder("A2", "b", 1, 50.5, 10),
	}
	noQty := shippedOrder("A3", "c", 0, 10, 1)
	noQty.HasQuantity = false
	orders = append(orders, noQty)

	assert.InDelta(t, 160.5, TotalRevenue(orders), 1e-9)
	assert.InDelta(t, 110.0, RevenueSince(orders, testNow, 7), 1e-9)
	assert.Equal(t, 2, OrdersSince(orders, testNow, 7))
	assert.Equal(t, 4, TotalUnits(orders), "missing quantity counts as one item")
}

func TestInventoryTotals(t *testing.T) {
	inventory := []report.InventoryItem{
		item("A1", 10, 100),
		item("A2", 5, 20),
	}
	assert.Equal(t, 15, InventoryUnits(inventory))
	assert.InDelta(t, 1100.0, InventoryValue(inventory), 1e-9)
}

func TestProductTotals(t *testing.T) {
	orders := []report.OrderRecord{
		shippedOrder("A1", "First", 2, 100, 1),
		shippedOrder("A2", "Second", 1, 50, 1),
		shippedOrder("A1", "First", 3, 75, 1),
	}

	totals := ProductTotals(orders)
	require.Len(t, totals, 2)
	assert.Equal(t, "A1", totals[0].ASIN)
	assert.Equal(t, 5, totals[0].Units)
	assert.InDelta(t, 175.0, totals[0].Revenue, 1e-9)
	assert.Equal(t, "A2", totals[1].ASIN)
}

func TestBuildOverview(t *testing.T) {
	orders := []report.OrderRecord{
		shippedOrder("A1", "Widget", 5, 100, 2),
		cancelledOrder("Buyer changed mind"),
		{Status: "Pending"},
	}
	inventory := []report.InventoryItem{
		item("A1", 10, 40),
		item("A2", 2, 10),
	}

	ov := BuildOverview(orders, inventory, testNow)

	assert.Equal(t, 3, ov.TotalOrders)
	assert.Equal(t, 1, ov.ShippedOrders)
	assert.Equal(t, 1, ov.CancelledOrders)
	assert.InDelta(t, 100.0, ov.TotalRevenue, 1e-9)
	assert.InDelta(t, 100.0, ov.AvgOrderValue, 1e-9)
	assert.Equal(t, 1, ov.UniqueProducts)

	assert.Equal(t, 2, ov.TotalSKUs)
	assert.Equal(t, 1, ov.LowStockCount)
	assert.Equal(t, 1, ov.CriticalCount)
	assert.Equal(t, 50.0, ov.LowStockShare)
	assert.Equal(t, 12, ov.InventoryUnits)
	assert.InDelta(t, 420.0, ov.InventoryValue, 1e-9)

	assert.InDelta(t, 50.0, ov.CancellationRate, 1e-9)
	assert.Equal(t, 1, ov.StagnantCount) // A2 in stock, no sales

	require.Len(t, ov.SalesTable, 1)
	assert.Equal(t, 14, ov.SalesTable[0].DaysRemaining)

	assert.InDelta(t, float64(5)/12*100, ov.TurnoverRate, 1e-9)
	assert.Equal(t, "Good", ov.TurnoverRating)
}
