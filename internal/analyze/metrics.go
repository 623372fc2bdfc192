package analyze

import (
	"math"
	"sort"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

// DaysUnbounded is the days-remaining sentinel for items with no recent
// sales. Stock without velocity never runs out.
const DaysUnbounded = 999

// Default thresholds used by the dashboard.
const (
	LowStockThreshold   = 10
	CriticalStockUnits  = 3
	RunwayThresholdDays = 30
	TargetCoverageDays  = 60
)

// ProductSales holds the nested trailing unit counts for one ASIN.
// An order two days old counts toward all three windows.
type ProductSales struct {
	ASIN string `json:"asin"`
	Name string `json:"name"`
	D3   int    `json:"d3"`
	D7   int    `json:"d7"`
	D30  int    `json:"d30"`
}

// SalesAggregate is a per-ASIN sales view that remembers first-appearance
// order, so rankings derived from it tie-break deterministically.
type SalesAggregate struct {
	ASINs  []string
	ByASIN map[string]*ProductSales
}

// Get returns the aggregate for an ASIN, or nil when it never sold.
func (a *SalesAggregate) Get(asin string) *ProductSales {
	return a.ByASIN[asin]
}

// TotalD30 sums units sold across all products in the 30-day window.
func (a *SalesAggregate) TotalD30() int {
	total := 0
	for _, asin := range a.ASINs {
		total += a.ByASIN[asin].D30
	}
	return total
}

// Partition splits orders into shipped and cancelled buckets by substring
// status match. Orders matching neither (for example "Pending") end up in
// neither bucket and are excluded from revenue and cancellation stats.
func Partition(orders []report.OrderRecord) (shipped, cancelled []report.OrderRecord) {
	for _, o := range orders {
		switch {
		case o.IsShipped():
			shipped = append(shipped, o)
		case o.IsCancelled():
			cancelled = append(cancelled, o)
		}
	}
	return shipped, cancelled
}

// SalesByASIN groups shipped orders into trailing 3/7/30 day unit counts
// relative to now. The display name comes from the first order seen for an
// ASIN and is never overwritten. Orders with an unparsable purchase date
// still register the product but add no window counts.
func SalesByASIN(shipped []report.OrderRecord, now time.Time) *SalesAggregate {
	agg := &SalesAggregate{ByASIN: map[string]*ProductSales{}}

	for _, o := range shipped {
		sales, ok := agg.ByASIN[o.ASIN]
		if !ok {
			sales = &ProductSales{ASIN: o.ASIN, Name: o.ProductName}
			agg.ByASIN[o.ASIN] = sales
			agg.ASINs = append(agg.ASINs, o.ASIN)
		}

		if !o.DateValid {
			continue
		}
		days := daysAgo(now, o.PurchaseDate)
		qty := o.Units()
		if days <= 3 {
			sales.D3 += qty
		}
		if days <= 7 {
			sales.D7 += qty
		}
		if days <= 30 {
			sales.D30 += qty
		}
	}

	return agg
}

// StockByASIN builds the stock lookup joined against sales by ASIN.
// On duplicate ASINs the last report row wins.
func StockByASIN(inventory []report.InventoryItem) map[string]int {
	stock := make(map[string]int, len(inventory))
	for _, item := range inventory {
		stock[item.ASIN] = item.Quantity
	}
	return stock
}

// LowStock returns items with strictly fewer units than the threshold.
func LowStock(inventory []report.InventoryItem, threshold int) []report.InventoryItem {
	var low []report.InventoryItem
	for _, item := range inventory {
		if item.Quantity < threshold {
			low = append(low, item)
		}
	}
	return low
}

// CriticalStock counts items at or below the critical unit level.
func CriticalStock(inventory []report.InventoryItem) int {
	count := 0
	for _, item := range inventory {
		if item.Quantity <= CriticalStockUnits {
			count++
		}
	}
	return count
}

// RankedProduct is one entry of the top-sellers list.
type RankedProduct struct {
	ASIN        string `json:"asin"`
	Name        string `json:"name"`
	UnitsSold30 int    `json:"unitsSold30"`
	Stock       int    `json:"stock"`
}

// TopSelling ranks products by 30-day units, descending. Ties keep the
// order products first appeared in the report.
func TopSelling(agg *SalesAggregate, stock map[string]int, limit int) []RankedProduct {
	ranked := make([]RankedProduct, 0, len(agg.ASINs))
	for _, asin := range agg.ASINs {
		s := agg.ByASIN[asin]
		ranked = append(ranked, RankedProduct{
			ASIN:        asin,
			Name:        s.Name,
			UnitsSold30: s.D30,
			Stock:       stock[asin],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UnitsSold30 > ranked[j].UnitsSold30
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DaysRemaining projects how many days current stock lasts at the average
// daily velocity of the given window. Zero velocity returns DaysUnbounded.
func DaysRemaining(stock, unitsSold, windowDays int) int {
	dailyAvg := float64(unitsSold) / float64(windowDays)
	if dailyAvg <= 0 {
		return DaysUnbounded
	}
	return int(math.Round(float64(stock) / dailyAvg))
}

// ReorderRecommendation flags an ASIN whose projected runway is too short.
type ReorderRecommendation struct {
	ASIN           string `json:"asin"`
	Name           string `json:"name"`
	CurrentStock   int    `json:"currentStock"`
	DaysRemaining  int    `json:"daysRemaining"`
	SuggestedOrder int    `json:"suggestedOrder"`
}

// ReorderRecommendations lists products that deplete within the runway
// threshold, most urgent first. The projection uses the 30-day daily
// average, not the 7-day one shown in the sales table. The suggested
// order tops stock up to the coverage target.
func ReorderRecommendations(agg *SalesAggregate, stock map[string]int, runwayDays, coverageDays int) []ReorderRecommendation {
	var recs []ReorderRecommendation
	for _, asin := range agg.ASINs {
		s := agg.ByASIN[asin]
		current := stock[asin]
		daily := float64(s.D30) / 30
		remaining := DaysRemaining(current, s.D30, 30)
		if remaining >= runwayDays {
			continue
		}
		suggested := int(math.Ceil(daily*float64(coverageDays))) - current
		if suggested < 0 {
			suggested = 0
		}
		recs = append(recs, ReorderRecommendation{
			ASIN:           asin,
			Name:           s.Name,
			CurrentStock:   current,
			DaysRemaining:  remaining,
			SuggestedOrder: suggested,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].DaysRemaining < recs[j].DaysRemaining
	})
	return recs
}

// TurnoverRate is the share of on-hand inventory sold in the last 30 days,
// as a percentage. Empty inventory yields zero.
func TurnoverRate(sold30, inventoryUnits int) float64 {
	if inventoryUnits == 0 {
		return 0
	}
	return float64(sold30) / float64(inventoryUnits) * 100
}

// TurnoverRating classifies a turnover percentage.
func TurnoverRating(rate float64) string {
	switch {
	case rate < 15:
		return "Low"
	case rate < 30:
		return "Average"
	default:
		return "Good"
	}
}

// StagnantItems returns in-stock items with zero 30-day sales.
func StagnantItems(inventory []report.InventoryItem, agg *SalesAggregate) []report.InventoryItem {
	var stagnant []report.InventoryItem
	for _, item := range inventory {
		if item.Quantity <= 0 {
			continue
		}
		if s := agg.Get(item.ASIN); s == nil || s.D30 == 0 {
			stagnant = append(stagnant, item)
		}
	}
	return stagnant
}

// ReasonCount is one cancellation reason with its order count.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// CancellationBreakdown counts cancelled orders per reason. Orders without
// a recorded reason fall under "Unknown".
func CancellationBreakdown(cancelled []report.OrderRecord) map[string]int {
	reasons := map[string]int{}
	for _, o := range cancelled {
		reasons[o.CancellationReason]++
	}
	return reasons
}

// TopCancellationReasons ranks reasons by count, descending, keeping the
// order reasons first occurred for equal counts.
func TopCancellationReasons(cancelled []report.OrderRecord, limit int) []ReasonCount {
	counts := map[string]int{}
	var order []string
	for _, o := range cancelled {
		if _, seen := counts[o.CancellationReason]; !seen {
			order = append(order, o.CancellationReason)
		}
		counts[o.CancellationReason]++
	}

	ranked := make([]ReasonCount, 0, len(order))
	for _, reason := range order {
		ranked = append(ranked, ReasonCount{Reason: reason, Count: counts[reason]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CancellationRate is cancelled over (shipped + cancelled), as a
// percentage. Zero when no orders fell into either bucket.
func CancellationRate(shipped, cancelled int) float64 {
	total := shipped + cancelled
	if total == 0 {
		return 0
	}
	return float64(cancelled) / float64(total) * 100
}

// TotalRevenue sums the item price across orders.
func TotalRevenue(orders []report.OrderRecord) float64 {
	total := 0.0
	for _, o := range orders {
		total += o.ItemPrice
	}
	return total
}

// RevenueSince sums the item price of orders within the trailing window.
// Orders with an unparsable date are left out.
func RevenueSince(orders []report.OrderRecord, now time.Time, windowDays int) float64 {
	total := 0.0
	for _, o := range orders {
		if o.DateValid && daysAgo(now, o.PurchaseDate) <= windowDays {
			total += o.ItemPrice
		}
	}
	return total
}

// OrdersSince counts orders within the trailing window.
func OrdersSince(orders []report.OrderRecord, now time.Time, windowDays int) int {
	count := 0
	for _, o := range orders {
		if o.DateValid && daysAgo(now, o.PurchaseDate) <= windowDays {
			count++
		}
	}
	return count
}

// TotalUnits sums line quantities, counting lines without a quantity field
// as one item each.
func TotalUnits(orders []report.OrderRecord) int {
	total := 0
	for _, o := range orders {
		total += o.UnitsOrOne()
	}
	return total
}

// InventoryUnits sums on-hand quantity across the catalog.
func InventoryUnits(inventory []report.InventoryItem) int {
	total := 0
	for _, item := range inventory {
		total += item.Quantity
	}
	return total
}

// InventoryValue sums price times quantity across the catalog.
func InventoryValue(inventory []report.InventoryItem) float64 {
	total := 0.0
	for _, item := range inventory {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ProductTotal is the lifetime (non-windowed) tally for one ASIN.
type ProductTotal struct {
	ASIN    string  `json:"asin"`
	Name    string  `json:"name"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// ProductTotals tallies units and revenue per ASIN across all given
// orders, lines without a quantity counting as one unit. Insertion order
// of first appearance is preserved.
func ProductTotals(orders []report.OrderRecord) []ProductTotal {
	index := map[string]int{}
	var totals []ProductTotal
	for _, o := range orders {
		i, ok := index[o.ASIN]
		if !ok {
			i = len(totals)
			index[o.ASIN] = i
			totals = append(totals, ProductTotal{ASIN: o.ASIN, Name: o.ProductName})
		}
		totals[i].Units += o.UnitsOrOne()
		totals[i].Revenue += o.ItemPrice
	}
	return totals
}

// daysAgo is the whole number of days between now and then, truncated.
func daysAgo(now, then time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}
