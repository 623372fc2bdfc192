package analyze

import (
	"math"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

// SalesRow is one line of the per-product sales table. DaysRemaining is
// projected from the 7-day daily average.
type SalesRow struct {
	ASIN          string `json:"asin"`
	Name          string `json:"name"`
	D3            int    `json:"d3"`
	D7            int    `json:"d7"`
	D30           int    `json:"d30"`
	Stock         int    `json:"stock"`
	DaysRemaining int    `json:"daysRemaining"`
}

// Overview is the full derived snapshot the dashboard serves and the chat
// context is built from. It is a pure function of the two record sets and
// the reference time; recompute it whenever either changes.
type Overview struct {
	TotalOrders     int     `json:"totalOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	Last7DayRevenue float64 `json:"last7DayRevenue"`
	TotalUnits      int     `json:"totalUnits"`
	UniqueProducts  int     `json:"uniqueProducts"`

	TotalSKUs      int     `json:"totalSKUs"`
	LowStockCount  int     `json:"lowStockCount"`
	CriticalCount  int     `json:"criticalCount"`
	LowStockShare  float64 `json:"lowStockShare"`
	InventoryUnits int     `json:"inventoryUnits"`
	InventoryValue float64 `json:"inventoryValue"`

	Last30DayOrders int     `json:"last30DayOrders"`
	AvgDailyOrders  float64 `json:"avgDailyOrders"`

	TurnoverRate   float64 `json:"turnoverRate"`
	TurnoverRating string  `json:"turnoverRating"`
	StagnantCount  int     `json:"stagnantCount"`

	CancellationRate    float64       `json:"cancellationRate"`
	CancellationReasons []ReasonCount `json:"cancellationReasons"`

	TopSelling []RankedProduct         `json:"topSelling"`
	SalesTable []SalesRow              `json:"salesTable"`
	LowStock   []report.InventoryItem  `json:"lowStock"`
	Reorders   []ReorderRecommendation `json:"reorders"`

	DailySales   []DailyCount `json:"dailySales"`
	WeeklyGrowth float64      `json:"weeklyGrowth"`
}

// BuildOverview derives every dashboard aggregate from the order and
// inventory record sets at the given reference time.
func BuildOverview(orders []report.OrderRecord, inventory []report.InventoryItem, now time.Time) *Overview {
	shipped, cancelled := Partition(orders)
	agg := SalesByASIN(shipped, now)
	stock := StockByASIN(inventory)
	low := LowStock(inventory, LowStockThreshold)

	ov := &Overview{
		TotalOrders:     len(orders),
		ShippedOrders:   len(shipped),
		CancelledOrders: len(cancelled),
		TotalRevenue:    TotalRevenue(shipped),
		Last7DayRevenue: RevenueSince(shipped, now, 7),
		TotalUnits:      TotalUnits(shipped),
		UniqueProducts:  len(agg.ASINs),

		TotalSKUs:      len(inventory),
		LowStockCount:  len(low),
		CriticalCount:  CriticalStock(inventory),
		InventoryUnits: InventoryUnits(inventory),
		InventoryValue: InventoryValue(inventory),

		Last30DayOrders: OrdersSince(shipped, now, 30),

		StagnantCount: len(StagnantItems(inventory, agg)),

		CancellationRate:    CancellationRate(len(shipped), len(cancelled)),
		CancellationReasons: TopCancellationReasons(cancelled, 3),

		TopSelling: TopSelling(agg, stock, 5),
		LowStock:   low,
		Reorders:   ReorderRecommendations(agg, stock, RunwayThresholdDays, TargetCoverageDays),
	}

	if len(shipped) > 0 {
		ov.AvgOrderValue = ov.TotalRevenue / float64(len(shipped))
	}
	if len(inventory) > 0 {
		ov.LowStockShare = math.Round(float64(len(low)) / float64(len(inventory)) * 100)
	}
	ov.AvgDailyOrders = float64(ov.Last30DayOrders) / 30

	ov.TurnoverRate = TurnoverRate(agg.TotalD30(), ov.InventoryUnits)
	ov.TurnoverRating = TurnoverRating(ov.TurnoverRate)

	ov.SalesTable = make([]SalesRow, 0, len(agg.ASINs))
	for _, asin := range agg.ASINs {
		s := agg.ByASIN[asin]
		ov.SalesTable = append(ov.SalesTable, SalesRow{
			ASIN:          asin,
			Name:          s.Name,
			D3:            s.D3,
			D7:            s.D7,
			D30:           s.D30,
			Stock:         stock[asin],
			DaysRemaining: DaysRemaining(stock[asin], s.D7, 7),
		})
	}

	ov.DailySales = DailySalesSeries(shipped)
	ov.WeeklyGrowth = WeekOverWeekGrowth(ov.DailySales)

	return ov
}
