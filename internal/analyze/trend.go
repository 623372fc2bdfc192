package analyze

import (
	"sort"

	"github.com/sellerpulse/sellerpulse/internal/report"
)

// DailyCount is the units sold on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Units int    `json:"units"`
}

// DailySalesSeries buckets shipped units per purchase day, sorted by date.
// Only days with at least one sale appear; gap days are not zero-filled.
// Orders with an unparsable date are skipped.
func DailySalesSeries(shipped []report.OrderRecord) []DailyCount {
	byDay := map[string]int{}
	for _, o := range shipped {
		if !o.DateValid {
			continue
		}
		byDay[o.PurchaseDate.Format("2006-01-02")] += o.Units()
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]DailyCount, 0, len(dates))
	for _, date := range dates {
		series = append(series, DailyCount{Date: date, Units: byDay[date]})
	}
	return series
}

// WeekOverWeekGrowth compares the last seven sales days present in the
// series against the seven before them, as a signed percentage. A previous
// week with no sales yields zero growth.
func WeekOverWeekGrowth(series []DailyCount) float64 {
	window := series
	if len(window) > 14 {
		window = window[len(window)-14:]
	}

	split := len(window) - 7
	if split < 0 {
		split = 0
	}

	var current, previous int
	for i, day := range window {
		if i >= split {
			current += day.Units
		} else {
			previous += day.Units
		}
	}

	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}
