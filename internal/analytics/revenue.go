// Package analytics provides read-only aggregations over a validated
// transaction set. Every function is pure, independent of the others,
// and defined on empty input. Where a ranking can tie, the record seen
// first in the input wins; grouping therefore tracks insertion order
// explicitly instead of relying on map iteration.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// DayStat aggregates one date's activity.
type DayStat struct {
	Date            string
	Revenue         decimal.Decimal
	Transactions    int
	UniqueCustomers int
}

// TotalRevenue sums amount over all transactions. Zero on empty input.
func TotalRevenue(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount())
	}
	return total
}

// DailyTrend groups transactions by date, ascending. Unique customers
// are deduplicated per day.
func DailyTrend(txns []model.Transaction) []DayStat {
	days, order := groupByDay(txns)

	stats := make([]DayStat, 0, len(order))
	for _, date := range order {
		d := days[date]
		stats = append(stats, DayStat{
			Date:            date,
			Revenue:         d.revenue,
			Transactions:    d.count,
			UniqueCustomers: len(d.customers),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// PeakDay returns the date with the highest accumulated revenue. Ties go
// to the date seen first in the input. ok is false on empty input.
func PeakDay(txns []model.Transaction) (DayStat, bool) {
	days, order := groupByDay(txns)
	if len(order) == 0 {
		return DayStat{}, false
	}

	peak := order[0]
	for _, date := range order[1:] {
		if days[date].revenue.GreaterThan(days[peak].revenue) {
			peak = date
		}
	}
	d := days[peak]
	return DayStat{
		Date:            peak,
		Revenue:         d.revenue,
		Transactions:    d.count,
		UniqueCustomers: len(d.customers),
	}, true
}

type dayAccum struct {
	revenue   decimal.Decimal
	count     int
	customers map[string]bool
}

func groupByDay(txns []model.Transaction) (map[string]*dayAccum, []string) {
	days := make(map[string]*dayAccum)
	var order []string
	for _, t := range txns {
		d, seen := days[t.Date]
		if !seen {
			d = &dayAccum{revenue: decimal.Zero, customers: make(map[string]bool)}
			days[t.Date] = d
			order = append(order, t.Date)
		}
		d.revenue = d.revenue.Add(t.Amount())
		d.count++
		d.customers[t.CustomerID] = true
	}
	return days, order
}
