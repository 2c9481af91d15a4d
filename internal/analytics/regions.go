package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

var hundred = decimal.NewFromInt(100)

// RegionStat aggregates sales for one region.
type RegionStat struct {
	Region       string
	Sales        decimal.Decimal
	Transactions int
	Share        decimal.Decimal // percent of total revenue; 0 when total is 0
}

// RegionSales groups by region and ranks by total sales descending.
// Regions with equal sales keep their first-appearance order.
func RegionSales(txns []model.Transaction) []RegionStat {
	type accum struct {
		sales decimal.Decimal
		count int
	}

	total := TotalRevenue(txns)

	regions := make(map[string]*accum)
	var order []string
	for _, t := range txns {
		r, seen := regions[t.Region]
		if !seen {
			r = &accum{sales: decimal.Zero}
			regions[t.Region] = r
			order = append(order, t.Region)
		}
		r.sales = r.sales.Add(t.Amount())
		r.count++
	}

	stats := make([]RegionStat, 0, len(order))
	for _, name := range order {
		r := regions[name]
		share := decimal.Zero
		if !total.IsZero() {
			share = r.sales.Div(total).Mul(hundred)
		}
		stats = append(stats, RegionStat{
			Region:       name,
			Sales:        r.sales,
			Transactions: r.count,
			Share:        share,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Sales.GreaterThan(stats[j].Sales)
	})
	return stats
}
