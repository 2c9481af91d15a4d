package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// ProductStat aggregates sales for one product name.
type ProductStat struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// TopProducts returns the n best sellers by total quantity, descending.
// Ties keep first-appearance order.
func TopProducts(txns []model.Transaction, n int) []ProductStat {
	stats := groupByProduct(txns)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowProducts returns products whose total quantity is below threshold,
// ascending by quantity. Ties keep first-appearance order.
func LowProducts(txns []model.Transaction, threshold int) []ProductStat {
	var low []ProductStat
	for _, s := range groupByProduct(txns) {
		if s.Quantity < threshold {
			low = append(low, s)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

func groupByProduct(txns []model.Transaction) []ProductStat {
	type accum struct {
		quantity int
		revenue  decimal.Decimal
	}

	products := make(map[string]*accum)
	var order []string
	for _, t := range txns {
		p, seen := products[t.ProductName]
		if !seen {
			p = &accum{revenue: decimal.Zero}
			products[t.ProductName] = p
			order = append(order, t.ProductName)
		}
		p.quantity += t.Quantity
		p.revenue = p.revenue.Add(t.Amount())
	}

	stats := make([]ProductStat, 0, len(order))
	for _, name := range order {
		p := products[name]
		stats = append(stats, ProductStat{Name: name, Quantity: p.quantity, Revenue: p.revenue})
	}
	return stats
}
