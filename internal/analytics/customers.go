package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// CustomerStat aggregates one customer's purchase pattern.
type CustomerStat struct {
	CustomerID   string
	TotalSpent   decimal.Decimal
	Transactions int
	AvgOrder     decimal.Decimal
	Products     []string // distinct product names, sorted
}

// Customers groups by customer ID and ranks by total spent descending.
// Customers with equal spend keep their first-appearance order.
func Customers(txns []model.Transaction) []CustomerStat {
	type accum struct {
		spent    decimal.Decimal
		count    int
		products map[string]bool
	}

	customers := make(map[string]*accum)
	var order []string
	for _, t := range txns {
		c, seen := customers[t.CustomerID]
		if !seen {
			c = &accum{spent: decimal.Zero, products: make(map[string]bool)}
			customers[t.CustomerID] = c
			order = append(order, t.CustomerID)
		}
		c.spent = c.spent.Add(t.Amount())
		c.count++
		c.products[t.ProductName] = true
	}

	stats := make([]CustomerStat, 0, len(order))
	for _, id := range order {
		c := customers[id]
		products := make([]string, 0, len(c.products))
		for p := range c.products {
			products = append(products, p)
		}
		sort.Strings(products)

		stats = append(stats, CustomerStat{
			CustomerID:   id,
			TotalSpent:   c.spent,
			Transactions: c.count,
			AvgOrder:     c.spent.Div(decimal.NewFromInt(int64(c.count))),
			Products:     products,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
	})
	return stats
}
