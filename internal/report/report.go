// Package report renders the plain-text sales report. It lays out the
// outputs of the analytics and enrichment stages; every numeric and
// ordering decision is inherited from those stages, not made here.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/analytics"
	"github.com/salescope-dev/salescope/internal/model"
)

const (
	divider       = "==============================================="
	sectionPrefix = "--- "
	sectionSuffix = " ---"

	// unmatchedListLimit caps the rendered unmatched-ID list.
	unmatchedListLimit = 100
)

// Data carries everything the renderer needs for one report.
type Data struct {
	GeneratedAt time.Time
	ReportID    string
	Valid       []model.Transaction
	Enriched    []model.Enriched

	TopProducts  int
	TopCustomers int
	TrendRows    int
	LowThreshold int
}

// Build renders the full report as a single string.
func Build(d Data) string {
	var b strings.Builder

	writeHeader(&b, d)
	writeSummary(&b, d.Valid)
	writeRegions(&b, d.Valid)
	writeTopProducts(&b, d.Valid, d.TopProducts)
	writeTopCustomers(&b, d.Valid, d.TopCustomers)
	writeTrend(&b, d.Valid, d.TrendRows)
	writeHighlights(&b, d.Valid, d.LowThreshold)
	writeEnrichment(&b, d.Enriched)

	b.WriteString(divider + "\n")
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s%s%s\n", sectionPrefix, title, sectionSuffix)
}

func writeHeader(b *strings.Builder, d Data) {
	b.WriteString(divider + "\n")
	b.WriteString("          SALES ANALYTICS REPORT\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(b, "Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Report ID: %s\n", d.ReportID)
	fmt.Fprintf(b, "Records analyzed: %d\n\n", len(d.Valid))
}

func writeSummary(b *strings.Builder, txns []model.Transaction) {
	section(b, "OVERALL SUMMARY")

	total := analytics.TotalRevenue(txns)
	avg := decimal.Zero
	if len(txns) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(txns))))
	}

	fmt.Fprintf(b, "Total Revenue:    %s\n", money(total))
	fmt.Fprintf(b, "Transactions:     %d\n", len(txns))
	fmt.Fprintf(b, "Average Order:    %s\n", money(avg))
	fmt.Fprintf(b, "Date Range:       %s\n\n", dateRange(txns))
}

// dateRange returns the lexical min/max of the distinct dates present.
func dateRange(txns []model.Transaction) string {
	if len(txns) == 0 {
		return "no data"
	}
	minDate, maxDate := txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date < minDate {
			minDate = t.Date
		}
		if t.Date > maxDate {
			maxDate = t.Date
		}
	}
	return minDate + " to " + maxDate
}

func writeRegions(b *strings.Builder, txns []model.Transaction) {
	section(b, "REGION BREAKDOWN")
	fmt.Fprintf(b, "%-15s %18s %6s %8s\n", "Region", "Sales", "Txns", "Share")
	for _, r := range analytics.RegionSales(txns) {
		fmt.Fprintf(b, "%-15s %18s %6d %8s\n", r.Region, money(r.Sales), r.Transactions, percent(r.Share))
	}
	b.WriteString("\n")
}

func writeTopProducts(b *strings.Builder, txns []model.Transaction, n int) {
	section(b, fmt.Sprintf("TOP %d PRODUCTS BY QUANTITY", n))
	fmt.Fprintf(b, "%-25s %8s %18s\n", "Product", "Qty", "Revenue")
	for _, p := range analytics.TopProducts(txns, n) {
		fmt.Fprintf(b, "%-25s %8d %18s\n", p.Name, p.Quantity, money(p.Revenue))
	}
	b.WriteString("\n")
}

func writeTopCustomers(b *strings.Builder, txns []model.Transaction, n int) {
	section(b, fmt.Sprintf("TOP %d CUSTOMERS BY SPEND", n))
	fmt.Fprintf(b, "%-10s %18s %6s %18s %s\n", "Customer", "Spent", "Txns", "Avg Order", "Products")
	customers := analytics.Customers(txns)
	if len(customers) > n {
		customers = customers[:n]
	}
	for _, c := range customers {
		fmt.Fprintf(b, "%-10s %18s %6d %18s %s\n",
			c.CustomerID, money(c.TotalSpent), c.Transactions, money(c.AvgOrder),
			strings.Join(c.Products, ", "))
	}
	b.WriteString("\n")
}

// writeTrend renders the highest-revenue days, revenue descending. Days
// with equal revenue keep chronological order.
func writeTrend(b *strings.Builder, txns []model.Transaction, rows int) {
	section(b, fmt.Sprintf("DAILY TREND (TOP %d BY REVENUE)", rows))

	trend := analytics.DailyTrend(txns)
	sort.SliceStable(trend, func(i, j int) bool {
		return trend[i].Revenue.GreaterThan(trend[j].Revenue)
	})
	if len(trend) > rows {
		trend = trend[:rows]
	}

	fmt.Fprintf(b, "%-12s %18s %6s %10s\n", "Date", "Revenue", "Txns", "Customers")
	for _, day := range trend {
		fmt.Fprintf(b, "%-12s %18s %6d %10d\n", day.Date, money(day.Revenue), day.Transactions, day.UniqueCustomers)
	}
	b.WriteString("\n")
}

func writeHighlights(b *strings.Builder, txns []model.Transaction, lowThreshold int) {
	section(b, "HIGHLIGHTS")

	if peak, ok := analytics.PeakDay(txns); ok {
		fmt.Fprintf(b, "Peak day: %s (%s across %d transactions)\n", peak.Date, money(peak.Revenue), peak.Transactions)
	} else {
		b.WriteString("Peak day: no data\n")
	}

	low := analytics.LowProducts(txns, lowThreshold)
	if len(low) == 0 {
		fmt.Fprintf(b, "Low performers (under %d units): none\n\n", lowThreshold)
		return
	}
	parts := make([]string, 0, len(low))
	for _, p := range low {
		parts = append(parts, fmt.Sprintf("%s (%d)", p.Name, p.Quantity))
	}
	fmt.Fprintf(b, "Low performers (under %d units): %s\n\n", lowThreshold, strings.Join(parts, ", "))
}

func writeEnrichment(b *strings.Builder, enriched []model.Enriched) {
	section(b, "ENRICHMENT SUMMARY")

	matched := 0
	unmatchedSeen := make(map[string]bool)
	var unmatched []string
	for _, e := range enriched {
		if e.Match {
			matched++
			continue
		}
		if !unmatchedSeen[e.ProductID] {
			unmatchedSeen[e.ProductID] = true
			unmatched = append(unmatched, e.ProductID)
		}
	}
	sort.Strings(unmatched)

	rate := 0.0
	if len(enriched) > 0 {
		rate = float64(matched) / float64(len(enriched)) * 100
	}

	list := strings.Join(unmatched, ", ")
	if len(list) > unmatchedListLimit {
		list = list[:unmatchedListLimit]
	}

	fmt.Fprintf(b, "Enriched records: %d\n", len(enriched))
	fmt.Fprintf(b, "Catalog matches:  %d\n", matched)
	fmt.Fprintf(b, "Success rate:     %.1f%%\n", rate)
	fmt.Fprintf(b, "Unmatched product IDs: %s\n", list)
}
