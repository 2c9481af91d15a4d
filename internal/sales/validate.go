package sales

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// Filter holds the optional narrowing criteria applied after validation.
// An empty Region means no region filter; Valid=false on a bound means
// that bound is open.
type Filter struct {
	Region    string
	MinAmount decimal.NullDecimal
	MaxAmount decimal.NullDecimal
}

// Observations describes the pre-filter valid set, for display to the
// user before they choose filters. Reproducible from the valid set.
type Observations struct {
	Regions   []string // distinct, sorted
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	HasAmount bool // false when the valid set is empty
}

// Result is the outcome of one validation/filter pass.
type Result struct {
	Valid        []model.Transaction
	Invalid      int
	Summary      model.ValidationSummary
	Observations Observations
}

// ValidateAndFilter applies the business rules, records diagnostics over
// the surviving set, then applies the optional filters in order (region
// first, then inclusive amount range). Calling it again on its own
// output with the same filter returns the same set with zero invalid.
func ValidateAndFilter(txns []model.Transaction, filter Filter) Result {
	var valid []model.Transaction
	invalid := 0

	for _, t := range txns {
		if !isValid(t) {
			invalid++
			continue
		}
		valid = append(valid, t)
	}

	obs := observe(valid)

	filtered := valid
	filteredByRegion := 0
	if filter.Region != "" {
		before := len(filtered)
		var kept []model.Transaction
		for _, t := range filtered {
			if t.Region == filter.Region {
				kept = append(kept, t)
			}
		}
		filtered = kept
		filteredByRegion = before - len(filtered)
	}

	filteredByAmount := 0
	if filter.MinAmount.Valid || filter.MaxAmount.Valid {
		before := len(filtered)
		var kept []model.Transaction
		for _, t := range filtered {
			amount := t.Amount()
			if filter.MinAmount.Valid && amount.LessThan(filter.MinAmount.Decimal) {
				continue
			}
			if filter.MaxAmount.Valid && amount.GreaterThan(filter.MaxAmount.Decimal) {
				continue
			}
			kept = append(kept, t)
		}
		filtered = kept
		filteredByAmount = before - len(filtered)
	}

	return Result{
		Valid:   filtered,
		Invalid: invalid,
		Summary: model.ValidationSummary{
			TotalInput:       len(txns),
			Invalid:          invalid,
			FilteredByRegion: filteredByRegion,
			FilteredByAmount: filteredByAmount,
			FinalCount:       len(filtered),
		},
		Observations: obs,
	}
}

// isValid applies the business rules in order; the first failing rule
// decides, so each record counts as invalid exactly once.
func isValid(t model.Transaction) bool {
	if t.TransactionID == "" || t.ProductID == "" || t.CustomerID == "" || t.Region == "" {
		return false
	}
	if t.Quantity <= 0 || !t.UnitPrice.IsPositive() {
		return false
	}
	if !strings.HasPrefix(t.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(t.ProductID, "P") {
		return false
	}
	return strings.HasPrefix(t.CustomerID, "C")
}

func observe(valid []model.Transaction) Observations {
	if len(valid) == 0 {
		return Observations{}
	}

	seen := make(map[string]bool)
	var regions []string
	minAmt := valid[0].Amount()
	maxAmt := minAmt
	for _, t := range valid {
		if !seen[t.Region] {
			seen[t.Region] = true
			regions = append(regions, t.Region)
		}
		amount := t.Amount()
		if amount.LessThan(minAmt) {
			minAmt = amount
		}
		if amount.GreaterThan(maxAmt) {
			maxAmt = amount
		}
	}
	sort.Strings(regions)

	return Observations{
		Regions:   regions,
		MinAmount: minAmt,
		MaxAmount: maxAmt,
		HasAmount: true,
	}
}
