package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope-dev/salescope/internal/model"
)

func txn(id, date, productID, product string, qty int, price, customer, region string) model.Transaction {
	return model.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   product,
		Quantity:      qty,
		UnitPrice:     dec(price),
		CustomerID:    customer,
		Region:        region,
	}
}

func validSet() []model.Transaction {
	return []model.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North"),
		txn("T002", "2024-12-01", "P102", "Mouse", 5, "500", "C002", "South"),
		txn("T003", "2024-12-02", "P103", "Keyboard", 3, "1200", "C001", "North"),
	}
}

func TestValidateAndFilter_AllValid(t *testing.T) {
	res := ValidateAndFilter(validSet(), Filter{})

	assert.Len(t, res.Valid, 3)
	assert.Zero(t, res.Invalid)
	assert.Equal(t, model.ValidationSummary{
		TotalInput: 3,
		FinalCount: 3,
	}, res.Summary)
}

func TestValidateAndFilter_BusinessRules(t *testing.T) {
	txns := []model.Transaction{
		txn("", "2024-12-01", "P101", "Laptop", 1, "100", "C001", "North"),     // missing txn id
		txn("T002", "2024-12-01", "", "Laptop", 1, "100", "C001", "North"),     // missing product id
		txn("T003", "2024-12-01", "P101", "Laptop", 0, "100", "C001", "North"), // zero quantity
		txn("T004", "2024-12-01", "P101", "Laptop", 1, "0", "C001", "North"),   // zero price
		txn("X005", "2024-12-01", "P101", "Laptop", 1, "100", "C001", "North"), // bad T prefix
		txn("T006", "2024-12-01", "Q101", "Laptop", 1, "100", "C001", "North"), // bad P prefix
		txn("T007", "2024-12-01", "P101", "Laptop", 1, "100", "X001", "North"), // bad C prefix
		txn("T008", "2024-12-01", "P101", "Laptop", 1, "100", "C001", ""),      // missing region
		txn("T009", "2024-12-01", "P101", "Laptop", 1, "100", "C001", "North"), // valid
	}

	res := ValidateAndFilter(txns, Filter{})
	require.Len(t, res.Valid, 1)
	assert.Equal(t, "T009", res.Valid[0].TransactionID)
	assert.Equal(t, 8, res.Invalid)
	assert.Equal(t, 8, res.Summary.Invalid)
	assert.Equal(t, 9, res.Summary.TotalInput)
}

func TestValidateAndFilter_CountsAddUp(t *testing.T) {
	raw := []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
		"only|seven|fields|in|this|row|here",
		"T002|2024-12-01|P102|Mouse|bad|500|C002|South",
		"T003|2024-12-02|X103|Keyboard|3|1200|C003|East",
		"T004|2024-12-02|P104|Monitor|1|8000|C004|West",
	}

	txns := Parse(raw)
	res := ValidateAndFilter(txns, Filter{})

	malformed := len(raw) - len(txns)
	assert.Equal(t, 2, malformed)
	assert.Equal(t, len(raw), len(res.Valid)+res.Invalid+malformed)
}

func TestValidateAndFilter_RegionFilter(t *testing.T) {
	res := ValidateAndFilter(validSet(), Filter{Region: "North"})

	require.Len(t, res.Valid, 2)
	for _, tx := range res.Valid {
		assert.Equal(t, "North", tx.Region)
	}
	assert.Equal(t, 1, res.Summary.FilteredByRegion)
	assert.Zero(t, res.Summary.FilteredByAmount)
	assert.Equal(t, 2, res.Summary.FinalCount)
}

func TestValidateAndFilter_RegionIsCaseSensitive(t *testing.T) {
	res := ValidateAndFilter(validSet(), Filter{Region: "north"})
	assert.Empty(t, res.Valid)
	assert.Equal(t, 3, res.Summary.FilteredByRegion)
}

func TestValidateAndFilter_AmountRangeInclusive(t *testing.T) {
	// Amounts: 90000, 2500, 3600.
	filter := Filter{
		MinAmount: decimal.NewNullDecimal(dec("2500")),
		MaxAmount: decimal.NewNullDecimal(dec("3600")),
	}
	res := ValidateAndFilter(validSet(), filter)

	require.Len(t, res.Valid, 2)
	assert.Equal(t, "T002", res.Valid[0].TransactionID)
	assert.Equal(t, "T003", res.Valid[1].TransactionID)
	assert.Equal(t, 1, res.Summary.FilteredByAmount)
}

func TestValidateAndFilter_RegionThenAmount(t *testing.T) {
	filter := Filter{
		Region:    "North",
		MinAmount: decimal.NewNullDecimal(dec("10000")),
	}
	res := ValidateAndFilter(validSet(), filter)

	require.Len(t, res.Valid, 1)
	assert.Equal(t, "T001", res.Valid[0].TransactionID)
	assert.Equal(t, 1, res.Summary.FilteredByRegion)
	assert.Equal(t, 1, res.Summary.FilteredByAmount)
}

func TestValidateAndFilter_Idempotent(t *testing.T) {
	filter := Filter{Region: "North"}
	first := ValidateAndFilter(validSet(), filter)
	second := ValidateAndFilter(first.Valid, filter)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Zero(t, second.Invalid)
	assert.Zero(t, second.Summary.FilteredByRegion)
	assert.Zero(t, second.Summary.FilteredByAmount)
}

func TestValidateAndFilter_Observations(t *testing.T) {
	res := ValidateAndFilter(validSet(), Filter{Region: "Nowhere"})

	// Observations describe the pre-filter valid set even when the
	// filter then removes everything.
	obs := res.Observations
	assert.True(t, obs.HasAmount)
	assert.Equal(t, []string{"North", "South"}, obs.Regions)
	assert.True(t, obs.MinAmount.Equal(dec("2500")), "min: got %s", obs.MinAmount)
	assert.True(t, obs.MaxAmount.Equal(dec("90000")), "max: got %s", obs.MaxAmount)
	assert.Empty(t, res.Valid)
}

func TestValidateAndFilter_EmptyInput(t *testing.T) {
	res := ValidateAndFilter(nil, Filter{})

	assert.Empty(t, res.Valid)
	assert.Zero(t, res.Invalid)
	assert.False(t, res.Observations.HasAmount)
	assert.Empty(t, res.Observations.Regions)
}
