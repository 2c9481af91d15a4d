package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestParse(t *testing.T) {
	lines := []string{
		"T001|2024-12-01|P101|Laptop|2|45,000|C001|North",
	}

	txns := Parse(lines)
	require.Len(t, txns, 1)

	got := txns[0]
	assert.Equal(t, "T001", got.TransactionID)
	assert.Equal(t, "2024-12-01", got.Date)
	assert.Equal(t, "P101", got.ProductID)
	assert.Equal(t, "Laptop", got.ProductName)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.UnitPrice.Equal(dec("45000")), "unit price: got %s", got.UnitPrice)
	assert.Equal(t, "C001", got.CustomerID)
	assert.Equal(t, "North", got.Region)
	assert.True(t, got.Amount().Equal(dec("90000")), "amount: got %s", got.Amount())
}

func TestParse_StripsCommasFromProductName(t *testing.T) {
	txns := Parse([]string{"T002|2024-12-02|P102|Mouse,Wireless|1|500|C002|South"})
	require.Len(t, txns, 1)
	assert.Equal(t, "MouseWireless", txns[0].ProductName)
}

func TestParse_DropsWrongFieldCount(t *testing.T) {
	lines := []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001", // 7 fields
		"T002|2024-12-01|P102|Mouse|1|500|C002|South|extra",
	}
	assert.Empty(t, Parse(lines))
}

func TestParse_DropsNonNumericFields(t *testing.T) {
	lines := []string{
		"T001|2024-12-01|P101|Laptop|two|45000|C001|North",
		"T002|2024-12-01|P102|Mouse|1|cheap|C002|South",
		"T003|2024-12-01|P103|Keyboard|2.5|900|C003|East", // fractional quantity
	}
	assert.Empty(t, Parse(lines))
}

func TestParse_KeepsGoodRowsAmongBad(t *testing.T) {
	lines := []string{
		"bad line",
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
		"T002|2024-12-01|P102|Mouse|x|500|C002|South",
		"T003|2024-12-02|P103|Keyboard|3|1,200.50|C003|East",
	}
	txns := Parse(lines)
	require.Len(t, txns, 2)
	assert.Equal(t, "T001", txns[0].TransactionID)
	assert.Equal(t, "T003", txns[1].TransactionID)
	assert.True(t, txns[1].UnitPrice.Equal(dec("1200.50")))
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(nil))
}
