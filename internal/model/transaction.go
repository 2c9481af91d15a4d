package model

import "github.com/shopspring/decimal"

// Transaction represents a parsed sales log row.
type Transaction struct {
	TransactionID string
	Date          string // YYYY-MM-DD; lexical order is chronological order
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	CustomerID    string
	Region        string
}

// Amount returns quantity * unit price. Always recomputed, never stored.
func (t Transaction) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Quantity)).Mul(t.UnitPrice)
}
