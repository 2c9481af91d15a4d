// Package sales turns raw pipe-delimited log lines into validated
// transactions and writes the enriched export.
package sales

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

const (
	numFields    = 8
	colTxnID     = 0
	colDate      = 1
	colProductID = 2
	colProduct   = 3
	colQuantity  = 4
	colUnitPrice = 5
	colCustomer  = 6
	colRegion    = 7
)

// Parse converts raw data lines into transactions. Lines with the wrong
// field count or non-numeric quantity/price are dropped silently; the
// caller sees only a shorter output than input.
func Parse(lines []string) []model.Transaction {
	var txns []model.Transaction
	for _, line := range lines {
		txn, ok := parseLine(line)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

func parseLine(line string) (model.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != numFields {
		return model.Transaction{}, false
	}

	// Product names may arrive with stray commas from upstream
	// formatting; numeric fields may carry thousands separators.
	name := stripCommas(parts[colProduct])
	quantityStr := stripCommas(parts[colQuantity])
	priceStr := stripCommas(parts[colUnitPrice])

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		return model.Transaction{}, false
	}
	unitPrice, err := decimal.NewFromString(priceStr)
	if err != nil {
		return model.Transaction{}, false
	}

	return model.Transaction{
		TransactionID: parts[colTxnID],
		Date:          parts[colDate],
		ProductID:     parts[colProductID],
		ProductName:   name,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    parts[colCustomer],
		Region:        parts[colRegion],
	}, true
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
