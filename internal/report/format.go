package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// english renders monetary values with thousands separators.
var english = message.NewPrinter(language.English)

// money formats an amount with separators and two decimal places.
func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return english.Sprintf("%.2f", f)
}

// percent formats a percentage with one decimal place.
func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
