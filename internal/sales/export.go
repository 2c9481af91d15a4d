package sales

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/salescope-dev/salescope/internal/model"
)

// ExportHeader is the header row of the enriched data export.
const ExportHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

const (
	exportFields   = 12
	colAPICategory = 8
	colAPIBrand    = 9
	colAPIRating   = 10
	colAPIMatch    = 11
)

// MarshalEnriched converts an enriched record to its export row.
// Enrichment fields render as empty strings when there was no match.
func MarshalEnriched(e model.Enriched) []string {
	row := make([]string, exportFields)
	row[colTxnID] = e.TransactionID
	row[colDate] = e.Date
	row[colProductID] = e.ProductID
	row[colProduct] = e.ProductName
	row[colQuantity] = strconv.Itoa(e.Quantity)
	row[colUnitPrice] = e.UnitPrice.String()
	row[colCustomer] = e.CustomerID
	row[colRegion] = e.Region
	if e.Match {
		row[colAPICategory] = e.Category
		row[colAPIBrand] = e.Brand
		row[colAPIRating] = strconv.FormatFloat(e.Rating, 'f', -1, 64)
	}
	row[colAPIMatch] = strconv.FormatBool(e.Match)
	return row
}

// WriteEnriched writes the pipe-delimited enriched export, header first.
func WriteEnriched(w io.Writer, recs []model.Enriched) error {
	if _, err := fmt.Fprintln(w, ExportHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for i, e := range recs {
		if _, err := fmt.Fprintln(w, strings.Join(MarshalEnriched(e), "|")); err != nil {
			return fmt.Errorf("writing export row %d: %w", i+2, err)
		}
	}
	return nil
}
