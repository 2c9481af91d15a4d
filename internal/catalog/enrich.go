package catalog

import (
	"strconv"

	"github.com/salescope-dev/salescope/internal/model"
)

// ProductNumber extracts the first contiguous run of ASCII digits from a
// product ID: "P101" -> 101. ok is false when no digits are present.
func ProductNumber(productID string) (int, bool) {
	start, end := -1, -1
	for i := 0; i < len(productID); i++ {
		if productID[i] >= '0' && productID[i] <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(productID[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BuildMapping reduces the fetched products to a numeric-ID lookup.
// Duplicate IDs resolve last-write-wins; entries without a usable ID
// are skipped.
func BuildMapping(products []Product) map[int]model.CatalogEntry {
	mapping := make(map[int]model.CatalogEntry, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			continue
		}
		mapping[p.ID] = model.CatalogEntry{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}

// Enrich joins each transaction against the catalog mapping, producing
// exactly one enriched record per input record in input order. The
// input is never modified.
func Enrich(txns []model.Transaction, mapping map[int]model.CatalogEntry) []model.Enriched {
	enriched := make([]model.Enriched, 0, len(txns))
	for _, t := range txns {
		e := model.Enriched{Transaction: t}
		if num, ok := ProductNumber(t.ProductID); ok {
			if entry, found := mapping[num]; found {
				e.Category = entry.Category
				e.Brand = entry.Brand
				e.Rating = entry.Rating
				e.Match = true
			}
		}
		enriched = append(enriched, e)
	}
	return enriched
}
