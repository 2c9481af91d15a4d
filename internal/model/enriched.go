package model

// CatalogEntry is external product metadata keyed by numeric product ID.
type CatalogEntry struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// Enriched is a Transaction plus catalog-derived fields. Category, Brand
// and Rating carry values only when Match is true.
type Enriched struct {
	Transaction
	Category string
	Brand    string
	Rating   float64
	Match    bool
}

// ValidationSummary describes one validation/filter pass.
type ValidationSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}
