// Package catalog fetches external product metadata and joins it onto
// validated transactions by numeric product ID.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Product is one entry as served by the catalog API.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// Client fetches products from the remote catalog.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

// NewClient creates a catalog client. limit caps the number of products
// requested per fetch.
func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchProducts retrieves the product list. Callers treat any failure as
// a degenerate empty catalog; nothing downstream depends on a match.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	url := fmt.Sprintf("%s?limit=%d", c.baseURL, c.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}
	return payload.Products, nil
}
