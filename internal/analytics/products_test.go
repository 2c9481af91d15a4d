package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope-dev/salescope/internal/model"
)

func TestTopProducts(t *testing.T) {
	// Mouse: 9 units, Keyboard: 3, Laptop: 2, Monitor: 1.
	stats := TopProducts(sampleSet(), 2)
	require.Len(t, stats, 2)

	assert.Equal(t, "Mouse", stats[0].Name)
	assert.Equal(t, 9, stats[0].Quantity)
	assert.True(t, stats[0].Revenue.Equal(dec("4500")))

	assert.Equal(t, "Keyboard", stats[1].Name)
}

func TestTopProducts_NLargerThanProducts(t *testing.T) {
	stats := TopProducts(sampleSet(), 10)
	assert.Len(t, stats, 4)
}

func TestTopProducts_TieKeepsFirstSeenOrder(t *testing.T) {
	txns := []model.Transaction{
		txn("T001", "2024-12-01", "P101", "Webcam", 3, "100", "C001", "North"),
		txn("T002", "2024-12-01", "P102", "Headset", 3, "200", "C002", "South"),
	}
	stats := TopProducts(txns, 5)
	require.Len(t, stats, 2)
	assert.Equal(t, "Webcam", stats[0].Name, "tie goes to the product seen first")
	assert.Equal(t, "Headset", stats[1].Name)
}

func TestLowProducts(t *testing.T) {
	stats := LowProducts(sampleSet(), 3)
	require.Len(t, stats, 2)

	// Ascending by quantity: Monitor (1), Laptop (2).
	assert.Equal(t, "Monitor", stats[0].Name)
	assert.Equal(t, 1, stats[0].Quantity)
	assert.Equal(t, "Laptop", stats[1].Name)
}

func TestLowProducts_NoneBelowThreshold(t *testing.T) {
	assert.Empty(t, LowProducts(sampleSet(), 1))
}

func TestLowProducts_Empty(t *testing.T) {
	assert.Empty(t, LowProducts(nil, 10))
}
