package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-benchmark/internal/model"
)

func openTestCache(t *testing.T) *PriceCache {
	t.Helper()
	cache, err := OpenPriceCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func hourlySchedule(start time.Time, prices ...float64) model.PriceSchedule {
	schedule := make(model.PriceSchedule, len(prices))
	for i, p := range prices {
		schedule[i] = model.PricePoint{
			IntervalStart:  start.Add(time.Duration(i) * time.Hour),
			ChargePrice:    p,
			DischargePrice: p,
		}
	}
	return schedule
}

func TestPriceCacheRoundtrip(t *testing.T) {
	cache := openTestCache(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 50, 60, 70)))

	got, err := cache.Get("dayahead", "NL", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, start, got[0].IntervalStart)
	assert.Equal(t, []float64{50, 60, 70}, got.ChargePrices())
}

func TestPriceCacheRangeIsInclusiveAndOrdered(t *testing.T) {
	cache := openTestCache(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 10, 20, 30, 40)))

	// Middle slice, both ends inclusive.
	got, err := cache.Get("dayahead", "NL", start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30}, got.ChargePrices())

	// Uncovered range comes back empty, not an error.
	got, err = cache.Get("dayahead", "NL", start.Add(24*time.Hour), start.Add(30*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPriceCacheMergeKeepsExistingRows(t *testing.T) {
	cache := openTestCache(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 50, 60)))
	// Overlapping re-fetch with different values plus one new point.
	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 99, 99, 70)))

	got, err := cache.Get("dayahead", "NL", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 60, 70}, got.ChargePrices())
}

func TestPriceCacheSeparatesAreas(t *testing.T) {
	cache := openTestCache(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 50, 60)))
	require.NoError(t, cache.Merge("dayahead", "BE", hourlySchedule(start, 80, 90)))

	got, err := cache.Get("dayahead", "NL", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 60}, got.ChargePrices())

	got, err = cache.Get("dayahead", "BE", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 90}, got.ChargePrices())

	// An area with no rows is a miss, not the other area's data.
	got, err = cache.Get("dayahead", "DE", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPriceCacheSeparatesMarkets(t *testing.T) {
	cache := openTestCache(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Merge("dayahead", "NL", hourlySchedule(start, 50)))
	require.NoError(t, cache.Merge("imbalance", "NL", hourlySchedule(start, 80)))

	got, err := cache.Get("dayahead", "NL", start, start)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].ChargePrice)

	got, err = cache.Get("imbalance", "NL", start, start)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 80.0, got[0].ChargePrice)
}
