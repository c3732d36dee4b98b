package data

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"battery-benchmark/internal/model"
)

// ErrInsufficientCache reports that the cache does not fully cover the
// requested range and cold loading is disallowed. Callers get an explicit
// error instead of a silent network fetch.
var ErrInsufficientCache = errors.New("insufficient cached price data and cold load disallowed")

// HotLoader serves price schedules from the cache, falling back to the
// upstream source only when allowed. Fresh data is merged back into the
// cache before being returned. Area scopes the cache rows; schedules from
// one market area never answer a request for another.
type HotLoader struct {
	Cache         *PriceCache
	Source        MarketPriceSource
	Area          string
	AllowColdLoad bool
}

// Load returns a complete schedule for [start, end], end inclusive.
func (h *HotLoader) Load(ctx context.Context, start, end time.Time) (model.PriceSchedule, error) {
	market := h.Source.Market()
	expected := h.Source.ExpectedLength(start, end)
	if expected <= 0 {
		return nil, fmt.Errorf("load %s prices: empty range %s..%s", market.Name, start, end)
	}
	step := market.TimestepDuration()

	cached, err := h.Cache.Get(market.Name, h.Area, start, end)
	if err != nil {
		return nil, err
	}
	if covers(cached, start, expected, step) {
		log.Printf("[HotLoad] Cache hit: %d %s price points (%s..%s)",
			len(cached), market.Name, start.Format(time.RFC3339), end.Format(time.RFC3339))
		return cached, nil
	}

	if !h.AllowColdLoad {
		return nil, fmt.Errorf("load %s prices: have %d of %d points: %w",
			market.Name, len(cached), expected, ErrInsufficientCache)
	}

	log.Printf("[HotLoad] Cache miss: %d of %d %s price points, cold loading",
		len(cached), expected, market.Name)
	fresh, err := h.Source.ColdLoad(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load %s prices: %w", market.Name, err)
	}
	if err := h.Cache.Merge(market.Name, h.Area, fresh); err != nil {
		return nil, err
	}

	// Read back through the cache so previously stored rows keep priority
	// over the fresh fetch.
	merged, err := h.Cache.Get(market.Name, h.Area, start, end)
	if err != nil {
		return nil, err
	}
	if !covers(merged, start, expected, step) {
		return nil, fmt.Errorf("load %s prices: incomplete data after cold load: %d of %d points",
			market.Name, len(merged), expected)
	}
	return merged, nil
}

// covers reports whether the schedule fills the requested range completely:
// the right count, starting at start, spaced one market timestep apart. Row
// count alone is not enough; rows inside the range but off the market grid
// must not pass as a full cache hit.
func covers(schedule model.PriceSchedule, start time.Time, expected int, step time.Duration) bool {
	if len(schedule) != expected {
		return false
	}
	for i, pt := range schedule {
		if !pt.IntervalStart.Equal(start.Add(time.Duration(i) * step)) {
			return false
		}
	}
	return true
}
