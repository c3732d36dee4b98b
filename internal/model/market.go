package model

import (
	"fmt"
	"time"
)

// Market is one electricity market the benchmark can be run against.
// Each market has its own timestep resolution; every scenario run is scoped
// to exactly one market.
type Market struct {
	Name          string  `json:"name"`
	TimestepHours float64 `json:"timestep_hours"`
}

var (
	// MarketDayahead trades hourly blocks.
	MarketDayahead = Market{Name: "dayahead", TimestepHours: 1.0}
	// MarketImbalance settles on 15-minute intervals.
	MarketImbalance = Market{Name: "imbalance", TimestepHours: 0.25}
)

// Markets lists all supported markets.
func Markets() []Market {
	return []Market{MarketDayahead, MarketImbalance}
}

// MarketByName resolves a market from its name.
func MarketByName(name string) (Market, error) {
	for _, m := range Markets() {
		if m.Name == name {
			return m, nil
		}
	}
	return Market{}, fmt.Errorf("unknown market %q", name)
}

// TimestepDuration returns the market resolution as a time.Duration.
func (m Market) TimestepDuration() time.Duration {
	return time.Duration(m.TimestepHours * float64(time.Hour))
}

// ExpectedScheduleLength is the number of price points a schedule covering
// [start, end] should contain, end inclusive.
func (m Market) ExpectedScheduleLength(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/m.TimestepDuration()) + 1
}
