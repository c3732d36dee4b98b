package data

import (
	"context"
	"time"

	"battery-benchmark/internal/model"
)

// MarketPriceSource loads a validated price schedule for one market.
// Implementations are composed with a shared Client rather than inheriting
// shared behavior; the timezone and cache plumbing are free functions.
type MarketPriceSource interface {
	Market() model.Market
	// ExpectedLength is the number of price points a complete schedule over
	// [start, end] must contain, end inclusive.
	ExpectedLength(start, end time.Time) int
	// ColdLoad fetches the schedule from the upstream API.
	ColdLoad(ctx context.Context, start, end time.Time) (model.PriceSchedule, error)
}

// AlignRange expresses a requested time range in the market area's timezone.
// Upstream APIs key their data on local market time.
func AlignRange(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	return start.In(loc), end.In(loc)
}

// DayaheadSource loads hourly dayahead auction prices.
type DayaheadSource struct {
	Client *Client
	Area   string
	Loc    *time.Location
}

func (s *DayaheadSource) Market() model.Market { return model.MarketDayahead }

func (s *DayaheadSource) ExpectedLength(start, end time.Time) int {
	return model.MarketDayahead.ExpectedScheduleLength(start, end)
}

func (s *DayaheadSource) ColdLoad(ctx context.Context, start, end time.Time) (model.PriceSchedule, error) {
	start, end = AlignRange(start, end, s.location())
	return s.Client.QueryDayaheadPrices(ctx, s.Area, start, end)
}

func (s *DayaheadSource) location() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}

// ImbalanceSource loads quarter-hourly imbalance settlement prices.
type ImbalanceSource struct {
	Client *Client
	Area   string
	Loc    *time.Location
}

func (s *ImbalanceSource) Market() model.Market { return model.MarketImbalance }

func (s *ImbalanceSource) ExpectedLength(start, end time.Time) int {
	return model.MarketImbalance.ExpectedScheduleLength(start, end)
}

func (s *ImbalanceSource) ColdLoad(ctx context.Context, start, end time.Time) (model.PriceSchedule, error) {
	start, end = AlignRange(start, end, s.location())
	return s.Client.QueryImbalancePrices(ctx, s.Area, start, end)
}

func (s *ImbalanceSource) location() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}
