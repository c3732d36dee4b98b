package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-benchmark/internal/model"
)

func TestComputePotential(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prices := make(model.PriceSchedule, 100)
	for i := range prices {
		prices[i] = model.PricePoint{
			IntervalStart:  start.Add(time.Duration(i) * time.Hour),
			ChargePrice:    float64(i + 1),
			DischargePrice: float64(i + 1),
		}
	}

	p := ComputePotential(model.MarketDayahead, prices)

	assert.Equal(t, "dayahead", p.Market)
	assert.Equal(t, 100, p.Count)
	assert.Equal(t, start, p.Start)
	assert.Equal(t, start.Add(99*time.Hour), p.End)

	assert.Equal(t, 1.0, p.MinDischargePrice)
	assert.Equal(t, 100.0, p.MaxDischargePrice)
	assert.InDelta(t, 50.5, p.MeanDischargePrice, 1e-9)
	assert.InDelta(t, 5.0, p.P05DischargePrice, 1e-9)
	assert.InDelta(t, 95.0, p.P95DischargePrice, 1e-9)
	assert.InDelta(t, 90.0, p.SpreadP95P05, 1e-9)
}

func TestComputePotentialEmpty(t *testing.T) {
	p := ComputePotential(model.MarketImbalance, nil)
	assert.Equal(t, "imbalance", p.Market)
	assert.Equal(t, 0, p.Count)
}

func TestComputePotentialDoesNotReorderInput(t *testing.T) {
	prices := model.PriceSchedule{
		{DischargePrice: 30},
		{DischargePrice: 10},
		{DischargePrice: 20},
	}
	ComputePotential(model.MarketDayahead, prices)
	assert.Equal(t, []float64{30, 10, 20}, prices.DischargePrices())
}

func TestRankMarkets(t *testing.T) {
	params := model.BatteryParams{
		MaxPowerKW:          1000,
		MinCapacityKWh:      0,
		MaxCapacityKWh:      2000,
		InitialCapacityKWh:  1000,
		FinalCapacityKWh:    1000,
		ChargeEfficiency:    1.0,
		DischargeEfficiency: 1.0,
		AllowedCycles:       10,
	}

	swing := func(prices ...float64) model.PriceSchedule {
		s := make(model.PriceSchedule, len(prices))
		for i, p := range prices {
			s[i] = model.PricePoint{ChargePrice: p, DischargePrice: p - 1}
		}
		return s
	}

	// The imbalance schedule has the wider swing but a dayahead step moves
	// four times the energy, so dayahead earns more here.
	schedules := map[model.Market]model.PriceSchedule{
		model.MarketDayahead:  swing(50, 0, 100, 51),
		model.MarketImbalance: swing(50, 0, 100, 51),
	}

	ranked := RankMarkets(schedules, params)
	require.Len(t, ranked, 2)

	assert.Equal(t, "dayahead", ranked[0].Market)
	assert.Equal(t, "imbalance", ranked[1].Market)
	assert.Greater(t, ranked[0].RevenueEUR, ranked[1].RevenueEUR)
	assert.InDelta(t, 99.0, ranked[0].RevenueEUR, 1e-6)
	assert.Positive(t, ranked[0].FinalCycles)
}

func TestRankMarketsSkipsFailedRuns(t *testing.T) {
	params := model.BatteryParams{
		MaxPowerKW:          1, // cannot reach the final capacity in one step
		MinCapacityKWh:      0,
		MaxCapacityKWh:      100,
		InitialCapacityKWh:  0,
		FinalCapacityKWh:    100,
		ChargeEfficiency:    1.0,
		DischargeEfficiency: 1.0,
		AllowedCycles:       10,
	}

	schedules := map[model.Market]model.PriceSchedule{
		model.MarketDayahead: {{ChargePrice: 50, DischargePrice: 49}},
	}

	assert.Empty(t, RankMarkets(schedules, params))
}
