package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-benchmark/internal/lp"
	"battery-benchmark/internal/model"
)

func flatPrices(n int, charge, discharge float64) model.PriceSchedule {
	prices := make(model.PriceSchedule, n)
	for i := range prices {
		prices[i] = model.PricePoint{ChargePrice: charge, DischargePrice: discharge}
	}
	return prices
}

func TestAddMaximizeRevenueSigns(t *testing.T) {
	// Both prices at 50 EUR/MWh. Pinned dispatch of 1000 kW for one hour
	// moves 1 MWh each way, so the objective is -50 for the charge step
	// and +50 for the discharge step.
	buildAndSolve := func(chargeKW, dischargeKW float64) float64 {
		p := lp.NewProblem("test")
		charge, discharge := AddPowerSchedules(p, 1, 1000)
		p.AddEquality([]lp.Term{{Var: charge[0], Coeff: 1}}, chargeKW)
		p.AddEquality([]lp.Term{{Var: discharge[0], Coeff: 1}}, dischargeKW)

		err := AddMaximizeRevenue(p, flatPrices(1, 50, 50), 1.0, charge, discharge)
		require.NoError(t, err)

		sol, err := p.Solve()
		require.NoError(t, err)
		return sol.Objective
	}

	assert.InDelta(t, -50, buildAndSolve(1000, 0), 1e-6)
	assert.InDelta(t, 50, buildAndSolve(0, 1000), 1e-6)
}

func TestAddMaximizeRevenueTimestepScaling(t *testing.T) {
	p := lp.NewProblem("test")
	charge, discharge := AddPowerSchedules(p, 1, 1000)
	p.AddEquality([]lp.Term{{Var: charge[0], Coeff: 1}}, 0)
	p.AddEquality([]lp.Term{{Var: discharge[0], Coeff: 1}}, 1000)

	// A quarter-hour step earns a quarter of the hourly revenue.
	err := AddMaximizeRevenue(p, flatPrices(1, 50, 50), 0.25, charge, discharge)
	require.NoError(t, err)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, sol.Objective, 1e-6)
}

func TestAddMaximizeRevenueLengthMismatch(t *testing.T) {
	p := lp.NewProblem("test")
	charge, discharge := AddPowerSchedules(p, 4, 1000)

	err := AddMaximizeRevenue(p, flatPrices(3, 50, 50), 1.0, charge, discharge)
	require.Error(t, err)

	var mismatch *ErrScheduleLengthMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Prices)
	assert.Equal(t, 4, mismatch.Power)
}
