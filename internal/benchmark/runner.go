package benchmark

import (
	"fmt"

	"battery-benchmark/internal/lp"
	"battery-benchmark/internal/model"
)

// ErrNoOptimalSolution reports a run that ended in a non-optimal terminal
// status. Feasibility does not change without parameter edits, so callers
// should treat this as a final failure rather than retry.
type ErrNoOptimalSolution struct {
	Market model.Market
	Status lp.Status
}

func (e *ErrNoOptimalSolution) Error() string {
	return fmt.Sprintf("no optimal solution for %s market: solver status %s", e.Market.Name, e.Status)
}

// Result is the solved dispatch of one scenario run.
// Power schedules have one entry per timestep; capacity and cycles have one
// entry per timestep boundary (length N+1).
type Result struct {
	Market model.Market

	// RevenueEUR is the objective value: total earnings minus total costs.
	RevenueEUR float64

	ChargePowerKW    []float64
	DischargePowerKW []float64
	CapacityKWh      []float64
	Cycles           []float64

	Stats lp.SolveStats
}

// FinalCycles is the cumulative cycle count at the end of the horizon.
func (r *Result) FinalCycles() float64 {
	if len(r.Cycles) == 0 {
		return 0
	}
	return r.Cycles[len(r.Cycles)-1]
}

// Run benchmarks one market: it builds a fresh problem (power schedules,
// capacity/cycle recurrence, revenue objective, in that order), solves it and
// extracts the dispatch. Every run owns its problem exclusively; independent
// runs may execute concurrently.
func Run(market model.Market, prices model.PriceSchedule, params model.BatteryParams) (*Result, error) {
	if err := prices.Validate(); err != nil {
		return nil, fmt.Errorf("benchmark %s market: %w", market.Name, err)
	}

	p := lp.NewProblem(market.Name)
	charge, discharge := AddPowerSchedules(p, len(prices), params.MaxPowerKW)
	capacity, cycles := AddCapacityAndCycles(p, charge, discharge, params, market.TimestepHours)
	if err := AddMaximizeRevenue(p, prices, market.TimestepHours, charge, discharge); err != nil {
		return nil, fmt.Errorf("benchmark %s market: %w", market.Name, err)
	}

	sol, err := p.Solve()
	if err != nil {
		if sol != nil && sol.Status != lp.StatusOptimal {
			return nil, &ErrNoOptimalSolution{Market: market, Status: sol.Status}
		}
		return nil, fmt.Errorf("benchmark %s market: %w", market.Name, err)
	}

	return &Result{
		Market:           market,
		RevenueEUR:       sol.Objective,
		ChargePowerKW:    sol.Values(charge),
		DischargePowerKW: sol.Values(discharge),
		CapacityKWh:      sol.Values(capacity),
		Cycles:           sol.Values(cycles),
		Stats:            sol.Stats,
	}, nil
}
