package benchmark

import (
	"fmt"

	"battery-benchmark/internal/lp"
	"battery-benchmark/internal/model"
)

// AddCapacityAndCycles registers the state-of-charge and cycle-count
// schedules and ties them to the power schedules through the timestep
// recurrence. timestepHours converts power (kW) to energy (kWh).
//
// capacity has len(charge)+1 entries, one per timestep boundary, bounded to
// [MinCapacityKWh, MaxCapacityKWh]. cycles has the same length, bounded to
// [0, AllowedCycles]; that upper bound is the hard cycle-wear limit for the
// whole horizon, not just bookkeeping.
//
// The recurrence applies efficiency losses before accumulation: the grid-side
// energy per step is power*dt, the capacity change is scaled by the relevant
// efficiency. Each post-efficiency kWh moved, in either direction, counts
// 1/(2*MaxCapacityKWh) cycles, so a full 0->max charge plus a full max->0
// discharge sums to exactly one cycle.
//
// capacity[0] is pinned to InitialCapacityKWh and capacity[N] to
// FinalCapacityKWh. No parameter validation happens here; an impossible
// combination surfaces as an infeasible status at solve time.
func AddCapacityAndCycles(p *lp.Problem, charge, discharge []lp.Var, params model.BatteryParams, timestepHours float64) (capacity, cycles []lp.Var) {
	n := len(charge)

	capacity = make([]lp.Var, n+1)
	for i := range capacity {
		capacity[i] = p.AddVariable(params.MinCapacityKWh, params.MaxCapacityKWh, fmt.Sprintf("capacity_period_%d", i))
	}
	cycles = make([]lp.Var, n+1)
	for i := range cycles {
		cycles[i] = p.AddVariable(0, params.AllowedCycles, fmt.Sprintf("battery_cycles_period_%d", i))
	}

	// Boundary conditions. Only the first and last boundary are pinned;
	// everything in between is free within the capacity bounds.
	p.AddEquality([]lp.Term{{Var: capacity[0], Coeff: 1}}, params.InitialCapacityKWh)
	p.AddEquality([]lp.Term{{Var: cycles[0], Coeff: 1}}, 0)
	p.AddEquality([]lp.Term{{Var: capacity[n], Coeff: 1}}, params.FinalCapacityKWh)

	chargePerKW := timestepHours * params.ChargeEfficiency
	dischargePerKW := timestepHours * params.DischargeEfficiency
	cyclesPerKWh := 1 / (2 * params.MaxCapacityKWh)

	for i := 1; i <= n; i++ {
		// capacity[i] == capacity[i-1] + charge[i-1]*dt*effC - discharge[i-1]*dt*effD
		p.AddEquality([]lp.Term{
			{Var: capacity[i], Coeff: 1},
			{Var: capacity[i-1], Coeff: -1},
			{Var: charge[i-1], Coeff: -chargePerKW},
			{Var: discharge[i-1], Coeff: dischargePerKW},
		}, 0)

		// cycles[i] == cycles[i-1] + (charged + discharged energy)/(2*maxCap)
		p.AddEquality([]lp.Term{
			{Var: cycles[i], Coeff: 1},
			{Var: cycles[i-1], Coeff: -1},
			{Var: charge[i-1], Coeff: -chargePerKW * cyclesPerKWh},
			{Var: discharge[i-1], Coeff: -dischargePerKW * cyclesPerKWh},
		}, 0)
	}

	return capacity, cycles
}
