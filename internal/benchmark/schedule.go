// Package benchmark builds and solves the revenue-maximization problem of a
// battery trading on a single electricity market with perfect price
// foresight. The model is assembled incrementally on an lp.Problem: power
// schedule variables first, then the capacity/cycle recurrence, then the
// revenue objective.
package benchmark

import (
	"fmt"

	"battery-benchmark/internal/lp"
)

// AddPowerSchedules registers a charge and a discharge power schedule on the
// problem, one pair of variables per timestep, each bounded to
// [0, maxPowerKW]. Charging and discharging are independent non-negative
// variables; no exclusivity constraint relates them. Whenever the buy price
// exceeds the sell price a simultaneous charge+discharge loses money, so the
// optimizer never benefits from one.
func AddPowerSchedules(p *lp.Problem, scheduleLength int, maxPowerKW float64) (charge, discharge []lp.Var) {
	charge = make([]lp.Var, scheduleLength)
	discharge = make([]lp.Var, scheduleLength)
	for i := 0; i < scheduleLength; i++ {
		charge[i] = p.AddVariable(0, maxPowerKW, fmt.Sprintf("charge_power_period_%d", i))
	}
	for i := 0; i < scheduleLength; i++ {
		discharge[i] = p.AddVariable(0, maxPowerKW, fmt.Sprintf("discharge_power_period_%d", i))
	}
	return charge, discharge
}
