package benchmark

import (
	"fmt"

	"battery-benchmark/internal/lp"
	"battery-benchmark/internal/model"
)

// ErrScheduleLengthMismatch reports that a price schedule does not line up
// one-to-one with the power schedule it should price.
type ErrScheduleLengthMismatch struct {
	Prices int
	Power  int
}

func (e *ErrScheduleLengthMismatch) Error() string {
	return fmt.Sprintf("price schedule has %d points but power schedule has %d timesteps", e.Prices, e.Power)
}

// AddMaximizeRevenue installs the revenue objective:
//
//	maximize sum_i discharge[i]/1000*dt*dischargePrice[i] - charge[i]/1000*dt*chargePrice[i]
//
// The /1000 converts kW to MW so that EUR/MWh prices apply directly. Negative
// prices need no special handling: being paid to charge simply flips the sign
// of the cost term, which the maximization exploits on its own.
func AddMaximizeRevenue(p *lp.Problem, prices model.PriceSchedule, timestepHours float64, charge, discharge []lp.Var) error {
	if len(prices) != len(charge) || len(prices) != len(discharge) {
		return &ErrScheduleLengthMismatch{Prices: len(prices), Power: len(charge)}
	}

	terms := make([]lp.Term, 0, 2*len(prices))
	for i, pt := range prices {
		terms = append(terms, lp.Term{Var: charge[i], Coeff: -pt.ChargePrice * timestepHours / 1000})
		terms = append(terms, lp.Term{Var: discharge[i], Coeff: pt.DischargePrice * timestepHours / 1000})
	}
	p.Maximize(terms)
	return nil
}
