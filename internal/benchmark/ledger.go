package benchmark

import (
	"time"

	"battery-benchmark/internal/model"
)

// LedgerRow is one timestep of per-interval output.
// This is the primary artifact for "what the optimal dispatch did".
type LedgerRow struct {
	Index int

	IntervalStart time.Time

	Market string

	ChargePrice    float64
	DischargePrice float64

	Action model.Action

	ChargePowerKW    float64
	DischargePowerKW float64

	CapacityStartKWh float64
	CapacityEndKWh   float64
	Cycles           float64

	RevenueEUR    float64
	CumRevenueEUR float64
}

// BuildLedger joins a solved result with its price schedule into per-timestep
// rows. Interval revenue follows the objective terms: grid-side power /1000
// times dt times price.
func BuildLedger(prices model.PriceSchedule, res *Result) []LedgerRow {
	dt := res.Market.TimestepHours
	ledger := make([]LedgerRow, 0, len(prices))
	cum := 0.0

	for i, pt := range prices {
		chargeKW := res.ChargePowerKW[i]
		dischargeKW := res.DischargePowerKW[i]
		revenue := dischargeKW/1000*dt*pt.DischargePrice - chargeKW/1000*dt*pt.ChargePrice
		cum += revenue

		ledger = append(ledger, LedgerRow{
			Index:            i,
			IntervalStart:    pt.IntervalStart,
			Market:           res.Market.Name,
			ChargePrice:      pt.ChargePrice,
			DischargePrice:   pt.DischargePrice,
			Action:           model.ActionFromPowerKW(chargeKW, dischargeKW),
			ChargePowerKW:    chargeKW,
			DischargePowerKW: dischargeKW,
			CapacityStartKWh: res.CapacityKWh[i],
			CapacityEndKWh:   res.CapacityKWh[i+1],
			Cycles:           res.Cycles[i+1],
			RevenueEUR:       revenue,
			CumRevenueEUR:    cum,
		})
	}
	return ledger
}
