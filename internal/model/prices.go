package model

import (
	"errors"
	"fmt"
	"time"
)

// PricePoint is one timestep of a market price schedule.
// Prices are EUR/MWh and may be negative.
type PricePoint struct {
	IntervalStart  time.Time `json:"interval_start"`
	ChargePrice    float64   `json:"charge_price"`
	DischargePrice float64   `json:"discharge_price"`
}

// PriceSchedule is a chronologically ordered sequence of price points.
// The slice index defines the timestep ordering used by the optimizer.
type PriceSchedule []PricePoint

// Validate checks the shape invariants of a schedule: at least one point and
// strictly increasing interval starts when timestamps are set.
func (s PriceSchedule) Validate() error {
	if len(s) == 0 {
		return errors.New("price schedule is empty")
	}
	for i := 1; i < len(s); i++ {
		if s[i].IntervalStart.IsZero() || s[i-1].IntervalStart.IsZero() {
			continue
		}
		if !s[i].IntervalStart.After(s[i-1].IntervalStart) {
			return fmt.Errorf("price schedule not chronological at index %d", i)
		}
	}
	return nil
}

// ChargePrices returns the charge price column, index-aligned with the schedule.
func (s PriceSchedule) ChargePrices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ChargePrice
	}
	return out
}

// DischargePrices returns the discharge price column.
func (s PriceSchedule) DischargePrices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.DischargePrice
	}
	return out
}
