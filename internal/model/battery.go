package model

import "errors"

// BatteryParams defines the physical parameters of the benchmarked BESS.
// Units:
// - MaxPowerKW: kW
// - capacities: kWh
// - Efficiencies: 0..1
// - AllowedCycles: full 0->max->0 swings allowed across the horizon
type BatteryParams struct {
	MaxPowerKW          float64
	MinCapacityKWh      float64
	MaxCapacityKWh      float64
	InitialCapacityKWh  float64
	FinalCapacityKWh    float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	AllowedCycles       float64
}

func (p BatteryParams) Validate() error {
	if p.MaxPowerKW < 0 {
		return errors.New("MaxPowerKW must be >= 0")
	}
	if p.MaxCapacityKWh <= 0 {
		return errors.New("MaxCapacityKWh must be > 0")
	}
	if p.MinCapacityKWh > p.MaxCapacityKWh {
		return errors.New("MinCapacityKWh must be <= MaxCapacityKWh")
	}
	if p.InitialCapacityKWh < p.MinCapacityKWh || p.InitialCapacityKWh > p.MaxCapacityKWh {
		return errors.New("InitialCapacityKWh must be within [MinCapacityKWh, MaxCapacityKWh]")
	}
	if p.FinalCapacityKWh < p.MinCapacityKWh || p.FinalCapacityKWh > p.MaxCapacityKWh {
		return errors.New("FinalCapacityKWh must be within [MinCapacityKWh, MaxCapacityKWh]")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if p.AllowedCycles < 0 {
		return errors.New("AllowedCycles must be >= 0")
	}
	return nil
}

// RoundTripEfficiency is the fraction of energy recovered after one full
// charge-discharge cycle.
func (p BatteryParams) RoundTripEfficiency() float64 {
	return p.ChargeEfficiency * p.DischargeEfficiency
}
