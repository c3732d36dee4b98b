package models

import (
	"time"

	"battery-benchmark/internal/model"
)

// BenchmarkRequest represents the request body for running a benchmark.
type BenchmarkRequest struct {
	// BatteryFile references a preset from the battery directory;
	// inline Battery fields override its values.
	BatteryFile string        `json:"battery_file,omitempty"`
	Battery     BatteryConfig `json:"battery,omitempty"`

	Markets []MarketRequest  `json:"markets" binding:"required,min=1"`
	Options BenchmarkOptions `json:"options,omitempty"`
}

// MarketRequest selects one market plus either an inline price schedule or a
// time range to load through the configured data source.
type MarketRequest struct {
	Name   string              `json:"name" binding:"required"`
	Prices model.PriceSchedule `json:"prices,omitempty"`

	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// BatteryConfig defines battery parameters.
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	MaxPowerKW          float64 `json:"max_power_kw"`
	MinCapacityKWh      float64 `json:"min_capacity_kwh"`
	MaxCapacityKWh      float64 `json:"max_capacity_kwh"`
	InitialCapacityKWh  float64 `json:"initial_capacity_kwh"`
	FinalCapacityKWh    float64 `json:"final_capacity_kwh"`
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
	AllowedCycles       float64 `json:"allowed_cycles"`
}

// BenchmarkOptions contains optional benchmark parameters.
type BenchmarkOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}
