package models

import "time"

// BenchmarkResponse represents the response from a benchmark run.
type BenchmarkResponse struct {
	Status  string         `json:"status"`
	Results []MarketResult `json:"results"`
}

// MarketResult contains one market's benchmark outcome.
type MarketResult struct {
	Market        string  `json:"market"`
	TimestepHours float64 `json:"timestep_hours"`

	// Status is the terminal solver status: OPTIMAL, INFEASIBLE or ERROR.
	Status string `json:"status"`

	RevenueEUR  float64 `json:"revenue_eur"`
	FinalCycles float64 `json:"final_cycles"`

	SolveTimeMS    float64 `json:"solve_time_ms"`
	NumVariables   int     `json:"num_variables"`
	NumConstraints int     `json:"num_constraints"`

	Ledger []LedgerRow `json:"ledger,omitempty"`
}

// LedgerRow represents one timestep of the optimal dispatch.
type LedgerRow struct {
	Index            int       `json:"index"`
	IntervalStart    time.Time `json:"interval_start"`
	Market           string    `json:"market"`
	ChargePrice      float64   `json:"charge_price"`
	DischargePrice   float64   `json:"discharge_price"`
	Action           string    `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	ChargePowerKW    float64   `json:"charge_power_kw"`
	DischargePowerKW float64   `json:"discharge_power_kw"`
	CapacityStartKWh float64   `json:"capacity_start_kwh"`
	CapacityEndKWh   float64   `json:"capacity_end_kwh"`
	Cycles           float64   `json:"cycles"`
	RevenueEUR       float64   `json:"revenue_eur"`
	CumRevenueEUR    float64   `json:"cum_revenue_eur"`
}

// MarketInfo represents one available market.
type MarketInfo struct {
	Name          string  `json:"name"`
	TimestepHours float64 `json:"timestep_hours"`
	Resolution    string  `json:"resolution"`
}

// BatteryInfo represents information about a battery preset.
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications.
type BatterySpecs struct {
	MaxPowerKW     float64 `json:"max_power_kw"`
	MaxCapacityKWh float64 `json:"max_capacity_kwh"`
	AllowedCycles  float64 `json:"allowed_cycles"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
