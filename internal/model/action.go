package model

// Action is a human-friendly operating mode for a timestep.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionFromPowerKW classifies a timestep by its net power flow.
func ActionFromPowerKW(chargeKW, dischargeKW float64) Action {
	switch {
	case chargeKW > dischargeKW:
		return ActionCharging
	case dischargeKW > chargeKW:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
