package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"battery-benchmark/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML
	// (e.g. examples/batteries/*.yaml). Explicit Battery fields override
	// the file's values.
	BatteryFile string        `yaml:"battery_file"`
	Battery     BatteryConfig `yaml:"battery"`

	// Markets to benchmark. Defaults to all known markets when empty.
	Markets []string `yaml:"markets"`

	Data DataConfig `yaml:"data"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	MaxPowerKW          float64 `yaml:"max_power_kw"`
	MinCapacityKWh      float64 `yaml:"min_capacity_kwh"`
	MaxCapacityKWh      float64 `yaml:"max_capacity_kwh"`
	InitialCapacityKWh  float64 `yaml:"initial_capacity_kwh"`
	FinalCapacityKWh    float64 `yaml:"final_capacity_kwh"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	AllowedCycles       float64 `yaml:"allowed_cycles"`
}

// DataConfig wires the market-data collaborator.
type DataConfig struct {
	BaseURL       string `yaml:"base_url"`
	APIKeyEnv     string `yaml:"api_key_env"` // env var holding the API key
	Area          string `yaml:"area"`
	Timezone      string `yaml:"timezone"` // IANA name, e.g. Europe/Amsterdam
	CachePath     string `yaml:"cache_path"`
	AllowColdLoad bool   `yaml:"allow_cold_load"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if len(c.Markets) == 0 {
		for _, m := range model.Markets() {
			c.Markets = append(c.Markets, m.Name)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the cwd-relative path.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	for _, name := range c.Markets {
		if _, err := model.MarketByName(name); err != nil {
			return err
		}
	}
	if err := c.Battery.ToParams().Validate(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	return nil
}

// APIKey reads the configured API key environment variable.
func (d DataConfig) APIKey() string {
	if d.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(d.APIKeyEnv)
}

func (b BatteryConfig) ToParams() model.BatteryParams {
	return model.BatteryParams{
		MaxPowerKW:          b.MaxPowerKW,
		MinCapacityKWh:      b.MinCapacityKWh,
		MaxCapacityKWh:      b.MaxCapacityKWh,
		InitialCapacityKWh:  b.InitialCapacityKWh,
		FinalCapacityKWh:    b.FinalCapacityKWh,
		ChargeEfficiency:    b.ChargeEfficiency,
		DischargeEfficiency: b.DischargeEfficiency,
		AllowedCycles:       b.AllowedCycles,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// Used when loading a battery file and then applying inline overrides.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.MaxPowerKW != 0 {
		out.MaxPowerKW = override.MaxPowerKW
	}
	if override.MinCapacityKWh != 0 {
		out.MinCapacityKWh = override.MinCapacityKWh
	}
	if override.MaxCapacityKWh != 0 {
		out.MaxCapacityKWh = override.MaxCapacityKWh
	}
	if override.InitialCapacityKWh != 0 {
		out.InitialCapacityKWh = override.InitialCapacityKWh
	}
	if override.FinalCapacityKWh != 0 {
		out.FinalCapacityKWh = override.FinalCapacityKWh
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	if override.AllowedCycles != 0 {
		out.AllowedCycles = override.AllowedCycles
	}
	return out
}
