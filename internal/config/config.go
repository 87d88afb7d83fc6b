// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/inventory"
	"sentinel-sim/internal/sentinel"
)

// Range is an inclusive-low magnitude range in the config file.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SentinelConfig is the root configuration for a sentinel session.
type SentinelConfig struct {
	// Seed fixes the random source; 0 picks a time-based seed.
	Seed                     int64                 `yaml:"seed"`
	CriticalThresholdDays    float64               `yaml:"critical_threshold_days"`
	AirFreightPremium        float64               `yaml:"air_freight_premium"`
	MinEvents                int                   `yaml:"min_events"`
	MaxEvents                int                   `yaml:"max_events"`
	PortCongestionDelay      Range                 `yaml:"port_congestion_delay"`
	GeopoliticalTensionDelay Range                 `yaml:"geopolitical_tension_delay"`
	ProductionSlowdownDelay  Range                 `yaml:"production_slowdown_delay"`
	DemandSpikeFactor        Range                 `yaml:"demand_spike_factor"`
	Components               []inventory.Component `yaml:"components"`
}

// Default returns the built-in configuration.
func Default() *SentinelConfig {
	d := disruption.DefaultSettings()
	return &SentinelConfig{
		CriticalThresholdDays:    sentinel.DefaultThresholdDays,
		AirFreightPremium:        sentinel.DefaultAirFreightPremium,
		MinEvents:                d.MinEvents,
		MaxEvents:                d.MaxEvents,
		PortCongestionDelay:      Range(d.PortCongestionDelay),
		GeopoliticalTensionDelay: Range(d.GeopoliticalTensionDelay),
		ProductionSlowdownDelay:  Range(d.ProductionSlowdownDelay),
		DemandSpikeFactor:        Range(d.DemandSpikeFactor),
	}
}

// Load reads a YAML config over the defaults. When cueSchemaPath is set the file is
// validated against the schema first.
func Load(configPath, cueSchemaPath string) (*SentinelConfig, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that the schema cannot express.
func (c *SentinelConfig) Validate() error {
	if c.MinEvents < 1 || c.MaxEvents < c.MinEvents {
		return fmt.Errorf("invalid event count range [%d, %d]", c.MinEvents, c.MaxEvents)
	}
	for name, r := range map[string]Range{
		"port_congestion_delay":      c.PortCongestionDelay,
		"geopolitical_tension_delay": c.GeopoliticalTensionDelay,
		"production_slowdown_delay":  c.ProductionSlowdownDelay,
	} {
		if r.Min < 0 || r.Min != math.Trunc(r.Min) || r.Max != math.Trunc(r.Max) {
			return fmt.Errorf("%s: bounds must be whole non-negative days, got [%g, %g]", name, r.Min, r.Max)
		}
		if r.Max < r.Min {
			return fmt.Errorf("%s: max %.2f below min %.2f", name, r.Max, r.Min)
		}
	}
	if f := c.DemandSpikeFactor; f.Min <= 0 || f.Max < f.Min {
		return fmt.Errorf("demand_spike_factor: invalid range [%.2f, %.2f]", f.Min, f.Max)
	}
	if len(c.Components) > 0 {
		if _, err := inventory.NewTable(c.Components); err != nil {
			return fmt.Errorf("components: %w", err)
		}
	}
	return nil
}

// Disruption converts the config into simulator settings.
func (c *SentinelConfig) Disruption() disruption.Settings {
	return disruption.Settings{
		MinEvents:                c.MinEvents,
		MaxEvents:                c.MaxEvents,
		PortCongestionDelay:      disruption.Range(c.PortCongestionDelay),
		GeopoliticalTensionDelay: disruption.Range(c.GeopoliticalTensionDelay),
		ProductionSlowdownDelay:  disruption.Range(c.ProductionSlowdownDelay),
		DemandSpikeFactor:        disruption.Range(c.DemandSpikeFactor),
	}
}

// Premium returns the air freight premium as a decimal.
func (c *SentinelConfig) Premium() decimal.Decimal {
	return decimal.NewFromFloat(c.AirFreightPremium)
}

// BaseTable returns a fresh copy of the configured table, or the built-in one.
func (c *SentinelConfig) BaseTable() (inventory.Table, error) {
	if len(c.Components) == 0 {
		return inventory.Build(), nil
	}
	return inventory.NewTable(c.Components)
}
