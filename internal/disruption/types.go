// Disruptive events injected into the inventory table
package disruption

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"sentinel-sim/internal/inventory"
)

// Category identifies the kind of disruption.
type Category string

// Disruption categories.
const (
	PortCongestion      Category = "Port Congestion"
	GeopoliticalTension Category = "Geopolitical Tension"
	ProductionSlowdown  Category = "Production Slowdown"
	DemandSpike         Category = "Demand Spike"
)

// Categories lists every category in draw order.
var Categories = []Category{PortCongestion, GeopoliticalTension, ProductionSlowdown, DemandSpike}

var (
	// ErrEmptyPopulation is returned when no key can be drawn from the table.
	ErrEmptyPopulation = errors.New("empty population")
	// ErrUnknownCategory is returned for categories outside the enumeration.
	ErrUnknownCategory = errors.New("unknown disruption category")
	// ErrNoMatch is returned when an event key matches no row.
	ErrNoMatch = errors.New("no matching component")
	// ErrBadMagnitude is returned for negative delays, non-positive demand
	// factors, and spikes that would leave a component with no consumption.
	ErrBadMagnitude = errors.New("invalid event magnitude")
)

// CheckMagnitude reports whether magnitude is usable for category c: delays
// must be whole, non-negative days and demand factors must be positive.
func CheckMagnitude(c Category, magnitude float64) error {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return fmt.Errorf("%w: %s %v", ErrBadMagnitude, c, magnitude)
	}
	if c == DemandSpike {
		if magnitude <= 0 {
			return fmt.Errorf("%w: %s factor %g must be positive", ErrBadMagnitude, c, magnitude)
		}
		return nil
	}
	if magnitude < 0 || magnitude != math.Trunc(magnitude) {
		return fmt.Errorf("%w: %s delay %g must be whole non-negative days", ErrBadMagnitude, c, magnitude)
	}
	return nil
}

// Column returns the grouping column a category targets.
func (c Category) Column() inventory.Column {
	switch c {
	case PortCongestion:
		return inventory.ColumnShippingLane
	case GeopoliticalTension:
		return inventory.ColumnOrigin
	case ProductionSlowdown:
		return inventory.ColumnSupplier
	case DemandSpike:
		return inventory.ColumnComponent
	}
	return ""
}

// Label returns the bilingual display label.
func (c Category) Label() string {
	switch c {
	case PortCongestion:
		return "Port Congestion 港口拥堵"
	case GeopoliticalTension:
		return "Geopolitical Tension 地缘政治紧张"
	case ProductionSlowdown:
		return "Production Slowdown 生产放缓"
	case DemandSpike:
		return "Demand Spike 需求激增"
	}
	return string(c)
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	return c.Column() != ""
}

// ParseCategory accepts the display name or a snake_case form such as "port_congestion".
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, c := range Categories {
		if strings.ToLower(string(c)) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Event describes one disruption applied during a run.
type Event struct {
	Category Category `json:"category"`
	Key      string   `json:"key"`
	// Magnitude is a delay in days, or the consumption factor for demand spikes.
	Magnitude float64 `json:"magnitude"`
	Detail    string  `json:"detail"`
}

// Describe builds the human-readable detail text for an event.
func Describe(c Category, key string, magnitude float64) string {
	switch c {
	case PortCongestion:
		return fmt.Sprintf("Congestion in the %s lane. Estimated delay: %d days.", key, int(magnitude))
	case GeopoliticalTension:
		return fmt.Sprintf("Tensions in %s causing customs delays. Estimated impact: %d days.", key, int(magnitude))
	case ProductionSlowdown:
		return fmt.Sprintf("Reports of a production slowdown at %s due to quality issues. Estimated delay: %d days.", key, int(magnitude))
	case DemandSpike:
		return fmt.Sprintf("Unexpected surge in demand for %s. Consumption increased by %.0f%%.", key, magnitude*100)
	}
	return key
}
