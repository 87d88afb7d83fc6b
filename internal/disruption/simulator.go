package disruption

import (
	"fmt"

	"sentinel-sim/internal/inventory"
)

// Range bounds a magnitude draw.
type Range struct {
	Min float64
	Max float64
}

// Settings controls how many events are drawn and how large they are.
type Settings struct {
	MinEvents int
	MaxEvents int
	// Delay ranges are inclusive whole days.
	PortCongestionDelay      Range
	GeopoliticalTensionDelay Range
	ProductionSlowdownDelay  Range
	// DemandSpikeFactor is half-open: [Min, Max).
	DemandSpikeFactor Range
}

// DefaultSettings returns the standard draw parameters.
func DefaultSettings() Settings {
	return Settings{
		MinEvents:                1,
		MaxEvents:                2,
		PortCongestionDelay:      Range{Min: 5, Max: 10},
		GeopoliticalTensionDelay: Range{Min: 7, Max: 12},
		ProductionSlowdownDelay:  Range{Min: 4, Max: 8},
		DemandSpikeFactor:        Range{Min: 1.20, Max: 1.50},
	}
}

// Simulator draws random disruptions and applies them to a table.
type Simulator struct {
	settings Settings
}

// NewSimulator creates a Simulator, filling unset event counts with defaults.
func NewSimulator(s Settings) *Simulator {
	if s.MinEvents <= 0 {
		s.MinEvents = 1
	}
	if s.MaxEvents < s.MinEvents {
		s.MaxEvents = s.MinEvents
	}
	return &Simulator{settings: s}
}

// Settings returns the simulator's draw parameters.
func (s *Simulator) Settings() Settings { return s.settings }

// Simulate copies base, applies a random set of events to the copy and returns both.
// The base table is never modified.
func (s *Simulator) Simulate(base inventory.Table, src Source) (inventory.Table, []Event, error) {
	t := base.Clone()
	if len(t) == 0 {
		return t, nil, fmt.Errorf("simulate: %w", ErrEmptyPopulation)
	}
	n := src.UniformInt(s.settings.MinEvents, s.settings.MaxEvents)
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		cat := Categories[src.Choice(len(Categories))]
		ev, err := s.draw(t, cat, src)
		if err != nil {
			return t, events, err
		}
		if err := Apply(t, ev); err != nil {
			return t, events, err
		}
		events = append(events, ev)
	}
	return t, events, nil
}

// draw picks a key and magnitude for one event of category cat.
func (s *Simulator) draw(t inventory.Table, cat Category, src Source) (Event, error) {
	keys, err := t.Distinct(cat.Column())
	if err != nil {
		return Event{}, err
	}
	if len(keys) == 0 {
		return Event{}, fmt.Errorf("draw %s: %w", cat, ErrEmptyPopulation)
	}
	key := keys[src.Choice(len(keys))]

	var mag float64
	switch cat {
	case PortCongestion:
		mag = float64(drawDays(src, s.settings.PortCongestionDelay))
	case GeopoliticalTension:
		mag = float64(drawDays(src, s.settings.GeopoliticalTensionDelay))
	case ProductionSlowdown:
		mag = float64(drawDays(src, s.settings.ProductionSlowdownDelay))
	case DemandSpike:
		mag = src.UniformFloat(s.settings.DemandSpikeFactor.Min, s.settings.DemandSpikeFactor.Max)
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return NewEvent(cat, key, mag), nil
}

func drawDays(src Source, r Range) int {
	return src.UniformInt(int(r.Min), int(r.Max))
}

// NewEvent builds an event with its detail text filled in.
func NewEvent(cat Category, key string, magnitude float64) Event {
	return Event{Category: cat, Key: key, Magnitude: magnitude, Detail: Describe(cat, key, magnitude)}
}

// Apply mutates every row matching the event's key in place. Rows that do not
// match are left untouched. The table is not modified when an error is returned.
func Apply(t inventory.Table, ev Event) error {
	if !ev.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, ev.Category)
	}
	if err := CheckMagnitude(ev.Category, ev.Magnitude); err != nil {
		return err
	}
	col := ev.Category.Column()
	var matched []int
	for i := range t {
		v, err := t[i].Value(col)
		if err != nil {
			return err
		}
		if v == ev.Key {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return fmt.Errorf("%s %q: %w", ev.Category, ev.Key, ErrNoMatch)
	}
	if ev.Category == DemandSpike {
		for _, i := range matched {
			if spiked(t[i], ev.Magnitude) < 1 {
				return fmt.Errorf("%w: %s factor %g leaves %s without consumption", ErrBadMagnitude, ev.Category, ev.Magnitude, t[i].Name)
			}
		}
	}

	for _, i := range matched {
		switch ev.Category {
		case DemandSpike:
			t[i].DailyConsumption = spiked(t[i], ev.Magnitude)
		default:
			t[i].LeadTimeDays += int(ev.Magnitude)
		}
		t[i].Recompute()
	}
	return nil
}

func spiked(c inventory.Component, factor float64) int {
	return int(float64(c.DailyConsumption) * factor)
}
