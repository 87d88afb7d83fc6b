package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sentinel-sim/internal/disruption"
)

// Trigger event types emitted after each phase run.
const (
	EventCriticalRows = "critical_rows"
	EventWarningRows  = "warning_rows"
	EventNetValue     = "net_value"
)

// Scenario defines a scripted sequence of disruption phases and an overall description.
type Scenario struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase is one simulation run with a fixed set of disruptions.
type Phase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Events      []EventSpec `yaml:"events,omitempty"`
	Triggers    []Trigger   `yaml:"triggers,omitempty"`
}

// EventSpec declares a disruption by category, affected key and magnitude.
type EventSpec struct {
	Category  string  `yaml:"category"`
	Key       string  `yaml:"key"`
	Magnitude float64 `yaml:"magnitude"`
}

// Trigger moves the scenario to another phase based on a run outcome.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Event represents a run outcome that may advance the scenario.
type Event struct {
	Type  string
	Value int
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks phase names, trigger targets and event categories.
func (s *Scenario) Validate() error {
	if len(s.Phases) == 0 {
		return fmt.Errorf("scenario %q has no phases", s.Name)
	}
	names := make(map[string]struct{}, len(s.Phases))
	for _, p := range s.Phases {
		if p.Name == "" {
			return fmt.Errorf("scenario %q: phase without name", s.Name)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("scenario %q: duplicate phase %q", s.Name, p.Name)
		}
		names[p.Name] = struct{}{}
		if _, err := p.Disruptions(); err != nil {
			return fmt.Errorf("scenario %q phase %q: %w", s.Name, p.Name, err)
		}
	}
	for _, p := range s.Phases {
		for _, tr := range p.Triggers {
			if _, ok := names[tr.Next]; !ok {
				return fmt.Errorf("scenario %q phase %q: trigger targets unknown phase %q", s.Name, p.Name, tr.Next)
			}
		}
	}
	return nil
}

// Disruptions converts the phase's event specs into simulator events.
func (p Phase) Disruptions() ([]disruption.Event, error) {
	out := make([]disruption.Event, 0, len(p.Events))
	for _, spec := range p.Events {
		cat, err := disruption.ParseCategory(spec.Category)
		if err != nil {
			return nil, err
		}
		if err := disruption.CheckMagnitude(cat, spec.Magnitude); err != nil {
			return nil, fmt.Errorf("event %s %q: %w", spec.Category, spec.Key, err)
		}
		out = append(out, disruption.NewEvent(cat, spec.Key, spec.Magnitude))
	}
	return out, nil
}

// Phase returns the phase with the given name.
func (s *Scenario) Phase(name string) (Phase, bool) {
	for _, p := range s.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// NextPhase returns the name of the next phase given the current phase and event.
// If no trigger matches, ok will be false.
func (s *Scenario) NextPhase(current string, ev Event) (next string, ok bool) {
	for _, p := range s.Phases {
		if p.Name != current {
			continue
		}
		for _, tr := range p.Triggers {
			if tr.Event == ev.Type && ev.Value >= tr.Value {
				return tr.Next, true
			}
		}
	}
	return "", false
}

// Advance picks the phase after current given the outcomes of its run. A phase
// with triggers only advances when one fires; a phase without triggers falls
// through to the next declared phase. ok is false when the scenario is over.
func (s *Scenario) Advance(current string, outcomes []Event) (next string, ok bool) {
	for i, p := range s.Phases {
		if p.Name != current {
			continue
		}
		if len(p.Triggers) == 0 {
			if i+1 < len(s.Phases) {
				return s.Phases[i+1].Name, true
			}
			return "", false
		}
		for _, ev := range outcomes {
			if n, ok := s.NextPhase(current, ev); ok {
				return n, true
			}
		}
		return "", false
	}
	return "", false
}
