// Session orchestrating disruption runs and their history
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/inventory"
	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/scenario"
	"sentinel-sim/internal/sentinel"
)

// maxScenarioSteps bounds scenarios whose triggers loop back on themselves.
const maxScenarioSteps = 64

// RunRecord is everything produced by one simulation run.
type RunRecord struct {
	RunID      string             `json:"run_id"`
	Run        int                `json:"run"`
	Scenario   string             `json:"scenario,omitempty"`
	Phase      string             `json:"phase,omitempty"`
	Events     []disruption.Event `json:"events"`
	Plans      []string           `json:"plans"`
	Components inventory.Table    `json:"components"`
	Impact     sentinel.Impact    `json:"impact"`
	// HistoryValue is the net value recorded in the run history, floored at zero.
	HistoryValue decimal.Decimal `json:"history_value"`
	Timestamp    time.Time       `json:"ts"`
}

// HistoryEntry is one point of the run history. Entries are never modified.
type HistoryEntry struct {
	Run      int             `json:"run"`
	NetValue decimal.Decimal `json:"net_value"`
}

// Snapshot is a consistent copy of the session state for display.
type Snapshot struct {
	Table         inventory.Table    `json:"table"`
	Events        []disruption.Event `json:"events"`
	Plans         []string           `json:"plans"`
	Impact        *sentinel.Impact   `json:"impact,omitempty"`
	History       []HistoryEntry     `json:"history"`
	TotalNetValue decimal.Decimal    `json:"total_net_value"`
}

// Session owns the inventory table and run history of one interactive session.
// Only Run, RunEvents, RunScenario and Reset replace the table or history.
type Session struct {
	base       inventory.Table
	src        disruption.Source
	simulator  *disruption.Simulator
	classifier sentinel.Classifier
	calculator sentinel.ImpactCalculator
	writer     RunWriter
	now        func() time.Time

	mu      sync.Mutex
	table   inventory.Table
	events  []disruption.Event
	plans   []string
	impact  *sentinel.Impact
	history []HistoryEntry
}

// NewSession initialises a session from cfg. writer may be nil.
func NewSession(cfg *config.SentinelConfig, src disruption.Source, writer RunWriter) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	base, err := cfg.BaseTable()
	if err != nil {
		return nil, fmt.Errorf("base table: %w", err)
	}
	if src == nil {
		src = disruption.NewSource(cfg.Seed)
	}
	return &Session{
		base:       base,
		src:        src,
		simulator:  disruption.NewSimulator(cfg.Disruption()),
		classifier: sentinel.NewClassifier(cfg.CriticalThresholdDays),
		calculator: sentinel.NewImpactCalculator(cfg.Premium()),
		writer:     writer,
		now:        func() time.Time { return time.Now().UTC() },
		table:      base.Clone(),
	}, nil
}

// Run simulates random disruptions against a fresh base table, classifies the
// result, computes its impact and appends a history entry.
func (s *Session) Run(ctx context.Context) (RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, events, err := s.simulator.Simulate(s.base, s.src)
	if err != nil {
		return RunRecord{}, err
	}
	return s.finish(ctx, t, events, "", ""), nil
}

// RunEvents is Run with a fixed list of events instead of random draws.
func (s *Session) RunEvents(ctx context.Context, events []disruption.Event) (RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runEventsLocked(ctx, events, "", "")
}

func (s *Session) runEventsLocked(ctx context.Context, events []disruption.Event, scenarioName, phase string) (RunRecord, error) {
	t := s.base.Clone()
	applied := make([]disruption.Event, 0, len(events))
	for _, ev := range events {
		if ev.Detail == "" {
			ev = disruption.NewEvent(ev.Category, ev.Key, ev.Magnitude)
		}
		if err := disruption.Apply(t, ev); err != nil {
			return RunRecord{}, err
		}
		applied = append(applied, ev)
	}
	return s.finish(ctx, t, applied, scenarioName, phase), nil
}

// RunScenario plays the phases of sc in order, one run per phase, following
// triggers evaluated on each run's outcome.
func (s *Session) RunScenario(ctx context.Context, sc *scenario.Scenario) ([]RunRecord, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []RunRecord
	phase := sc.Phases[0]
	for step := 0; step < maxScenarioSteps; step++ {
		events, err := phase.Disruptions()
		if err != nil {
			return records, err
		}
		rec, err := s.runEventsLocked(ctx, events, sc.Name, phase.Name)
		if err != nil {
			return records, fmt.Errorf("phase %s: %w", phase.Name, err)
		}
		records = append(records, rec)

		next, ok := sc.Advance(phase.Name, outcomes(rec))
		if !ok {
			return records, nil
		}
		log.Debug("scenario advancing", "scenario", sc.Name, "from", phase.Name, "to", next)
		phase, _ = sc.Phase(next)
	}
	log.Warn("scenario step limit reached", "scenario", sc.Name, "steps", maxScenarioSteps)
	return records, nil
}

func outcomes(rec RunRecord) []scenario.Event {
	counts := rec.Components.Counts()
	return []scenario.Event{
		{Type: scenario.EventCriticalRows, Value: counts[inventory.StatusCritical]},
		{Type: scenario.EventWarningRows, Value: counts[inventory.StatusWarning]},
		{Type: scenario.EventNetValue, Value: int(rec.Impact.NetValue.IntPart())},
	}
}

// finish classifies t, records the run and emits it. Callers hold s.mu.
func (s *Session) finish(ctx context.Context, t inventory.Table, events []disruption.Event, scenarioName, phase string) RunRecord {
	log := logging.FromContext(ctx)

	s.classifier.Classify(t)
	impact := s.calculator.Calculate(t)
	plans := sentinel.MitigationPlan(events)

	historyValue := impact.NetValue
	if historyValue.IsNegative() {
		historyValue = decimal.Zero
	}
	run := len(s.history) + 1

	s.table = t
	s.events = events
	s.plans = plans
	s.impact = &impact
	s.history = append(s.history, HistoryEntry{Run: run, NetValue: historyValue})

	rec := RunRecord{
		RunID:        uuid.New().String(),
		Run:          run,
		Scenario:     scenarioName,
		Phase:        phase,
		Events:       append([]disruption.Event(nil), events...),
		Plans:        append([]string(nil), plans...),
		Components:   t.Clone(),
		Impact:       impact,
		HistoryValue: historyValue,
		Timestamp:    s.now(),
	}

	counts := t.Counts()
	log.Info("run complete",
		"run", run,
		"events", len(events),
		"critical", counts[inventory.StatusCritical],
		"warning", counts[inventory.StatusWarning],
		"net_value", impact.NetValue.StringFixed(0))

	if s.writer != nil {
		if err := s.writer.WriteRun(rec); err != nil {
			log.Error("run write failed", "run", run, "err", err)
		}
	}
	return rec
}

// Reset restores the base table and clears history, events and impact.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = s.base.Clone()
	s.events = nil
	s.plans = nil
	s.impact = nil
	s.history = nil
	logging.FromContext(ctx).Info("session reset")

	if rw, ok := s.writer.(ResetWriter); ok {
		rw.Reset(s.snapshotLocked())
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Table:         s.table.Clone(),
		Events:        append([]disruption.Event(nil), s.events...),
		Plans:         append([]string(nil), s.plans...),
		History:       append([]HistoryEntry(nil), s.history...),
		TotalNetValue: totalNet(s.history),
	}
	if s.impact != nil {
		imp := *s.impact
		snap.Impact = &imp
	}
	return snap
}

// History returns the run history in run order.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

// TotalNetValue sums the net value of every recorded run.
func (s *Session) TotalNetValue() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalNet(s.history)
}

func totalNet(h []HistoryEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range h {
		total = total.Add(e.NetValue)
	}
	return total
}

// RunEvery triggers Run on every tick until ctx is done.
func RunEvery(ctx context.Context, s *Session, interval time.Duration) {
	log := logging.FromContext(ctx)
	log.Info("starting auto-run", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				log.Error("run failed", "err", err)
			}
		case <-ctx.Done():
			log.Info("stopping auto-run")
			return
		}
	}
}
