package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/inventory"
	"sentinel-sim/internal/scenario"
)

type recordingWriter struct {
	recs []RunRecord
	err  error
}

func (r *recordingWriter) WriteRun(rec RunRecord) error {
	r.recs = append(r.recs, rec)
	return r.err
}

func newTestSession(t *testing.T, cfg *config.SentinelConfig, w RunWriter) *Session {
	t.Helper()
	s, err := NewSession(cfg, disruption.NewSource(42), w)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Unix(0, 0).UTC() }
	return s
}

func congestion(lane string, days float64) []disruption.Event {
	return []disruption.Event{{Category: disruption.PortCongestion, Key: lane, Magnitude: days}}
}

func TestSessionRunEventsCritical(t *testing.T) {
	w := &recordingWriter{}
	s := newTestSession(t, nil, w)

	rec, err := s.RunEvents(context.Background(), congestion("Trans-Pacific", 10))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Run)
	assert.NotEmpty(t, rec.RunID)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Congestion in the Trans-Pacific lane. Estimated delay: 10 days.", rec.Events[0].Detail)
	require.Len(t, rec.Plans, 1)
	assert.Contains(t, rec.Plans[0], "Port Congestion")

	assert.Equal(t, 1, rec.Components.Counts()[inventory.StatusCritical])
	assert.Equal(t, inventory.StatusCritical, rec.Components[0].Status)
	assert.True(t, rec.Impact.NetValue.Equal(decimal.NewFromInt(880_000)), rec.Impact.NetValue.String())
	assert.True(t, rec.HistoryValue.Equal(rec.Impact.NetValue))

	require.Len(t, w.recs, 1)
	assert.Equal(t, rec.RunID, w.recs[0].RunID)

	snap := s.Snapshot()
	require.NotNil(t, snap.Impact)
	assert.Equal(t, inventory.StatusCritical, snap.Table[0].Status)
	assert.Len(t, snap.History, 1)
	assert.True(t, snap.TotalNetValue.Equal(decimal.NewFromInt(880_000)))
}

func TestSessionRunsStartFromBase(t *testing.T) {
	s := newTestSession(t, nil, nil)
	ctx := context.Background()

	_, err := s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)
	rec, err := s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)

	assert.Equal(t, 35, rec.Components[0].LeadTimeDays)
	assert.Equal(t, 2, rec.Run)
	assert.True(t, s.TotalNetValue().Equal(decimal.NewFromInt(1_760_000)))
}

func TestSessionHistoryClampsNegativeNet(t *testing.T) {
	cfg := config.Default()
	cfg.AirFreightPremium = 2_000_000
	s := newTestSession(t, cfg, nil)

	rec, err := s.RunEvents(context.Background(), congestion("Trans-Pacific", 10))
	require.NoError(t, err)

	assert.True(t, rec.Impact.NetValue.Equal(decimal.NewFromInt(-1_000_000)), rec.Impact.NetValue.String())
	assert.True(t, rec.HistoryValue.IsZero())
	assert.True(t, s.History()[0].NetValue.IsZero())
}

func TestSessionRunRandom(t *testing.T) {
	s := newTestSession(t, nil, nil)

	rec, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(rec.Events), 1)
	assert.LessOrEqual(t, len(rec.Events), 2)
	assert.Len(t, rec.Plans, len(rec.Events))
	assert.Len(t, rec.Components, len(inventory.Build()))
	assert.False(t, rec.HistoryValue.IsNegative())
}

func TestSessionRunEventsNoMatch(t *testing.T) {
	w := &recordingWriter{}
	s := newTestSession(t, nil, w)

	_, err := s.RunEvents(context.Background(), congestion("Atlantic", 5))
	require.ErrorIs(t, err, disruption.ErrNoMatch)
	assert.Empty(t, w.recs)
	assert.Empty(t, s.History())
}

func TestSessionWriterErrorIsNotFatal(t *testing.T) {
	w := &recordingWriter{err: errors.New("boom")}
	s := newTestSession(t, nil, w)

	_, err := s.RunEvents(context.Background(), congestion("Trans-Pacific", 10))
	require.NoError(t, err)
	assert.Len(t, s.History(), 1)
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(t, nil, nil)
	ctx := context.Background()

	_, err := s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)
	s.Reset(ctx)

	snap := s.Snapshot()
	assert.Nil(t, snap.Impact)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Events)
	assert.True(t, snap.TotalNetValue.IsZero())
	assert.Equal(t, inventory.Build(), snap.Table)

	rec, err := s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Run)
}

func TestSessionRunScenario(t *testing.T) {
	w := &recordingWriter{}
	s := newTestSession(t, nil, w)
	sc := scenario.BuiltIn()["pacific-squeeze"]

	recs, err := s.RunScenario(context.Background(), &sc)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	phases := make([]string, 0, len(recs))
	for _, r := range recs {
		phases = append(phases, r.Phase)
		assert.Equal(t, "Pacific Squeeze", r.Scenario)
	}
	assert.Equal(t, []string{"setup", "escalation", "climax", "resolution"}, phases)
	assert.Zero(t, recs[0].Components.Counts()[inventory.StatusCritical])
	assert.Equal(t, 3, recs[1].Components.Counts()[inventory.StatusCritical])
	assert.Len(t, w.recs, 4)
	assert.Len(t, s.History(), 4)
}

func TestSessionRunScenarioStopsWithoutTrigger(t *testing.T) {
	s := newTestSession(t, nil, nil)
	sc := scenario.Scenario{
		Name: "quiet",
		Phases: []scenario.Phase{
			{
				Name:     "watch",
				Events:   []scenario.EventSpec{{Category: "port_congestion", Key: "Intra-Asia", Magnitude: 1}},
				Triggers: []scenario.Trigger{{Event: scenario.EventCriticalRows, Value: 1, Next: "never"}},
			},
			{Name: "never"},
		},
	}

	recs, err := s.RunScenario(context.Background(), &sc)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRunEveryStopsOnCancel(t *testing.T) {
	w := &recordingWriter{}
	s := newTestSession(t, nil, w)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunEvery(ctx, s, 5*time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return len(s.History()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunEvery did not stop")
	}
}

func TestSessionResetRestartsWriterTotals(t *testing.T) {
	var buf bytes.Buffer
	color := &ColorStdoutWriter{out: &buf}
	s := newTestSession(t, nil, NewMultiWriter(color))
	ctx := context.Background()

	_, err := s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)
	s.Reset(ctx)
	buf.Reset()

	_, err = s.RunEvents(ctx, congestion("Trans-Pacific", 10))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, s.TotalNetValue().Equal(decimal.NewFromInt(880_000)))
	assert.Contains(t, out, "total=$880,000")
	assert.False(t, strings.Contains(out, "$1,760,000"), out)
}
