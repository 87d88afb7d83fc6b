package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/sim"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWritersPrintOnly(t *testing.T) {
	w, cleanup, err := newWriters(config.Default(), outputFlags{printOnly: true, json: true}, discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", w)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, cleanup, err := newWriters(config.Default(), outputFlags{json: true}, discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", w)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.log")
	w, cleanup, err := newWriters(config.Default(), outputFlags{printOnly: true, json: true, logFile: path}, discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}
	rec := sim.RunRecord{
		RunID:     "r1",
		Run:       1,
		Events:    []disruption.Event{disruption.NewEvent(disruption.DemandSpike, "Cooling Fan", 1.3)},
		Plans:     []string{"plan"},
		Timestamp: time.Now(),
	}
	if err := w.WriteRun(rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cleanup()

	for _, p := range []string{path, path + ".events"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s failed: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", p)
		}
	}
}

func TestParseEvents(t *testing.T) {
	events, err := parseEvents([]string{"port_congestion:Taiwan-US:7", "demand-spike:Cooling Fan:1.25"})
	if err != nil {
		t.Fatalf("parseEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Category != disruption.PortCongestion || events[0].Key != "Taiwan-US" || events[0].Magnitude != 7 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Category != disruption.DemandSpike || events[1].Detail == "" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}

	for _, bad := range []string{
		"port_congestion:Taiwan-US",
		"flood:X:1",
		"port_congestion:Taiwan-US:soon",
		"port_congestion:Taiwan-US:-50",
		"demand_spike:CPU Model A:0",
	} {
		if _, err := parseEvents([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLoadConfigDefaultsAndSeed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Setenv("SENTINEL_SEED", "99")
	cfg, err := loadConfig(defaultConfigPath, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("seed = %d, want 99", cfg.Seed)
	}
	if cfg.MinEvents != 1 || cfg.MaxEvents != 2 {
		t.Fatalf("expected default event range, got %d-%d", cfg.MinEvents, cfg.MaxEvents)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Fatalf("expected error for explicit missing config")
	}

	t.Setenv("SENTINEL_SEED", "abc")
	if _, err := loadConfig(defaultConfigPath, ""); err == nil || !strings.Contains(err.Error(), "SENTINEL_SEED") {
		t.Fatalf("expected SENTINEL_SEED error, got %v", err)
	}
}
