package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/dashboard"
	"sentinel-sim/internal/sim"
)

// outputFlags are shared by every command that emits runs.
type outputFlags struct {
	printOnly bool
	json      bool
	logFile   string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newWriters sets up the run writer based on flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(cfg *config.SentinelConfig, out outputFlags, log *slog.Logger) (sim.RunWriter, func(), error) {
	cleanup := func() {}

	writer, err := baseWriter(cfg, out, log)
	if err != nil {
		return nil, nil, err
	}
	if out.logFile == "" {
		return writer, cleanup, nil
	}

	fw, err := sim.NewFileWriter(out.logFile, out.logFile+".events")
	if err != nil {
		return nil, nil, err
	}
	cleanup = func() { fw.Close() }
	return sim.NewMultiWriter(writer, fw), cleanup, nil
}

// baseWriter chooses GreptimeDB when configured, otherwise STDOUT.
func baseWriter(cfg *config.SentinelConfig, out outputFlags, log *slog.Logger) (sim.RunWriter, error) {
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if out.printOnly || endpoint == "" {
		return stdoutWriter(cfg, out.json), nil
	}
	return sim.NewGreptimeDBWriter(
		endpoint,
		envOr("GREPTIMEDB_DATABASE", "public"),
		envOr("SENTINEL_RUN_TABLE", dashboard.DefaultRunTable),
		envOr("SENTINEL_COMPONENT_TABLE", dashboard.DefaultComponentTable),
		log,
	)
}

// stdoutWriter prints colors on a terminal and JSON lines otherwise.
func stdoutWriter(cfg *config.SentinelConfig, jsonOut bool) sim.RunWriter {
	if jsonOut || !term.IsTerminal(int(os.Stdout.Fd())) {
		return sim.NewJSONStdoutWriter()
	}
	return sim.NewColorStdoutWriter(cfg)
}
