package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/sim"
)

var (
	runCount  int
	runSeed   int64
	runEvents []string
	runOut    outputFlags
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run disruption simulations and print the results",
	Long:  "run simulates one or more rounds of random disruptions, or the scripted --event list, and reports status and financial impact for each.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, schemaPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = runSeed
		}
		events, err := parseEvents(runEvents)
		if err != nil {
			return err
		}

		writer, cleanup, err := newWriters(cfg, runOut, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := sim.NewSession(cfg, nil, writer)
		if err != nil {
			return err
		}
		ctx := logging.NewContext(cmd.Context(), logger)
		for i := 0; i < runCount; i++ {
			if len(events) > 0 {
				_, err = session.RunEvents(ctx, events)
			} else {
				_, err = session.Run(ctx)
			}
			if err != nil {
				return err
			}
		}
		logger.Info("simulation finished", "runs", runCount, "total_net_value", session.TotalNetValue().StringFixed(0))
		return nil
	},
}

// parseEvents parses "category:key:magnitude" flags into scripted events.
func parseEvents(specs []string) ([]disruption.Event, error) {
	var events []disruption.Event
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("event %q: want category:key:magnitude", s)
		}
		cat, err := disruption.ParseCategory(parts[0])
		if err != nil {
			return nil, err
		}
		mag, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("event %q: bad magnitude: %w", s, err)
		}
		if err := disruption.CheckMagnitude(cat, mag); err != nil {
			return nil, fmt.Errorf("event %q: %w", s, err)
		}
		events = append(events, disruption.NewEvent(cat, parts[1], mag))
	}
	return events, nil
}

func addOutputFlags(cmd *cobra.Command, out *outputFlags) {
	cmd.Flags().BoolVar(&out.printOnly, "print-only", false, "Print runs to STDOUT instead of writing to GreptimeDB")
	cmd.Flags().BoolVar(&out.json, "json", false, "Print JSON lines even on a terminal")
	cmd.Flags().StringVar(&out.logFile, "log-file", "", "Path to export runs and events (JSONL)")
}

func init() {
	runCmd.Flags().IntVar(&runCount, "runs", 1, "Number of simulation runs")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed (overrides config and SENTINEL_SEED)")
	runCmd.Flags().StringArrayVar(&runEvents, "event", nil, "Scripted event category:key:magnitude (repeatable)")
	addOutputFlags(runCmd, &runOut)
}
