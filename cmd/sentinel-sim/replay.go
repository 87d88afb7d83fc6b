package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
	replayOut   outputFlags
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a run log file",
	Long:  "replay feeds run records from a JSONL log back into GreptimeDB or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(configPath, schemaPath)
		if err != nil {
			return err
		}
		writer, err := baseWriter(cfg, replayOut, logger)
		if err != nil {
			return err
		}
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to run log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 disables delays)")
	replayCmd.Flags().BoolVar(&replayOut.printOnly, "print-only", false, "Print runs to STDOUT instead of writing to GreptimeDB")
	replayCmd.Flags().BoolVar(&replayOut.json, "json", false, "Print JSON lines even on a terminal")
	replayCmd.MarkFlagRequired("input")
}
