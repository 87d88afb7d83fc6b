package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/scenario"
	"sentinel-sim/internal/sim"
)

var (
	scenarioName string
	scenarioFile string
	scenarioList bool
	scenarioOut  outputFlags
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Play a scripted disruption scenario",
	Long:  "scenario runs the phases of a built-in (--name) or YAML (--file) scenario, one simulation per phase, following its triggers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scenarioList {
			builtIn := scenario.BuiltIn()
			names := make([]string, 0, len(builtIn))
			for name := range builtIn {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, builtIn[name].Description)
			}
			return nil
		}

		sc, err := resolveScenario(scenarioName, scenarioFile)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configPath, schemaPath)
		if err != nil {
			return err
		}
		writer, cleanup, err := newWriters(cfg, scenarioOut, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := sim.NewSession(cfg, nil, writer)
		if err != nil {
			return err
		}
		recs, err := session.RunScenario(logging.NewContext(cmd.Context(), logger), sc)
		if err != nil {
			return err
		}
		logger.Info("scenario finished", "scenario", sc.Name, "phases", len(recs), "total_net_value", session.TotalNetValue().StringFixed(0))
		return nil
	},
}

func resolveScenario(name, file string) (*scenario.Scenario, error) {
	switch {
	case file != "":
		return scenario.Load(file)
	case name != "":
		sc, ok := scenario.BuiltIn()[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q (use --list)", name)
		}
		return &sc, nil
	}
	return nil, fmt.Errorf("either --name or --file is required")
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioName, "name", "", "Built-in scenario name")
	scenarioCmd.Flags().StringVar(&scenarioFile, "file", "", "Path to scenario YAML")
	scenarioCmd.Flags().BoolVar(&scenarioList, "list", false, "List built-in scenarios")
	scenarioCmd.MarkFlagsMutuallyExclusive("name", "file")
	addOutputFlags(scenarioCmd, &scenarioOut)
}
