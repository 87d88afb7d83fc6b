package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/admin"
	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/sim"
)

var (
	tuiAddr     string
	tuiLogFile  string
	tuiDebugLog string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal dashboard",
	Long:  "tui shows the inventory status grid, metrics and event log; press r to run a simulation and x to reset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, schemaPath)
		if err != nil {
			return err
		}

		// the alternate screen owns the terminal, so logs go to a file or nowhere
		var logOut io.Writer = io.Discard
		if tuiDebugLog != "" {
			f, err := os.Create(tuiDebugLog)
			if err != nil {
				return err
			}
			defer f.Close()
			logOut = f
		}
		log := logging.NewWithWriter(logOut, logLevel)

		base, err := cfg.BaseTable()
		if err != nil {
			return err
		}
		tw := sim.NewTUIWriter(cfg, base)
		var writer sim.RunWriter = tw
		if tuiLogFile != "" {
			fw, err := sim.NewFileWriter(tuiLogFile, tuiLogFile+".events")
			if err != nil {
				tw.Close()
				return err
			}
			defer fw.Close()
			writer = sim.NewMultiWriter(tw, fw)
		}

		session, err := sim.NewSession(cfg, nil, writer)
		if err != nil {
			tw.Close()
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		tw.SetRunner(func() {
			if _, err := session.Run(ctx); err != nil {
				log.Error("run failed", "err", err)
			}
		})
		tw.SetResetter(func() sim.Snapshot {
			session.Reset(ctx)
			return session.Snapshot()
		})

		if tuiAddr != "" {
			srv := admin.NewServer(session, log)
			go func() {
				tw.SetAdminStatus(true)
				if err := srv.Start(ctx, tuiAddr); err != nil {
					log.Error("admin server failed", "err", err)
				}
				tw.SetAdminStatus(false)
			}()
		}

		select {
		case <-tw.Done():
		case <-ctx.Done():
		}
		return tw.Close()
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiAddr, "addr", "", "Also serve the admin UI on this address")
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Path to export runs and events (JSONL)")
	tuiCmd.Flags().StringVar(&tuiDebugLog, "debug-log", "", "Write diagnostic logs to this file")
}
