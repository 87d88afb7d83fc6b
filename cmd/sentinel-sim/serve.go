package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/admin"
	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/sim"
)

var (
	serveAddr     string
	serveInterval time.Duration
	serveOut      outputFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin UI and optionally run simulations on a timer",
	Long:  "serve exposes the session over HTTP (status page, /inventory, /history, /events, POST /run, POST /reset) and runs a simulation every --interval when set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, schemaPath)
		if err != nil {
			return err
		}
		writer, cleanup, err := newWriters(cfg, serveOut, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := sim.NewSession(cfg, nil, writer)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		if serveInterval > 0 {
			go sim.RunEvery(ctx, session, serveInterval)
		}
		if aw, ok := writer.(sim.AdminStatusWriter); ok {
			aw.SetAdminStatus(true)
		}

		srv := admin.NewServer(session, logger)
		err = srv.Start(ctx, serveAddr)
		logger.Info("sentinel stopped", "runs", len(session.History()))
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Admin UI listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 0, "Run a simulation on this interval (0 disables)")
	addOutputFlags(serveCmd, &serveOut)
}

