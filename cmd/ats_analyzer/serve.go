package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start an HTTP server exposing POST /analyze, POST /analyze/batch, POST /report,
GET /skills and GET /health. Rate limits are read from RATE_LIMIT_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			srv := server.New(server.Config{
				Port:        a.cfg.Server.Port,
				Concurrency: a.cfg.Concurrency,
				Logger:      a.log,
			})
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config, else 8080)")

	return cmd
}
