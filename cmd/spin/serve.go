package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-wheel-must-spin/internal/api"
	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/config"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over a JSON HTTP API",
		Long: `Start an HTTP server exposing spin entry and analysis as JSON, so a
phone or browser at the table can record spins.

Routes:
  GET    /health
  GET    /api/analysis?dealer=&session=&last=
  GET    /api/neighbours?center=&k=
  GET    /api/spins         POST /api/spins    DELETE /api/spins/last
  GET    /api/groups        POST /api/groups   DELETE /api/groups/{name}
  GET    /api/dealers
  GET    /api/dealer        PUT /api/dealer
  GET    /api/session       POST /api/session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker, store, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if addr == "" {
				addr = viper.GetString(config.KeyServerAddr)
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Shutting down the server...")
			ctx := handler.HandleInterrupts(cmd.Context())

			writeLine(cmd.OutOrStdout(), cli.FormatInfo("Listening on "+addr))
			return api.NewServer(tracker, version).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
