package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			status, err := tracker.Status(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeLine(out, cli.FormatTitle("Session "+status.Session.ID))
			writeLine(out, fmt.Sprintf("Started:  %s", status.Session.StartedAt.Local().Format("2006-01-02 15:04:05")))
			writeLine(out, fmt.Sprintf("Duration: %s", model.FormatDuration(status.Duration)))
			writeLine(out, fmt.Sprintf("Dealer:   %s", status.Dealer))
			writeLine(out, fmt.Sprintf("Spins:    %d this session, %d total", status.SessionSpins, status.TotalSpins))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a new session; earlier spins are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := tracker.StartSession(ctx)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Started session "+session.ID))
			return nil
		},
	})

	return cmd
}
