package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
)

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every recorded spin and start a new session",
		Long: `Delete the whole spin history and start a new session. Custom groups and
settings are kept. A checkpoint is taken first so the history can be recovered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			if !yes {
				prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(ctx, "Delete all recorded spins?")
				if err != nil {
					return err
				}
				if !ok {
					writeLine(out, cli.SubtitleStyle.Render("Reset cancelled."))
					return nil
				}
			}

			cleared, session, err := tracker.Reset(ctx)
			if err != nil {
				return err
			}
			writeLine(out, cli.FormatSuccess(fmt.Sprintf("Cleared %d spin(s); new session %s", cleared, session.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
