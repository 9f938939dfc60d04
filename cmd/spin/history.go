package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
)

func historyCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Show recorded spins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			filter, err := flags.filter(ctx, store)
			if err != nil {
				return err
			}
			if filter.Last == 0 {
				filter.Last = 20
			}

			outcomes, err := tracker.History(ctx, filter)
			if err != nil {
				return err
			}
			if len(outcomes) == 0 {
				writeLine(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No spins recorded."))
				return nil
			}

			writeLine(cmd.OutOrStdout(), cli.FormatTitle(fmt.Sprintf("Last %d spin(s)", len(outcomes))))
			return cli.RenderHistory(cmd.OutOrStdout(), outcomes)
		},
	}

	flags.register(cmd)
	return cmd
}
