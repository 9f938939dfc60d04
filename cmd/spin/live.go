package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/tui"
	"github.com/Veraticus/the-wheel-must-spin/internal/tui/themes"
)

func liveCmd() *cobra.Command {
	var (
		flags      filterFlags
		dealer     string
		monochrome bool
	)

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Full-screen spin entry with a live analysis",
		Long: `Open a full-screen view for recording spins at the table. The analysis
refreshes after every entry.

Type a number (or several, separated by spaces) and press Enter.
ctrl+z undoes the last spin, ? toggles help and esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if dealer != "" {
				if err := tracker.SetDealer(ctx, dealer); err != nil {
					return err
				}
			}

			filter, err := flags.filter(ctx, store)
			if err != nil {
				return err
			}

			opts := []tui.Option{tui.WithFilter(filter)}
			if monochrome {
				opts = append(opts, tui.WithTheme(themes.Monochrome))
			}

			recorded, err := tui.Run(ctx, tracker, opts...)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d spin(s) recorded", recorded)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dealer, "set-dealer", "", "switch to this dealer before starting")
	cmd.Flags().BoolVar(&monochrome, "monochrome", false, "use the monochrome theme")
	return cmd
}
