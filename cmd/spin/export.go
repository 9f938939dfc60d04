package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/spincsv"
)

func exportCmd() *cobra.Command {
	var (
		flags  filterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded spins as CSV",
		Example: `  spin export -o spins.csv
  spin export --dealer Anna > anna.csv`,
		Args: cobra.NoArgs,
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
			outcomes, err := tracker.History(ctx, filter)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := spincsv.Write(w, outcomes); err != nil {
				return err
			}
			if output != "" {
				writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d spin(s) to %s", len(outcomes), output)))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
