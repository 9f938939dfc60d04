package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func analyzeCmd() *cobra.Command {
	var (
		flags      filterFlags
		asJSON     bool
		verbose    bool
		categories []string
	)

	cmd := &cobra.Command{
		Use:     "analyze",
		Aliases: []string{"stats"},
		Short:   "Analyze recorded spins against a fair wheel",
		Long: `Compute hot and cold numbers, group hit rates, trends, patterns and digit
sums for the selected spins.`,
		Example: `  # Everything recorded
  spin analyze

  # The last 50 spins of one dealer
  spin analyze --dealer Anna -n 50

  # Only wheel sectors and dozens, as JSON
  spin analyze --category wheel --category dozen --json`,
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

			report, err := tracker.Analyze(ctx, filter)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			opts := cli.RenderOptions{Verbose: verbose}
			for _, c := range categories {
				opts.Categories = append(opts.Categories, model.GroupCategory(strings.ToLower(strings.TrimSpace(c))))
			}
			return cli.RenderReport(cmd.OutOrStdout(), report, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show every pattern finding")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only show these group categories (wheel, dozen, column, ...)")

	return cmd
}
