package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func neighboursCmd() *cobra.Command {
	var (
		flags  filterFlags
		k      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "neighbours <number>",
		Aliases: []string{"neighbors"},
		Short:   "Show how a number and its wheel neighbours are running",
		Example: `  # 0 with two pockets either side
  spin neighbours 0

  # 17 with four pockets either side over the last 100 spins
  spin neighbours 17 --k 4 -n 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := model.ParseNumber(args[0])
			if err != nil {
				return err
			}

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

			row, err := tracker.Neighbours(ctx, center, k, filter)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(row)
			}
			return cli.RenderGroupRow(cmd.OutOrStdout(), row)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&k, "k", 2, "pockets on each side of the number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
