package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
)

func dealerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dealer",
		Short: "Show or change the dealer new spins are tagged with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dealer, err := tracker.Dealer(ctx)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "Current dealer: "+cli.BoldStyle.Render(dealer))
			return nil
		},
	}

	cmd.AddCommand(dealerSetCmd())
	cmd.AddCommand(dealerListCmd())
	return cmd
}

func dealerSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Tag new spins with this dealer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := tracker.SetDealer(ctx, args[0]); err != nil {
				return err
			}
			dealer, err := tracker.Dealer(ctx)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Dealer set to "+dealer))
			return nil
		},
	}
}

func dealerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dealers seen in the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dealers, err := tracker.Dealers(ctx)
			if err != nil {
				return err
			}
			if len(dealers) == 0 {
				writeLine(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No spins recorded."))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DEALER\tSPINS")
			for _, d := range dealers {
				fmt.Fprintf(tw, "%s\t%d\n", d.DealerID, d.Spins)
			}
			return tw.Flush()
		},
	}
}
