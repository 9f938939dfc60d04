package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func addCmd() *cobra.Command {
	var (
		interactive bool
		dealer      string
	)

	cmd := &cobra.Command{
		Use:   "add [numbers...]",
		Short: "Record one or more spins",
		Long: `Record spin outcomes in the order they happened. Spins are tagged with the
current dealer and session.

Without arguments (or with --interactive) spins are read line by line until
"q" or end of input; "u" removes the last spin.`,
		Example: `  # Record a single spin
  spin add 17

  # Record several spins at once, oldest first
  spin add 32 15 0

  # Type spins as they come in
  spin add -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			if interactive || len(args) == 0 {
				return runEntryLoop(ctx, tracker, cmd.InOrStdin(), out)
			}

			outcomes, err := tracker.RecordEntry(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			writeLine(out, cli.FormatSuccess(fmt.Sprintf("Recorded %d spin(s): %s", len(outcomes), formatOutcomes(outcomes))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read spins line by line")
	cmd.Flags().StringVar(&dealer, "dealer", "", "switch to this dealer before recording")

	return cmd
}

func runEntryLoop(ctx context.Context, tracker *engine.Tracker, in io.Reader, out io.Writer) error {
	dealer, err := tracker.Dealer(ctx)
	if err != nil {
		return err
	}
	writeLine(out, cli.FormatInfo(fmt.Sprintf("Recording for dealer %s. Enter q to finish, u to undo.", dealer)))

	recorded := 0
	prompter := cli.NewCLIPrompter(in, out)
	err = prompter.EntryLoop(ctx, "Spin", func(ctx context.Context, line string) (string, error) {
		switch strings.ToLower(line) {
		case "u", "undo":
			removed, err := tracker.Undo(ctx)
			if err != nil {
				return "", err
			}
			recorded--
			return cli.FormatWarning(fmt.Sprintf("Removed %d", removed.Number)), nil
		}

		outcomes, err := tracker.RecordEntry(ctx, line)
		if err != nil {
			return "", err
		}
		recorded += len(outcomes)
		return describeOutcomes(outcomes), nil
	})
	if err != nil {
		return err
	}

	writeLine(out, cli.FormatSuccess(fmt.Sprintf("%d spin(s) recorded", max(recorded, 0))))
	return nil
}

func describeOutcomes(outcomes []model.Outcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("%s (%s)", cli.FormatNumber(o.Number), model.ColorOf(o.Number))
	}
	return "  " + strings.Join(parts, ", ")
}
