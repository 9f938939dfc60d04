package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/spincsv"
)

// importBatchSize is how many spins are written per transaction.
const importBatchSize = 500

func importCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import spins from a CSV export",
		Long: `Import spins from a CSV file with the columns Timestamp, DealerID and
Number, as written by "spin export". Imported spins join the current session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			outcomes, err := spincsv.Read(f, tracker.Config().DefaultDealer)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if len(outcomes) == 0 {
				writeLine(cmd.OutOrStdout(), cli.FormatWarning("No spins found in "+args[0]))
				return nil
			}

			session, err := store.EnsureSession(ctx)
			if err != nil {
				return err
			}
			for i := range outcomes {
				outcomes[i].SessionID = session.ID
			}

			var bar interface{ Add(int) error }
			if !quiet {
				bar = cli.NewProgressBar(cmd.ErrOrStderr(), len(outcomes), "Importing spins")
			}
			for start := 0; start < len(outcomes); start += importBatchSize {
				batch := outcomes[start:min(start+importBatchSize, len(outcomes))]
				if err := tracker.Import(ctx, batch); err != nil {
					return fmt.Errorf("imported %d of %d spin(s): %w", start, len(outcomes), err)
				}
				if bar != nil {
					_ = bar.Add(len(batch))
				}
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d spin(s)", len(outcomes))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}
