package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/groupfile"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func groupsCmd() *cobra.Command {
	var (
		customOnly bool
		category   string
	)

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List and manage number groups",
		Long: `List the built-in and custom number groups used by the analysis.

Custom groups are any set of pockets you want tracked, for example a
personal betting pattern. They can be shared as YAML files with
"groups export" and "groups import".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var groups []model.Group
			if customOnly {
				groups, err = tracker.CustomGroups(ctx)
			} else {
				groups, err = tracker.Groups(ctx)
			}
			if err != nil {
				return err
			}

			if category != "" {
				want := model.GroupCategory(strings.ToLower(category))
				filtered := groups[:0]
				for _, g := range groups {
					if g.Category == want {
						filtered = append(filtered, g)
					}
				}
				groups = filtered
			}

			if len(groups) == 0 {
				writeLine(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No groups found."))
				return nil
			}
			return cli.RenderGroupList(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().BoolVar(&customOnly, "custom", false, "only list custom groups")
	cmd.Flags().StringVar(&category, "category", "", "only list groups in this category")

	cmd.AddCommand(groupsAddCmd())
	cmd.AddCommand(groupsDeleteCmd())
	cmd.AddCommand(groupsImportCmd())
	cmd.AddCommand(groupsExportCmd())
	return cmd
}

func groupsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <numbers...>",
		Short: "Define a custom group",
		Example: `  spin groups add "My Corner" 1 2 4 5
  spin groups add Lucky 7,17,27`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			group, err := tracker.AddGroup(ctx, args[0], strings.Join(args[1:], ","))
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added group %q: %s", group.Name, group.NumbersString())))
			return nil
		},
	}
}

func groupsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a custom group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := tracker.DeleteGroup(ctx, args[0]); err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted group %q", args[0])))
			return nil
		},
	}
}

func groupsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import custom groups from a YAML file",
		Long: `Import custom groups from a YAML file written by "groups export". Groups
whose names already exist are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			groups, err := groupfile.Decode(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			added, err := tracker.ImportGroups(ctx, groups)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d of %d group(s)", added, len(groups))))
			return nil
		},
	}
}

func groupsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write custom groups as YAML (stdout without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			groups, err := tracker.CustomGroups(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := groupfile.Encode(w, groups); err != nil {
				return err
			}
			if len(args) == 1 {
				writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d group(s) to %s", len(groups), args[0])))
			}
			return nil
		},
	}
}
