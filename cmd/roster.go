package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/speedreport/core"
	"github.com/spf13/cobra"
)

// rosterCmd focused on the list of selected workers.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the list of selected workers",
	Long: `Manage the roster, the subset of workers a report can be limited to with
'speedreport report --roster-only'.

Subcommands:
  set  - Replace the roster
  list - Print the roster

Examples:
  speedreport roster set "Ana Anić" "Marko Marić"
  speedreport roster set --file radnici.xlsx --column Ime
  speedreport roster list`,
}

// rosterSetCmd replaces the roster.
var rosterSetCmd = &cobra.Command{
	Use:     "set [name...]",
	Short:   "Replace the roster with the given names",
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		column, _ := cmd.Flags().GetString("column")
		sheet, _ := cmd.Flags().GetString("sheet")

		var (
			count int
			err   error
		)
		switch {
		case file != "" && len(args) > 0:
			return errors.New("pass names or --file, not both")
		case file != "":
			count, err = core.ImportRoster(rootCtx, recordStore(), file, sheet, column)
		default:
			count, err = core.SetRoster(rootCtx, recordStore(), args)
		}
		if err != nil {
			return err
		}
		cmd.Printf("Roster updated with %d workers.\n", count)
		return nil
	},
}

// rosterListCmd prints the roster.
var rosterListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print the roster",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := core.ExecuteRosterList(rootCtx, cfg, recordStore()); err != nil {
			return fmt.Errorf("failed to list roster: %w", err)
		}
		return nil
	},
}
