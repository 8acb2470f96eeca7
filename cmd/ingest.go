package cmd

import (
	"fmt"

	"github.com/huangsam/speedreport/core"
	"github.com/huangsam/speedreport/internal/ingest"
	"github.com/spf13/cobra"
)

// ingestCmd loads a spreadsheet into the production table.
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Load a worker speed spreadsheet into the store",
	Long: `Read an .xlsx or .csv file and replace the stored production table with its rows.

The first non-empty row is the header. The worker, process and speed columns
are required (defaults: Ime, Sirovina, Brzina; override with the columns
section of .speedreport.yaml). Every other column is kept as-is.

CSV delimiters are detected automatically among comma, semicolon and tab.
Nothing is written to the store when the file cannot be read.

Examples:
  # Load the first sheet of a workbook
  speedreport ingest brzine.xlsx

  # Pick a sheet and keep rows ordered by date
  speedreport ingest brzine.xlsx --sheet Ožujak --sort-by Datum`,
	Args: cobra.MatchAll(cobra.ExactArgs(1), func(_ *cobra.Command, args []string) error {
		if !ingest.SupportedFile(args[0]) {
			return fmt.Errorf("unsupported file %s (expected %s or %s)", args[0], ingest.ExtXLSX, ingest.ExtCSV)
		}
		return nil
	}),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		return core.ExecuteIngest(rootCtx, cfg, recordStore(), args[0])
	},
}
