package cmd

import (
	"github.com/huangsam/speedreport/core"
	"github.com/spf13/cobra"
)

// reportCmd renders the productivity report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the productivity report from stored measurements",
	Long: `Build a report from the stored production table. Each flag enables one group of
sections; sections always appear in the order below regardless of flag order.

Sections:
  --per-worker   Average speed per worker and process
  --per-process  Average speed per process
  --deviation    Worker average minus process average, absolute and in percent
  --stddev       Sample standard deviation per process
  --best         Fastest workers overall and per process
  --worst        Slowest workers per process
  --all-time     Every measurement per process, fastest first
  --counts       Number of measurements per worker and process

Use --all to enable everything and --roster-only to limit the report to the
workers stored with 'speedreport roster set'.

Examples:
  # Everything, printed as tables
  speedreport report --all

  # Averages for the selected workers as a workbook
  speedreport report --per-process --best --roster-only --output xlsx --output-file izvjestaj.xlsx`,
	PreRunE: sharedSetupWrapper,
	RunE:    runWithStore(core.ExecuteReport),
}
