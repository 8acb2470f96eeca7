package cmd

import (
	"github.com/huangsam/speedreport/core"
	"github.com/spf13/cobra"
)

// datasetCmd inspects the stored production table.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the stored measurements",
	Long: `Show what is currently stored without building a report.

Subcommands:
  workers   - Distinct workers in order of appearance
  processes - Distinct processes in order of appearance
  summary   - Record count, speed range and mean

Examples:
  speedreport dataset summary --output json
  speedreport dataset workers`,
}

var datasetWorkersCmd = &cobra.Command{
	Use:     "workers",
	Short:   "List distinct workers",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runWithStore(core.ExecuteWorkers),
}

var datasetProcessesCmd = &cobra.Command{
	Use:     "processes",
	Short:   "List distinct processes",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runWithStore(core.ExecuteProcesses),
}

var datasetSummaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Summarize the stored dataset",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runWithStore(core.ExecuteSummary),
}
