package cmd

import (
	"github.com/huangsam/speedreport/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the speedreport MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents generate reports and inspect
the stored measurements via standard tools.

Tools:
  generate_report - Build the report with selected sections
  dataset_summary - Record count, workers, processes and speed range
  list_roster     - Workers on the roster`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
