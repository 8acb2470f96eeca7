// Package cmd defines the command-line interface for speedreport.
package cmd

import (
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the roster subcommands to the parent roster command
	rosterCmd.AddCommand(rosterSetCmd)
	rosterCmd.AddCommand(rosterListCmd)

	// Add the dataset subcommands to the parent dataset command
	datasetCmd.AddCommand(datasetWorkersCmd)
	datasetCmd.AddCommand(datasetProcessesCmd)
	datasetCmd.AddCommand(datasetSummaryCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or markdown or csv or json or yaml or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for sqlite path or mysql/postgresql DSN")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of ingestCmd to Viper
	ingestCmd.Flags().String("sort-by", "", "Sort rows by this column before storing")
	ingestCmd.Flags().String("sheet", "", "Worksheet to read from an xlsx file (default: first sheet)")
	if err := viper.BindPFlags(ingestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ingest flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Bool("per-worker", false, "Average speed per worker and process")
	reportCmd.Flags().Bool("per-process", false, "Average speed per process")
	reportCmd.Flags().Bool("deviation", false, "Each worker's difference from the process average")
	reportCmd.Flags().Bool("stddev", false, "Sample standard deviation per process")
	reportCmd.Flags().Bool("best", false, "Fastest workers by average, overall and per process")
	reportCmd.Flags().Bool("worst", false, "Slowest workers by average per process")
	reportCmd.Flags().Bool("all-time", false, "Every measurement per process, fastest first")
	reportCmd.Flags().Bool("counts", false, "Number of measurements per worker and process")
	reportCmd.Flags().Bool("all", false, "Enable every section")
	reportCmd.Flags().Bool("roster-only", false, "Restrict the report to workers on the roster")
	reportCmd.Flags().String("title", "", "Report title")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Roster import flags are read directly by the command
	rosterSetCmd.Flags().String("file", "", "Read names from a spreadsheet instead of arguments")
	rosterSetCmd.Flags().String("column", schema.DefaultWorkerColumn, "Column holding names when using --file")
	rosterSetCmd.Flags().String("sheet", "", "Worksheet to read when using --file with an xlsx file")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
