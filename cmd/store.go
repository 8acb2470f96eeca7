package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/speedreport/core"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/recordstore"
	"github.com/huangsam/speedreport/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConnSetup resolves the backend and connection string without opening the store.
// Used by clear and migrate, which must work on a missing or outdated database.
func storeConnSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("db-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr
	return nil
}

// storeConnSetupWrapper wraps storeConnSetup to provide PreRunE for store commands.
func storeConnSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeConnSetup()
}

// storeCmd focused on record store management.
//
// Note: clear and migrate use minimal initialization (storeConnSetup) instead of
// the full sharedSetup, which would migrate and open the database first.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the record store",
	Long: `Manage the database holding the production table, the roster and the ingestion log.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is kept)

Subcommands:
  status  - Show tables, row counts and the last ingestion
  export  - Export the production table to Parquet
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check what is stored
  speedreport store status

  # Export for analysis in pandas/DuckDB
  speedreport store export --output-file brzine.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store tables and connection details",
	Long: `Show the backend, its target, every registered table with its row count and the
most recent ingestion.

Examples:
  speedreport store status
  speedreport store status --db-backend postgresql --db-connect "host=localhost dbname=brzine"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := recordStore().GetStatus(rootCtx)
		if err != nil {
			return fmt.Errorf("failed to get store status: %w", err)
		}
		recordstore.PrintStoreStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

// storeClearCmd clears all stored data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored data",
	Long: `Delete the production table, the roster and the ingestion log.

For SQLite the database file is removed. For MySQL and PostgreSQL the
registered tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  speedreport store export --output-file backup.parquet
  speedreport store clear`,
	Args:    cobra.NoArgs,
	PreRunE: storeConnSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := recordstore.ClearStore(cfg.Backend, cfg.DBConnect); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		cmd.Println("Store cleared successfully.")
		return nil
	},
}

// storeMigrateCmd runs database migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Apply or roll back the embedded schema migrations of the ingestion log.

Other commands migrate to the latest version automatically. Use this command
to inspect the outcome or to roll back.

Examples:
  # Migrate to latest
  speedreport store migrate

  # Roll back everything
  speedreport store migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: storeConnSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		target := viper.GetInt("target-version")
		result, err := recordstore.Migrate(cfg.Backend, cfg.DBConnect, target)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		cmd.Println(result.String())
		return nil
	},
}

// storeExportCmd exports the production table to a Parquet file.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored measurements to Parquet",
	Long: `Write the production table as a Parquet file with columns date, worker,
process and speed.

The output file must be given with --output-file and end in .parquet.

Examples:
  speedreport store export --output-file brzine.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output-file is required for export")
		}
		if filepath.Ext(cfg.OutputFile) != ".parquet" {
			return fmt.Errorf("export file must end in .parquet (received %s)", cfg.OutputFile)
		}
		count, err := core.ExportDataset(rootCtx, recordStore(), cfg.Columns, cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to export dataset: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Exported %d records to %s\n", count, cfg.OutputFile)
		return nil
	},
}
