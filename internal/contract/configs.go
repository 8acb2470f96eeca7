package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/speedreport/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 6
	DefaultLogLevel  = "warn"
	DefaultXLSXFile  = "izvjestaj.xlsx"
)

// ValidLogLevels lists the accepted --log-level values.
var ValidLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Title      string

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	Columns schema.ColumnMapping
	SortBy  string
	Sheet   string

	Request schema.ReportRequest

	UseColors bool
	LogLevel  string
}

// Clone returns a copy of the config that can be changed per request.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ColumnsRawInput holds the source column names from the config file.
type ColumnsRawInput struct {
	Worker  string `mapstructure:"worker"`
	Process string `mapstructure:"process"`
	Speed   string `mapstructure:"speed"`
	Date    string `mapstructure:"date"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	DBBackend  string `mapstructure:"db-backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Color      string `mapstructure:"color"`
	LogLevel   string `mapstructure:"log-level"`

	// --- Fields from ingestCmd.Flags() ---
	SortBy string `mapstructure:"sort-by"`
	Sheet  string `mapstructure:"sheet"`

	// --- Fields from reportCmd.Flags() ---
	Title      string `mapstructure:"title"`
	PerWorker  bool   `mapstructure:"per-worker"`
	PerProcess bool   `mapstructure:"per-process"`
	Deviation  bool   `mapstructure:"deviation"`
	StdDev     bool   `mapstructure:"stddev"`
	Best       bool   `mapstructure:"best"`
	Worst      bool   `mapstructure:"worst"`
	AllTime    bool   `mapstructure:"all-time"`
	Counts     bool   `mapstructure:"counts"`
	All        bool   `mapstructure:"all"`
	RosterOnly bool   `mapstructure:"roster-only"`

	// --- Source columns from config file ---
	Columns ColumnsRawInput `mapstructure:"columns"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processColumns(cfg, input); err != nil {
		return err
	}
	processReportRequest(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.SortBy = strings.TrimSpace(input.SortBy)
	cfg.Sheet = strings.TrimSpace(input.Sheet)

	cfg.Title = strings.TrimSpace(input.Title)
	if cfg.Title == "" {
		cfg.Title = schema.ReportTitle
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, markdown, csv, json, yaml, xlsx", input.Output)
	}
	if cfg.Output == schema.XLSXOut && cfg.OutputFile == "" {
		cfg.OutputFile = DefaultXLSXFile
	}

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, ok := ValidLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	return nil
}

// validateBackendConfig validates the record store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect)
}

// processColumns fills the column mapping, falling back to the default names.
func processColumns(cfg *Config, input *ConfigRawInput) error {
	pick := func(v, def string) string {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
		return def
	}
	cfg.Columns = schema.ColumnMapping{
		Worker:  pick(input.Columns.Worker, schema.DefaultWorkerColumn),
		Process: pick(input.Columns.Process, schema.DefaultProcessColumn),
		Speed:   pick(input.Columns.Speed, schema.DefaultSpeedColumn),
		Date:    pick(input.Columns.Date, schema.DefaultDateColumn),
	}

	seen := make(map[string]struct{}, 3)
	for _, c := range cfg.Columns.Required() {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("column %q is mapped to more than one field", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// processReportRequest converts the section flags into a report request.
func processReportRequest(cfg *Config, input *ConfigRawInput) {
	if input.All {
		cfg.Request = schema.AllSections()
	} else {
		cfg.Request = schema.ReportRequest{
			PerWorker:    input.PerWorker,
			PerProcess:   input.PerProcess,
			Deviation:    input.Deviation,
			StdDev:       input.StdDev,
			Best:         input.Best,
			Worst:        input.Worst,
			AllTimeBest:  input.AllTime,
			RecordCounts: input.Counts,
		}
	}
	cfg.Request.RosterOnly = input.RosterOnly
}

// GetDBFilePath returns the path to the default SQLite DB file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".speedreport.db"
	}
	return filepath.Join(homeDir, ".speedreport.db")
}
