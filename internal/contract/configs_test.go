package contract

import (
	"testing"

	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to tweak.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:    "text",
		Precision: 2,
		DBBackend: string(schema.SQLiteBackend),
		Color:     "yes",
		LogLevel:  "warn",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "markdown output", mutate: func(in *ConfigRawInput) { in.Output = "Markdown" }},
		{name: "invalid output format", mutate: func(in *ConfigRawInput) { in.Output = "docx" }, expectError: true},
		{name: "negative precision", mutate: func(in *ConfigRawInput) { in.Precision = -1 }, expectError: true},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }, expectError: true},
		{name: "zero precision", mutate: func(in *ConfigRawInput) { in.Precision = 0 }},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "trace" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.DBBackend = "oracle" }, expectError: true},
		{name: "mysql without connection string", mutate: func(in *ConfigRawInput) { in.DBBackend = "mysql" }, expectError: true},
		{name: "postgresql without connection string", mutate: func(in *ConfigRawInput) { in.DBBackend = "postgresql" }, expectError: true},
		{
			name: "mysql with connection string",
			mutate: func(in *ConfigRawInput) {
				in.DBBackend = "mysql"
				in.DBConnect = "user:pass@tcp(localhost:3306)/speedreport"
			},
		},
		{name: "none backend", mutate: func(in *ConfigRawInput) { in.DBBackend = "none" }},
		{
			name: "duplicate column mapping",
			mutate: func(in *ConfigRawInput) {
				in.Columns.Worker = "Sirovina"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err, "ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "ProcessAndValidate should not return an error for %s", tt.name)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.LogLevel = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.ReportTitle, cfg.Title)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.ColumnMapping{
		Worker:  "Ime",
		Process: "Sirovina",
		Speed:   "Brzina",
		Date:    "Datum",
	}, cfg.Columns)
	assert.False(t, cfg.Request.Any(), "no section flags means an empty request")
}

func TestProcessAndValidateXLSXDefaultFile(t *testing.T) {
	input := validInput()
	input.Output = "xlsx"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, DefaultXLSXFile, cfg.OutputFile)

	input.OutputFile = "out.xlsx"
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "out.xlsx", cfg.OutputFile)
}

func TestProcessAndValidateReportRequest(t *testing.T) {
	t.Run("individual flags", func(t *testing.T) {
		input := validInput()
		input.PerProcess = true
		input.Worst = true
		input.RosterOnly = true

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.ReportRequest{PerProcess: true, Worst: true, RosterOnly: true}, cfg.Request)
	})

	t.Run("all flag", func(t *testing.T) {
		input := validInput()
		input.All = true

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.AllSections(), cfg.Request)
	})
}

func TestProcessAndValidateCustomColumns(t *testing.T) {
	input := validInput()
	input.Columns = ColumnsRawInput{Worker: " Name ", Process: "Material", Speed: "Speed"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "Name", cfg.Columns.Worker)
	assert.Equal(t, "Material", cfg.Columns.Process)
	assert.Equal(t, "Speed", cfg.Columns.Speed)
	assert.Equal(t, schema.DefaultDateColumn, cfg.Columns.Date)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/db", false},
		{schema.MySQLBackend, "user:pass@localhost/db", true},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{schema.PostgreSQLBackend, "host=localhost dbname=db", false},
		{schema.PostgreSQLBackend, "dbname=db", true},
		{schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.connStr, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
