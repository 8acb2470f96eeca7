package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string

	// ColumnType represents the storage type of a table column.
	ColumnType string

	// TableName is a registered table identifier. Only registered names reach SQL.
	TableName string
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	MarkdownOut OutputMode = "markdown"
	CSVOut      OutputMode = "csv"
	JSONOut     OutputMode = "json"
	YAMLOut     OutputMode = "yaml"
	XLSXOut     OutputMode = "xlsx"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Column types understood by the record store.
const (
	TextColumn ColumnType = "text"
	RealColumn ColumnType = "real"
)

// Registered tables.
const (
	ProductionTable    TableName = "brzina_radnika"
	RosterTable        TableName = "odabrani_radnici"
	IngestionRunsTable TableName = "ingestion_runs"
)

// Default source column names.
const (
	DefaultWorkerColumn  = "Ime"
	DefaultProcessColumn = "Sirovina"
	DefaultSpeedColumn   = "Brzina"
	DefaultDateColumn    = "Datum"
)

// Report labels. Per-process sections append a suffix to the process name.
const (
	ReportTitle = "Izvještaj prosjeka čišćenja"

	LabelPerWorker   = "Prosjek po osobi"
	LabelPerProcess  = "Prosjek po procesu"
	LabelDeviation   = "Odstupanje radnika od prosjeka"
	LabelStdDev      = "Standardna devijacija po procesu"
	LabelBestAverage = "Prosječna brzina svakog radnika"
	LabelCounts      = "Broj mjerenja po procesu"

	LabelWorkers   = "Radnici"
	LabelProcesses = "Procesi"
	LabelRoster    = "Odabrani radnici"

	SuffixFastest = " - najbrži"
	SuffixSlowest = " - najsporiji"
	SuffixAllTime = " - svi rezultati"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	MarkdownOut: {},
	CSVOut:      {},
	JSONOut:     {},
	YAMLOut:     {},
	XLSXOut:     {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ReplaceableTables lists the tables that ingestion may overwrite.
var ReplaceableTables = map[TableName]struct{}{
	ProductionTable: {},
	RosterTable:     {},
}

// AllTables lists every registered table in display order.
var AllTables = []TableName{ProductionTable, RosterTable, IngestionRunsTable}

// Column headings of computed sections. Record fields use the configured source column names.
const (
	HeaderAverage        = "Prosjek"
	HeaderStdDev         = "Standardna devijacija"
	HeaderProcessAverage = "Prosjek procesa"
	HeaderWorkerSpeed    = "Brzina radnika"
	HeaderDiff           = "Razlika"
	HeaderDiffPct        = "Razlika (%)"
	HeaderCount          = "Broj mjerenja"
)

// DateLayout is how record dates are rendered in reports and stored as text.
const DateLayout = "2006-01-02"
