// Package schema has models, enums and labels for all parts of speedreport.
package schema

import "time"

// Record is one production measurement: a worker performing a process at some speed.
type Record struct {
	Date    time.Time `json:"date,omitzero" yaml:"date,omitempty"` // Zero when the source has no date
	Worker  string    `json:"worker" yaml:"worker"`                // Worker name (Ime)
	Process string    `json:"process" yaml:"process"`              // Process or raw material (Sirovina)
	Speed   float64   `json:"speed" yaml:"speed"`                  // Measured speed (Brzina)
}

// Dataset is the full collection of records in store scan order.
type Dataset struct {
	Records []Record
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// IsEmpty reports whether the dataset has no records.
func (d Dataset) IsEmpty() bool {
	return len(d.Records) == 0
}

// Column describes one column of a stored table.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is a generic named table as persisted by the record store.
// Cell values are string, float64 or nil.
type Table struct {
	Name    TableName
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnMapping names the source columns that carry each record field.
type ColumnMapping struct {
	Worker  string
	Process string
	Speed   string
	Date    string // Optional
}

// DefaultColumns returns the mapping for the standard Ime, Sirovina, Brzina, Datum layout.
func DefaultColumns() ColumnMapping {
	return ColumnMapping{
		Worker:  DefaultWorkerColumn,
		Process: DefaultProcessColumn,
		Speed:   DefaultSpeedColumn,
		Date:    DefaultDateColumn,
	}
}

// Required returns the columns that must exist for a table to hold records.
func (m ColumnMapping) Required() []string {
	return []string{m.Worker, m.Process, m.Speed}
}

// IngestionRun is one entry of the ingestion log.
type IngestionRun struct {
	RunID      string    `json:"run_id"`
	SourceFile string    `json:"source_file"`
	Sheet      string    `json:"sheet"`
	TableName  string    `json:"table_name"`
	RowCount   int       `json:"row_count"`
	IngestedAt time.Time `json:"ingested_at"`
}
