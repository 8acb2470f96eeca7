package schema

import "time"

// TableStatus represents the state of one registered table.
type TableStatus struct {
	Name     string `json:"name"`
	Exists   bool   `json:"exists"`
	RowCount int    `json:"row_count"`
}

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend       string        `json:"backend"`
	Target        string        `json:"target"` // File path or database name, never credentials
	Connected     bool          `json:"connected"`
	Tables        []TableStatus `json:"tables"`
	TotalRuns     int           `json:"total_runs"`
	LastRunID     string        `json:"last_run_id"`
	LastRunTime   time.Time     `json:"last_run_time"`
	LastRunSource string        `json:"last_run_source"`
}

// DatasetSummary is a compact description of the stored dataset.
type DatasetSummary struct {
	Records   int      `json:"records"`
	Workers   []string `json:"workers"`
	Processes []string `json:"processes"`
	MinSpeed  float64  `json:"min_speed"`
	MaxSpeed  float64  `json:"max_speed"`
	MeanSpeed float64  `json:"mean_speed"`
}
