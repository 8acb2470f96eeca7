package schema

import "time"

// ProcessValue pairs a process with one computed value (average or deviation).
type ProcessValue struct {
	Process string  `json:"process"`
	Value   float64 `json:"value"`
}

// WorkerAverage is the average speed of one worker on one process.
type WorkerAverage struct {
	Worker  string  `json:"worker"`
	Process string  `json:"process"`
	Average float64 `json:"average"`
}

// ProcessWorkers groups worker averages under a process.
type ProcessWorkers struct {
	Process string          `json:"process"`
	Workers []WorkerAverage `json:"workers"`
}

// ProcessRecords groups raw records under a process.
type ProcessRecords struct {
	Process string   `json:"process"`
	Records []Record `json:"records"`
}

// Difference is a worker's deviation from the process average.
type Difference struct {
	Worker         string  `json:"worker"`
	Process        string  `json:"process"`
	ProcessAverage float64 `json:"process_avg"`
	WorkerSpeed    float64 `json:"worker_speed"`
	Diff           float64 `json:"diff"`
	DiffPct        float64 `json:"diff_pct"` // NaN when ProcessAverage is zero
}

// ProcessWorkerCount is the number of records a worker has on a process.
type ProcessWorkerCount struct {
	Process string `json:"process"`
	Worker  string `json:"worker"`
	Count   int    `json:"count"`
}

// ReportRequest selects which sections a report contains.
// The first six fields are rendered in declaration order.
type ReportRequest struct {
	PerWorker    bool `json:"per_worker"`
	PerProcess   bool `json:"per_process"`
	Deviation    bool `json:"deviation"`
	StdDev       bool `json:"stddev"`
	Best         bool `json:"best"`
	Worst        bool `json:"worst"`
	AllTimeBest  bool `json:"all_time_best"`
	RecordCounts bool `json:"record_counts"`
	RosterOnly   bool `json:"roster_only"`
}

// Any reports whether at least one section is selected.
func (r ReportRequest) Any() bool {
	return r.PerWorker || r.PerProcess || r.Deviation || r.StdDev ||
		r.Best || r.Worst || r.AllTimeBest || r.RecordCounts
}

// AllSections returns a request with every section selected.
func AllSections() ReportRequest {
	return ReportRequest{
		PerWorker:    true,
		PerProcess:   true,
		Deviation:    true,
		StdDev:       true,
		Best:         true,
		Worst:        true,
		AllTimeBest:  true,
		RecordCounts: true,
	}
}

// Section is one labeled table of a report.
type Section struct {
	Label   string   `json:"label" yaml:"label"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Report is an ordered list of sections. Slice order is display order.
type Report struct {
	Title       string    `json:"title" yaml:"title"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Sections    []Section `json:"sections" yaml:"sections"`
}

// Heading returns the document heading with the generation timestamp, if any.
func (r Report) Heading() string {
	if r.GeneratedAt.IsZero() {
		return r.Title
	}
	return r.Title + " " + r.GeneratedAt.Format("2006-01-02 15:04:05")
}
