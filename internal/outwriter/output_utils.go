package outwriter

import (
	"math"
	"strconv"
	"time"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// document is the structured form of a report for JSON and YAML.
// Floats are rounded to the configured precision and NaN becomes the string "NaN".
type document struct {
	Title       string            `json:"title" yaml:"title"`
	GeneratedAt *time.Time        `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Sections    []documentSection `json:"sections" yaml:"sections"`
}

type documentSection struct {
	Label   string   `json:"label" yaml:"label"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

func toDocument(report schema.Report, precision int) document {
	doc := document{Title: report.Title, Sections: make([]documentSection, 0, len(report.Sections))}
	if !report.GeneratedAt.IsZero() {
		at := report.GeneratedAt
		doc.GeneratedAt = &at
	}
	for _, s := range report.Sections {
		ds := documentSection{Label: s.Label, Columns: s.Columns, Rows: make([][]any, 0, len(s.Rows))}
		for _, row := range s.Rows {
			out := make([]any, len(row))
			for i, v := range row {
				out[i] = structuredCell(v, precision)
			}
			ds.Rows = append(ds.Rows, out)
		}
		doc.Sections = append(doc.Sections, ds)
	}
	return doc
}

// structuredCell keeps numbers numeric for JSON/YAML consumers.
func structuredCell(v any, precision int) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return contract.FormatFloat(f, precision)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', precision, 64), 64)
	if err != nil {
		return f
	}
	return rounded
}

// formatRows coerces every cell of a section into display strings.
func formatRows(section schema.Section, precision int) [][]string {
	rows := make([][]string, 0, len(section.Rows))
	for _, row := range section.Rows {
		out := make([]string, len(row))
		for i, v := range row {
			out[i] = contract.FormatCell(v, precision)
		}
		rows = append(rows, out)
	}
	return rows
}
