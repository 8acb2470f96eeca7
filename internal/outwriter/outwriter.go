// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"strings"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"golang.org/x/term"
)

// WriteReport outputs the report to the configured file or stdout.
func WriteReport(report schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return RenderReport(w, report, cfg)
	}, successMessage(cfg.Output))
}

// RenderReport writes the report to w, dispatching based on the output format configured.
func RenderReport(w io.Writer, report schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, toDocument(report, cfg.Precision))
	case schema.YAMLOut:
		return writeYAML(w, toDocument(report, cfg.Precision))
	case schema.CSVOut:
		return writeReportCSV(w, report, cfg.Precision)
	case schema.MarkdownOut:
		return writeReportMarkdown(w, report, cfg.Precision)
	case schema.XLSXOut:
		return writeReportXLSX(w, report, cfg.Precision)
	default:
		// Default to human-readable tables
		return writeReportText(w, report, cfg.Precision, colorsEnabled(cfg, w))
	}
}

func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.YAMLOut:
		return "Wrote YAML"
	case schema.CSVOut:
		return "Wrote CSV"
	case schema.MarkdownOut:
		return "Wrote Markdown"
	case schema.XLSXOut:
		return "Wrote workbook"
	default:
		return "Wrote report"
	}
}

// WriteSummary outputs the dataset summary. Structured formats keep field names;
// tabular formats render it as a two-column section.
func WriteSummary(summary schema.DatasetSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, summary) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, summary) }, "Wrote YAML")
	}
	return WriteReport(schema.Report{Title: summaryTitle, Sections: []schema.Section{summarySection(summary)}}, cfg)
}

// WriteNames outputs a list of names, e.g. the roster or distinct workers.
func WriteNames(label, header string, names []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, nonNil(names)) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, nonNil(names)) }, "Wrote YAML")
	}
	section := schema.Section{Label: label, Columns: []string{header}, Rows: make([][]any, 0, len(names))}
	for _, n := range names {
		section.Rows = append(section.Rows, []any{n})
	}
	return WriteReport(schema.Report{Title: label, Sections: []schema.Section{section}}, cfg)
}

// colorsEnabled reports whether ANSI colors should be used for w.
func colorsEnabled(cfg *contract.Config, w io.Writer) bool {
	if !cfg.UseColors {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

const summaryTitle = "Sažetak podataka"

func summarySection(s schema.DatasetSummary) schema.Section {
	return schema.Section{
		Label:   summaryTitle,
		Columns: []string{"Stavka", "Vrijednost"},
		Rows: [][]any{
			{"Broj mjerenja", s.Records},
			{"Broj radnika", len(s.Workers)},
			{"Broj procesa", len(s.Processes)},
			{"Najmanja brzina", s.MinSpeed},
			{"Najveća brzina", s.MaxSpeed},
			{"Prosječna brzina", s.MeanSpeed},
			{"Procesi", strings.Join(s.Processes, ", ")},
		},
	}
}
