package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// paint applies c to s only when colors are enabled.
func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// writeReportText writes the heading and one table per section.
func writeReportText(w io.Writer, report schema.Report, precision int, useColors bool) error {
	if _, err := fmt.Fprintln(w, paint(contract.TitleColor, useColors, report.Heading())); err != nil {
		return err
	}
	for _, s := range report.Sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", paint(contract.HeadingColor, useColors, s.Label)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header(s.Columns)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		if err := table.Bulk(formatRows(s, precision)); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// writeReportMarkdown writes a level-one heading and a markdown table per section.
func writeReportMarkdown(w io.Writer, report schema.Report, precision int) error {
	if _, err := fmt.Fprintf(w, "# %s\n", report.Heading()); err != nil {
		return err
	}
	for _, s := range report.Sections {
		if _, err := fmt.Fprintf(w, "\n## %s\n\n", s.Label); err != nil {
			return err
		}
		table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewMarkdown()))
		table.Header(s.Columns)
		if err := table.Bulk(formatRows(s, precision)); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// writeReportCSV writes every section as a block: a label record, a header record and
// the rows, with an empty record between sections.
func writeReportCSV(w io.Writer, report schema.Report, precision int) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	for i, s := range report.Sections {
		if i > 0 {
			if err := csvWriter.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := csvWriter.Write([]string{s.Label}); err != nil {
			return fmt.Errorf("failed to write CSV section label: %w", err)
		}
		if err := csvWriter.Write(s.Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		if err := csvWriter.WriteAll(formatRows(s, precision)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
