package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// WriteIngestion reports the outcome of an ingestion run.
func WriteIngestion(run schema.IngestionRun, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, run) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, run) }, "Wrote YAML")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeIngestionText(w, run, colorsEnabled(cfg, w))
	}, "Wrote ingestion summary")
}

func writeIngestionText(w io.Writer, run schema.IngestionRun, useColors bool) error {
	source := run.SourceFile
	if run.Sheet != "" {
		source = fmt.Sprintf("%s [%s]", run.SourceFile, run.Sheet)
	}
	_, err := fmt.Fprintf(w, "%s %d rows from %s into %s (run %s)\n",
		paint(contract.OKColor, useColors, "Ingested"), run.RowCount, source, run.TableName, run.RunID)
	return err
}
