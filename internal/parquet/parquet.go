// Package parquet exports stored production records to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/speedreport/schema"
	"github.com/parquet-go/parquet-go"
)

// ProductionRecord is one row of the production table as written to Parquet.
type ProductionRecord struct {
	// Date is the measurement date (nullable, the source may have no date column)
	Date *time.Time `parquet:"date,optional,snappy"`

	// Worker is the worker name
	Worker string `parquet:"worker,snappy,dict"`

	// Process is the process or raw material
	Process string `parquet:"process,snappy,dict"`

	// Speed is the measured speed
	Speed float64 `parquet:"speed,snappy"`
}

// FromDataset converts records in scan order. Zero dates become nulls.
func FromDataset(ds schema.Dataset) []ProductionRecord {
	out := make([]ProductionRecord, 0, ds.Len())
	for _, r := range ds.Records {
		row := ProductionRecord{Worker: r.Worker, Process: r.Process, Speed: r.Speed}
		if !r.Date.IsZero() {
			d := r.Date
			row.Date = &d
		}
		out = append(out, row)
	}
	return out
}

// WriteRecordsParquet writes production records to a Parquet file.
func WriteRecordsParquet(data []ProductionRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is derived from the struct tags
	writer := parquet.NewGenericWriter[ProductionRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
