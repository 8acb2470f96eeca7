// Package core has core logic for ingestion, aggregation and report assembly.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/speedreport/core/agg"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/ingest"
	"github.com/huangsam/speedreport/internal/outwriter"
	"github.com/huangsam/speedreport/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for commands that read the record store
// and print a result.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error

// ExecuteReport builds the requested report and writes it in the configured format.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	start := time.Now()
	if !cfg.Request.Any() {
		contract.LogWarn("no report sections selected", nil)
	}
	report, err := GenerateReport(ctx, store, cfg.Request, cfg.Columns)
	if contract.IsTableNotFound(err) {
		return fmt.Errorf("nothing stored yet, run 'ingest' or 'roster set' first: %w", err)
	}
	if err != nil {
		return err
	}
	if cfg.Title != "" {
		report.Title = cfg.Title
	}
	contract.LogInfo("report assembled",
		zap.Int("sections", len(report.Sections)),
		zap.Duration("duration", time.Since(start)))
	return outwriter.WriteReport(report, cfg)
}

// ExecuteIngest loads one spreadsheet into the production table.
func ExecuteIngest(ctx context.Context, cfg *contract.Config, store contract.RecordStore, path string) error {
	run, err := IngestFile(ctx, store, path, ingest.Options{
		Sheet:   cfg.Sheet,
		SortBy:  cfg.SortBy,
		Columns: cfg.Columns,
	})
	if err != nil {
		return err
	}
	contract.LogInfo("ingestion finished", zap.String("run_id", run.RunID), zap.Int("rows", run.RowCount))
	return outwriter.WriteIngestion(run, cfg)
}

// ExecuteSummary prints a compact description of the stored dataset.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	summary, err := Summary(ctx, store, cfg.Columns)
	if err != nil {
		return err
	}
	return outwriter.WriteSummary(summary, cfg)
}

// ExecuteWorkers lists the distinct workers of the dataset in first-appearance order.
func ExecuteWorkers(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	ds, err := LoadDataset(ctx, store, cfg.Columns)
	if err != nil {
		return err
	}
	return outwriter.WriteNames(schema.LabelWorkers, cfg.Columns.Worker, agg.UniqueWorkers(ds), cfg)
}

// ExecuteProcesses lists the distinct processes of the dataset in first-appearance order.
func ExecuteProcesses(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	ds, err := LoadDataset(ctx, store, cfg.Columns)
	if err != nil {
		return err
	}
	return outwriter.WriteNames(schema.LabelProcesses, cfg.Columns.Process, agg.UniqueProcesses(ds), cfg)
}

// ExecuteRosterList prints the stored roster.
func ExecuteRosterList(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	names, err := ListRoster(ctx, store)
	if err != nil {
		return err
	}
	return outwriter.WriteNames(schema.LabelRoster, RosterColumn, names, cfg)
}
