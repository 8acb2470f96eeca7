package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/ingest"
	"github.com/huangsam/speedreport/schema"
	"go.uber.org/zap"
)

// IngestFile reads a spreadsheet, replaces the production table with its rows and
// appends an entry to the ingestion log. Read errors leave the store untouched.
func IngestFile(ctx context.Context, store contract.RecordStore, path string, opts ingest.Options) (schema.IngestionRun, error) {
	res, err := ingest.ReadFile(path, opts)
	if err != nil {
		return schema.IngestionRun{}, err
	}
	contract.LogDebug("read input file", zap.String("path", path), zap.String("sheet", res.Sheet), zap.Int("rows", len(res.Table.Rows)))

	if err := store.ReplaceTable(ctx, res.Table); err != nil {
		return schema.IngestionRun{}, err
	}

	run := schema.IngestionRun{
		RunID:      uuid.NewString(),
		SourceFile: filepath.Base(path),
		Sheet:      res.Sheet,
		TableName:  string(res.Table.Name),
		RowCount:   len(res.Table.Rows),
		IngestedAt: now().UTC(),
	}
	if err := store.RecordIngestion(ctx, run); err != nil {
		return run, fmt.Errorf("table replaced but ingestion log failed: %w", err)
	}
	return run, nil
}

// ImportRoster replaces the roster with the names found in one column of a file.
func ImportRoster(ctx context.Context, store contract.RecordStore, path, sheet, column string) (int, error) {
	names, err := ingest.ReadNames(path, sheet, column)
	if err != nil {
		return 0, err
	}
	return SetRoster(ctx, store, names)
}
