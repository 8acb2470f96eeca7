// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/speedreport/schema"
)

// RecordStore defines durable storage for named tables.
// This allows the report logic to be tested without a real database.
type RecordStore interface {
	// --- Tables ---

	// ReplaceTable drops, recreates and fills a table in one transaction.
	// Either the whole table becomes visible or the previous contents remain.
	ReplaceTable(ctx context.Context, table schema.Table) error

	// ReadTable returns every row of a table in scan order.
	// A missing table yields a StorageError wrapping ErrTableNotFound.
	ReadTable(ctx context.Context, name schema.TableName) (schema.Table, error)

	// ColumnNames returns the ordered column names of a table.
	ColumnNames(ctx context.Context, name schema.TableName) ([]string, error)

	// --- Ingestion log ---

	// RecordIngestion appends an entry to the ingestion log.
	RecordIngestion(ctx context.Context, run schema.IngestionRun) error

	// LastIngestion returns the most recent ingestion, or ok=false when there is none.
	LastIngestion(ctx context.Context) (run schema.IngestionRun, ok bool, err error)

	// --- Lifecycle ---

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection pool.
	Close() error
}

// StoreManager hands out the configured record store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}
