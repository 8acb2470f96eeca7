package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// timeLayout keeps ingested_at lexically sortable on every backend.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// RecordIngestion appends an entry to the ingestion log.
func (s *SQLStore) RecordIngestion(ctx context.Context, run schema.IngestionRun) error {
	if s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conn(ctx, "log", schema.IngestionRunsTable)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	query := fmt.Sprintf(`INSERT INTO %s (run_id, source_file, sheet, table_name, row_count, ingested_at) VALUES (%s)`,
		quoteIdent(string(schema.IngestionRunsTable), s.backend), placeholders(s.backend, 6))
	_, err = c.ExecContext(ctx, query,
		run.RunID, run.SourceFile, run.Sheet, run.TableName, run.RowCount, formatTime(run.IngestedAt))
	if err != nil {
		return &contract.StorageError{Op: "log", Table: schema.IngestionRunsTable, Err: err}
	}
	return nil
}

// LastIngestion returns the most recent ingestion log entry.
func (s *SQLStore) LastIngestion(ctx context.Context) (schema.IngestionRun, bool, error) {
	var run schema.IngestionRun
	if s.db == nil {
		return run, false, nil
	}

	c, err := s.conn(ctx, "log", schema.IngestionRunsTable)
	if err != nil {
		return run, false, err
	}
	defer func() { _ = c.Close() }()

	return s.lastIngestion(ctx, c)
}

func (s *SQLStore) lastIngestion(ctx context.Context, c *sql.Conn) (schema.IngestionRun, bool, error) {
	var run schema.IngestionRun
	query := fmt.Sprintf(`SELECT run_id, source_file, sheet, table_name, row_count, ingested_at FROM %s ORDER BY ingested_at DESC LIMIT 1`,
		quoteIdent(string(schema.IngestionRunsTable), s.backend))

	var ingestedAt string
	err := c.QueryRowContext(ctx, query).Scan(&run.RunID, &run.SourceFile, &run.Sheet, &run.TableName, &run.RowCount, &ingestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, false, nil
	}
	if err != nil {
		return run, false, &contract.StorageError{Op: "log", Table: schema.IngestionRunsTable, Err: err}
	}

	run.IngestedAt, err = parseTime(ingestedAt)
	if err != nil {
		return run, false, &contract.StorageError{Op: "log", Table: schema.IngestionRunsTable, Err: err}
	}
	return run, true, nil
}

// countIngestions returns the number of ingestion log entries.
func (s *SQLStore) countIngestions(ctx context.Context, c *sql.Conn) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM " + quoteIdent(string(schema.IngestionRunsTable), s.backend)
	if err := c.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
