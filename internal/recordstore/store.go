// Package recordstore persists named tables and the ingestion log in a SQL database.
package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// SQLStore handles durable table storage using various database backends.
type SQLStore struct {
	mu      sync.Mutex // Serializes table-mutating operations
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.RecordStore = &SQLStore{} // Compile-time check

// NewRecordStore migrates the database and returns a store for the backend.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	if backend == schema.NoneBackend {
		// No-op store: reads find nothing, writes are discarded
		return &SQLStore{backend: backend, connStr: connStr}, nil
	}

	if _, err := Migrate(backend, connStr, -1); err != nil {
		return nil, fmt.Errorf("failed to migrate %s store: %w", backend, err)
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	return &SQLStore{db: db, backend: backend, connStr: connStr}, nil
}

// Backend returns the configured backend.
func (s *SQLStore) Backend() schema.DatabaseBackend {
	return s.backend
}

// conn acquires a scoped connection. Callers must Close it.
func (s *SQLStore) conn(ctx context.Context, op string, table schema.TableName) (*sql.Conn, error) {
	c, err := s.db.Conn(ctx)
	if err != nil {
		return nil, &contract.StorageError{Op: op, Table: table, Err: err}
	}
	return c, nil
}

// ReplaceTable drops, recreates and fills a table in a single transaction.
// MySQL commits DDL implicitly, so a failed insert there can leave an empty table behind.
func (s *SQLStore) ReplaceTable(ctx context.Context, table schema.Table) (err error) {
	if s.db == nil {
		return nil
	}
	if verr := validateTableName(table.Name, schema.ReplaceableTables); verr != nil {
		return &contract.StorageError{Op: "replace", Table: table.Name, Err: verr}
	}
	if len(table.Columns) == 0 {
		return &contract.StorageError{Op: "replace", Table: table.Name, Err: errors.New("table has no columns")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conn(ctx, "replace", table.Name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return &contract.StorageError{Op: "replace", Table: table.Name, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	wrap := func(e error) error {
		return &contract.StorageError{Op: "replace", Table: table.Name, Err: e}
	}

	quotedTable := quoteIdent(string(table.Name), s.backend)
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quotedTable); err != nil {
		return wrap(err)
	}
	if _, err = tx.ExecContext(ctx, s.createTableQuery(table)); err != nil {
		return wrap(err)
	}

	quotedCols := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		quotedCols[i] = quoteIdent(col.Name, s.backend)
	}
	insertQuery := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quotedTable, strings.Join(quotedCols, ", "), placeholders(s.backend, len(table.Columns)))

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return wrap(err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			err = fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), len(table.Columns))
			return wrap(err)
		}
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return wrap(fmt.Errorf("row %d: %w", i+1, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return wrap(err)
	}
	return nil
}

// createTableQuery returns the CREATE TABLE statement for a table.
func (s *SQLStore) createTableQuery(table schema.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		defs[i] = quoteIdent(col.Name, s.backend) + " " + columnSQLType(col.Type, s.backend)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(string(table.Name), s.backend), strings.Join(defs, ", "))
}

// ReadTable returns every row of a table in scan order.
func (s *SQLStore) ReadTable(ctx context.Context, name schema.TableName) (schema.Table, error) {
	table := schema.Table{Name: name}
	if s.db == nil {
		return table, &contract.StorageError{Op: "read", Table: name, Err: contract.ErrTableNotFound}
	}
	if err := validateTableName(name, registeredTables); err != nil {
		return table, &contract.StorageError{Op: "read", Table: name, Err: err}
	}

	c, err := s.conn(ctx, "read", name)
	if err != nil {
		return table, err
	}
	defer func() { _ = c.Close() }()

	cols, err := s.describeTable(ctx, c, name)
	if err != nil {
		return table, &contract.StorageError{Op: "read", Table: name, Err: err}
	}
	if len(cols) == 0 {
		return table, &contract.StorageError{Op: "read", Table: name, Err: contract.ErrTableNotFound}
	}
	table.Columns = cols

	quotedCols := make([]string, len(cols))
	for i, col := range cols {
		quotedCols[i] = quoteIdent(col.Name, s.backend)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quotedCols, ", "), quoteIdent(string(name), s.backend))

	rows, err := c.QueryContext(ctx, query)
	if err != nil {
		return table, &contract.StorageError{Op: "read", Table: name, Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		dest := make([]any, len(cols))
		for i, col := range cols {
			if col.Type == schema.RealColumn {
				dest[i] = new(sql.NullFloat64)
			} else {
				dest[i] = new(sql.NullString)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return table, &contract.StorageError{Op: "read", Table: name, Err: err}
		}
		table.Rows = append(table.Rows, toValues(dest))
	}
	if err := rows.Err(); err != nil {
		return table, &contract.StorageError{Op: "read", Table: name, Err: err}
	}
	return table, nil
}

// toValues unwraps scanned nullable holders into string, float64 or nil.
func toValues(dest []any) []any {
	row := make([]any, len(dest))
	for i, d := range dest {
		switch v := d.(type) {
		case *sql.NullFloat64:
			if v.Valid {
				row[i] = v.Float64
			}
		case *sql.NullString:
			if v.Valid {
				row[i] = v.String
			}
		}
	}
	return row
}

// ColumnNames returns the ordered column names of a table.
func (s *SQLStore) ColumnNames(ctx context.Context, name schema.TableName) ([]string, error) {
	if s.db == nil {
		return nil, &contract.StorageError{Op: "columns", Table: name, Err: contract.ErrTableNotFound}
	}
	if err := validateTableName(name, registeredTables); err != nil {
		return nil, &contract.StorageError{Op: "columns", Table: name, Err: err}
	}

	c, err := s.conn(ctx, "columns", name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	cols, err := s.describeTable(ctx, c, name)
	if err != nil {
		return nil, &contract.StorageError{Op: "columns", Table: name, Err: err}
	}
	if len(cols) == 0 {
		return nil, &contract.StorageError{Op: "columns", Table: name, Err: contract.ErrTableNotFound}
	}

	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names, nil
}

// describeTable introspects the catalog for the columns of a table.
// A missing table yields no columns and no error.
func (s *SQLStore) describeTable(ctx context.Context, c *sql.Conn, name schema.TableName) ([]schema.Column, error) {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `SELECT column_name, data_type FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position`
	case schema.PostgreSQLBackend:
		query = `SELECT column_name, data_type FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position`
	default: // SQLite
		query = `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`
	}

	rows, err := c.QueryContext(ctx, query, string(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []schema.Column
	for rows.Next() {
		var colName, colType string
		if err := rows.Scan(&colName, &colType); err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: colName, Type: parseColumnType(colType)})
	}
	return cols, rows.Err()
}

// tableExists reports whether the table is present in the catalog.
func (s *SQLStore) tableExists(ctx context.Context, c *sql.Conn, name schema.TableName) (bool, error) {
	cols, err := s.describeTable(ctx, c, name)
	if err != nil {
		return false, err
	}
	return len(cols) > 0, nil
}

// Close closes the underlying DB connection pool.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
