package recordstore

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName validates that the table name is registered and a safe SQL identifier.
func validateTableName(name schema.TableName, allowed map[schema.TableName]struct{}) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(string(name)) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNamePattern)
	}
	if _, ok := allowed[name]; !ok {
		return fmt.Errorf("table %s is not registered", name)
	}
	return nil
}

// registeredTables is the lookup set for tables that may be read.
var registeredTables = func() map[schema.TableName]struct{} {
	m := make(map[schema.TableName]struct{}, len(schema.AllTables))
	for _, t := range schema.AllTables {
		m[t] = struct{}{}
	}
	return m
}()

// quoteIdent quotes a table or column identifier for the backend.
// Embedded quote characters are doubled.
func quoteIdent(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default: // SQLite and PostgreSQL
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// placeholder returns the n-th (1-based) parameter placeholder for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns n comma-separated placeholders.
func placeholders(backend schema.DatabaseBackend, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = placeholder(backend, i+1)
	}
	return strings.Join(parts, ", ")
}

// columnSQLType returns the DDL type for a column type on the backend.
func columnSQLType(t schema.ColumnType, backend schema.DatabaseBackend) string {
	if t == schema.RealColumn {
		switch backend {
		case schema.MySQLBackend:
			return "DOUBLE"
		case schema.PostgreSQLBackend:
			return "DOUBLE PRECISION"
		default:
			return "REAL"
		}
	}
	return "TEXT"
}

// parseColumnType maps a catalog type name back to a column type.
func parseColumnType(dbType string) schema.ColumnType {
	t := strings.ToLower(dbType)
	for _, numeric := range []string{"real", "double", "float", "numeric", "decimal"} {
		if strings.Contains(t, numeric) {
			return schema.RealColumn
		}
	}
	return schema.TextColumn
}

// driverName returns the database/sql driver for the backend.
func driverName(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// openDB opens and pings a connection pool for the backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open(driverName(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open(driverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=speedreport
		db, err = sql.Open(driverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}
