package recordstore

import (
	"context"
	"fmt"
	"io"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"github.com/jackc/pgx/v5"
)

// GetStatus returns status information about the record store.
func (s *SQLStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Target:    describeTarget(s.backend, s.connStr),
		Connected: s.db != nil,
	}
	if s.db == nil {
		return status, nil
	}

	c, err := s.conn(ctx, "status", "")
	if err != nil {
		return status, err
	}
	defer func() { _ = c.Close() }()

	for _, name := range schema.AllTables {
		ts := schema.TableStatus{Name: string(name)}
		exists, err := s.tableExists(ctx, c, name)
		if err != nil {
			return status, fmt.Errorf("failed to inspect table %s: %w", name, err)
		}
		ts.Exists = exists
		if exists {
			query := "SELECT COUNT(*) FROM " + quoteIdent(string(name), s.backend)
			if err := c.QueryRowContext(ctx, query).Scan(&ts.RowCount); err != nil {
				return status, fmt.Errorf("failed to count rows of %s: %w", name, err)
			}
		}
		status.Tables = append(status.Tables, ts)
	}

	status.TotalRuns, err = s.countIngestions(ctx, c)
	if err != nil {
		return status, fmt.Errorf("failed to count ingestion runs: %w", err)
	}
	last, ok, err := s.lastIngestion(ctx, c)
	if err != nil {
		return status, err
	}
	if ok {
		status.LastRunID = last.RunID
		status.LastRunTime = last.IngestedAt
		status.LastRunSource = last.SourceFile
	}
	return status, nil
}

// describeTarget names the database without exposing credentials.
func describeTarget(backend schema.DatabaseBackend, connStr string) string {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			return contract.GetDBFilePath()
		}
		return connStr
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return "unknown"
		}
		return fmt.Sprintf("%s/%s", cfg.Addr, cfg.DBName)
	case schema.PostgreSQLBackend:
		cfg, err := pgx.ParseConfig(connStr)
		if err != nil {
			return "unknown"
		}
		return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	default:
		return ""
	}
}

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	if status.Target != "" {
		_, _ = fmt.Fprintf(w, "Target: %s\n", status.Target)
	}
	connected := contract.BadColor.Sprint("false")
	if status.Connected {
		connected = contract.OKColor.Sprint("true")
	}
	_, _ = fmt.Fprintf(w, "Connected: %s\n", connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintln(w, "Tables:")
	for _, t := range status.Tables {
		if t.Exists {
			_, _ = fmt.Fprintf(w, "  %s: %d rows\n", t.Name, t.RowCount)
		} else {
			_, _ = fmt.Fprintf(w, "  %s: missing\n", t.Name)
		}
	}
	_, _ = fmt.Fprintf(w, "Total Ingestions: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Ingestion ID: %s\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Ingestion: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Last Source: %s\n", status.LastRunSource)
	}
}
