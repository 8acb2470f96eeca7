package recordstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// migrationsTable is created by golang-migrate to track the schema version.
const migrationsTable = "schema_migrations"

// StoreManager holds the configured record store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.RecordStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetRecordStore returns the configured RecordStore.
func (mgr *StoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global manager with a record store for the backend.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewRecordStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize record store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore removes all stored data for the backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the registered tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		tables := make([]string, 0, len(schema.AllTables)+1)
		for _, t := range schema.AllTables {
			tables = append(tables, string(t))
		}
		tables = append(tables, migrationsTable)
		return dropTables(db, backend, tables)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// dropTables drops each table if it exists.
func dropTables(db *sql.DB, backend schema.DatabaseBackend, tables []string) error {
	for _, table := range tables {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + quoteIdent(table, backend)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
