package goatstore

import (
	"fmt"
	"os"
	"sync"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
)

// Global store handle for main logic.
var (
	manager   struct{ store *SQLStore }
	managerMu sync.RWMutex
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global datastore. Safe to call from concurrent
// command paths; the connection opens exactly once.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize datastore: %w", err)
			return
		}
		managerMu.Lock()
		manager.store = store
		managerMu.Unlock()
	})
	return initErr
}

// GetStore returns the global datastore, or nil before InitStore succeeds.
func GetStore() contract.Store {
	managerMu.RLock()
	defer managerMu.RUnlock()
	if manager.store == nil {
		return nil
	}
	return manager.store
}

// GetSeeder returns the global datastore's seeding surface.
func GetSeeder() contract.Seeder {
	managerMu.RLock()
	defer managerMu.RUnlock()
	if manager.store == nil {
		return nil
	}
	return manager.store
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		managerMu.Lock()
		defer managerMu.Unlock()
		if manager.store != nil {
			_ = manager.store.Close()
		}
	})
}

// ClearStore removes all stored data for the backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it rolls every migration back.
func ClearStore(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return Migrate(backend, connStr, 0)

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}
