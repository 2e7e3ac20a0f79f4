package cmd

import (
	"fmt"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// migrateTargetVersion is the target schema version for 'store migrate'.
var migrateTargetVersion int

// storeCmd focused on datastore management.
//
// Note: migrate and clear use minimal initialization (storeConfigSetup)
// instead of the full sharedSetup used by data commands. Opening the store
// runs migrations, which would defeat the point of targeting a version.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the ranking datastore",
	Long: `Manage the datastore that holds entities, votes, scores and snapshots.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show connection info and row counts
  migrate - Apply or roll back schema migrations
  clear   - Remove all stored data

Examples:
  # Check datastore health
  goatrank store status

  # Reset a local SQLite datastore
  goatrank store clear`,
}

// storeStatusCmd shows datastore diagnostics.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display datastore statistics and connection details",
	Long: `Show detailed information about the ranking datastore.

Displays:
- Backend type and connection status
- Row counts for entities, raw scores, votes and snapshots
- When scoring last ran

Examples:
  # Check the default SQLite datastore
  goatrank store status

  # Check a PostgreSQL datastore
  GOATRANK_STORE_BACKEND=postgresql GOATRANK_STORE_DB_CONNECT="..." goatrank store status`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := goatstore.GetStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot get store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStatus(&status, cfg); err != nil {
			contract.LogFatal("Cannot write store status", err)
		}
	},
}

// storeMigrateCmd applies or rolls back schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back datastore schema migrations",
	Long: `Migrate the datastore schema to a target version.

By default migrates up to the latest version. Pass --target-version to
pin a specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  goatrank store migrate

  # Roll back to the initial state
  goatrank store migrate --target-version 0`,
	PreRunE: storeConfigSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := goatstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, migrateTargetVersion); err != nil {
			contract.LogFatal("Cannot migrate store", err)
		}
		fmt.Println("Store migration completed successfully.")
	},
}

// storeClearCmd removes all stored data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored ranking data",
	Long: `Delete all data from the configured datastore backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls every migration back

Examples:
  # Clear the default SQLite datastore
  goatrank store clear

  # Clear a MySQL datastore (connection string via env variable)
  GOATRANK_STORE_BACKEND=mysql GOATRANK_STORE_DB_CONNECT="..." goatrank store clear`,
	PreRunE: storeConfigSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := goatstore.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Cannot clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}
