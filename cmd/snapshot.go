package cmd

import (
	"errors"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/outwriter"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// snapshotLabel is the optional label for 'snapshot create'.
	snapshotLabel string

	// snapshotModelID optionally pins 'snapshot create' to a model.
	snapshotModelID string
)

// snapshotCmd groups ranking snapshot operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture and inspect frozen rankings",
	Long: `Capture point-in-time rankings and inspect them later.

A snapshot freezes the current final scores of a category so the ranking
can be referenced even after scores are recomputed. Snapshots are
immutable once created.

Subcommands:
  create - Freeze the current ranking of a category
  show   - Display a previously captured snapshot

Examples:
  goatrank snapshot create <category-id> --label "end of season"
  goatrank snapshot show <snapshot-id>`,
}

// snapshotCreateCmd freezes the current ranking.
var snapshotCreateCmd = &cobra.Command{
	Use:   "create <category-id>",
	Short: "Freeze the current ranking of a category.",
	Long: `Create an immutable snapshot of a category's current final scores.

The category must have been scored at least once; a snapshot of an
unscored category is rejected.

Examples:
  # Label a snapshot for later reference
  goatrank snapshot create <category-id> --label "2026 playoffs"

  # Snapshot a specific model's ranking
  goatrank snapshot create <category-id> --model <model-id>`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		categoryID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid category ID", err)
		}
		modelID, err := parseOptionalModelFlag(snapshotModelID)
		if err != nil {
			contract.LogFatal("Invalid model ID", err)
		}

		snap, err := core.CreateSnapshot(rootCtx, goatstore.GetStore(), categoryID, modelID, snapshotLabel)
		if err != nil {
			contract.LogFatal("Cannot create snapshot", err)
		}

		if err := outwriter.NewOutWriter().WriteSnapshot(snap, cfg); err != nil {
			contract.LogFatal("Cannot write snapshot", err)
		}
	},
}

// snapshotShowCmd displays a stored snapshot.
var snapshotShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Display a previously captured snapshot.",
	Long: `Display the frozen ranking held by a snapshot.

Examples:
  # Inspect a snapshot as a table
  goatrank snapshot show <snapshot-id>

  # Export a snapshot to parquet
  goatrank snapshot show <snapshot-id> --output parquet --output-file snap.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		snapshotID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid snapshot ID", err)
		}

		snap, err := goatstore.GetStore().GetSnapshot(rootCtx, snapshotID)
		if err != nil {
			contract.LogFatal("Cannot load snapshot", err)
		}
		if snap == nil {
			contract.LogFatal("Cannot load snapshot", errors.New("snapshot not found"))
		}

		if err := outwriter.NewOutWriter().WriteSnapshot(snap, cfg); err != nil {
			contract.LogFatal("Cannot write snapshot", err)
		}
	},
}
