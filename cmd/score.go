package cmd

import (
	"fmt"
	"time"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/core/algo"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/outwriter"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// scoreModelID optionally pins scoring to a specific model.
var scoreModelID string

// scoreCmd runs the full scoring pipeline for a category.
var scoreCmd = &cobra.Command{
	Use:   "score <category-id>",
	Short: "Run the scoring pipeline and rank entities in a category.",
	Long: `Run the full scoring pipeline for every entity in a category.

For each entity the pipeline:
- Resolves the latest raw value per scoring component
- Normalizes values with the component's normalization strategy
- Applies era adjustment when raw scores are tagged with an era
- Caps and renormalizes subjective component weights
- Blends in expert consensus, fan sentiment and influence overlays

Resulting scores are persisted and printed in ranked order.

Examples:
  # Score a category with its active model
  goatrank score 4e6f6f6e-0000-0000-0000-000000000001

  # Score with a specific model and show component contributions
  goatrank score 4e6f6f6e-0000-0000-0000-000000000001 --model <model-id> --explain

  # Export the ranking to parquet
  goatrank score <category-id> --output parquet --output-file rankings.parquet

  # Tolerate entities with missing raw values
  goatrank score <category-id> --failure-mode best_effort`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		categoryID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid category ID", err)
		}
		modelID, err := parseOptionalModelFlag(scoreModelID)
		if err != nil {
			contract.LogFatal("Invalid model ID", err)
		}

		start := time.Now()
		scores, err := core.RunScoring(rootCtx, goatstore.GetStore(), cfg, categoryID, modelID)
		if err != nil {
			contract.LogFatal("Cannot run scoring", err)
		}
		ranked := algo.RankScores(scores, cfg.ResultLimit)

		if err := outwriter.NewOutWriter().WriteRankings(ranked, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write ranking results", err)
		}
	},
}

// parseOptionalModelFlag turns an optional --model flag value into a UUID pointer.
func parseOptionalModelFlag(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid UUID: %w", raw, err)
	}
	return &id, nil
}
