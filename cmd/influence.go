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

// influenceModelID optionally selects the influence weighting model.
var influenceModelID string

// influenceCmd computes an entity's influence score.
var influenceCmd = &cobra.Command{
	Use:   "influence <entity-id>",
	Short: "Compute an entity's influence score from recorded evidence.",
	Long: `Compute the influence score for an entity from its influence events.

The score is composed of four dimensions:
- Breadth: how many distinct sources mention the entity
- Depth: the weighted volume of coverage
- Longevity: how many years the coverage spans
- Peer recognition: mentions by fellow practitioners

A confidence value reflects source credibility and evidence volume. The
persisted score can feed into the scoring pipeline as the influence overlay.

Examples:
  # Score an entity with the default equal dimension weights
  goatrank influence <entity-id>

  # Use a custom influence model and JSON output
  goatrank influence <entity-id> --model <model-id> --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		entityID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid entity ID", err)
		}
		modelID, err := parseOptionalModelFlag(influenceModelID)
		if err != nil {
			contract.LogFatal("Invalid model ID", err)
		}

		store := goatstore.GetStore()

		entity, err := store.GetEntity(rootCtx, entityID)
		if err != nil {
			contract.LogFatal("Cannot load entity", err)
		}
		if entity == nil {
			contract.LogFatal("Cannot load entity", errors.New("entity not found"))
		}

		score, err := core.CalculateInfluenceScore(rootCtx, store, entityID, modelID)
		if err != nil {
			contract.LogFatal("Cannot calculate influence score", err)
		}

		if err := outwriter.NewOutWriter().WriteInfluence(score, entity.Name, cfg); err != nil {
			contract.LogFatal("Cannot write influence score", err)
		}
	},
}
