package cmd

import (
	"errors"
	"fmt"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// rawScoreInput collects the flag values for 'score submit'.
var rawScoreInput struct {
	entityID  string
	component string
	value     float64
	eraID     string
	source    string
}

// scoreSubmitCmd records a raw score observation.
var scoreSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Record a raw score observation for an entity.",
	Long: `Record one raw (entity, component, value) observation.

Observations are append-only; submitting again does not overwrite earlier
values. The scoring pipeline always consumes the latest observation per
(entity, component) pair. Tag the observation with an era to make it
participate in era adjustment.

Examples:
  # Record a career total
  goatrank score submit --entity <id> --component career-points --value 38387

  # Record an era-tagged observation with provenance
  goatrank score submit --entity <id> --component championships --value 6 \
    --era <era-id> --source "league archive"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entityID, err := uuid.Parse(rawScoreInput.entityID)
		if err != nil {
			contract.LogFatal("Invalid entity ID", err)
		}

		store := goatstore.GetStore()

		componentID, err := resolveComponent(rawScoreInput.component)
		if err != nil {
			contract.LogFatal("Invalid component", err)
		}

		raw := &schema.RawScore{
			ID:          uuid.New(),
			EntityID:    entityID,
			ComponentID: componentID,
			Value:       rawScoreInput.value,
			Source:      rawScoreInput.source,
		}
		if rawScoreInput.eraID != "" {
			eraID, err := uuid.Parse(rawScoreInput.eraID)
			if err != nil {
				contract.LogFatal("Invalid era ID", err)
			}
			raw.EraID = &eraID
		}

		if err := store.InsertRawScore(rootCtx, raw); err != nil {
			contract.LogFatal("Cannot record raw score", err)
		}
		fmt.Printf("Raw score %s recorded.\n", raw.ID)
	},
}

// resolveComponent resolves a component reference that may be a UUID or a slug.
func resolveComponent(ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	components, err := goatstore.GetStore().ListComponents(rootCtx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("list components: %w", err)
	}
	for _, c := range components {
		if c.Slug == ref {
			return c.ID, nil
		}
	}
	return uuid.Nil, errors.New("unknown component slug " + ref)
}
