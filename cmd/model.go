package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// modelCreateInput collects the flag values for 'model create'.
var modelCreateInput struct {
	categoryID string
	name       string
	version    int
	active     bool
	weights    string
}

// modelCmd groups scoring model operations.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage scoring models",
	Long: `Manage the weighted component models used by the scoring pipeline.

A scoring model assigns a weight to each component within a category.
Weights must sum to 1.0 and at most one model per category is active.

Subcommands:
  create - Create a new scoring model with component weights

Examples:
  goatrank model create --category <id> --name "composite-v2" \
    --weights "championships=0.4,mvp-awards=0.3,career-points=0.3" --active`,
}

// modelCreateCmd creates a scoring model.
var modelCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a scoring model with component weights.",
	Long: `Create a scoring model for a category.

Weights are given as comma-separated slug=weight pairs referencing
existing component slugs. They must sum to 1.0 (within a 0.01 tolerance).
Marking the model active deactivates the category's previous active model.

Examples:
  # Create and activate a two-component model
  goatrank model create --category <id> --name "simple" \
    --weights "championships=0.6,mvp-awards=0.4" --active`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		categoryID, err := uuid.Parse(modelCreateInput.categoryID)
		if err != nil {
			contract.LogFatal("Invalid category ID", err)
		}

		store := goatstore.GetStore()

		model := &schema.ScoringModel{
			ID:         uuid.New(),
			CategoryID: categoryID,
			Name:       modelCreateInput.name,
			Version:    modelCreateInput.version,
			IsActive:   modelCreateInput.active,
		}

		weights, err := parseWeightSpec(model.ID, modelCreateInput.weights)
		if err != nil {
			contract.LogFatal("Invalid weights", err)
		}

		if err := core.CreateScoringModel(rootCtx, store, model, weights); err != nil {
			contract.LogFatal("Cannot create scoring model", err)
		}
		fmt.Printf("Scoring model %s (%s) created with %d weights.\n",
			model.Name, model.ID, len(weights))
	},
}

// parseWeightSpec parses "slug=0.6,slug=0.4" pairs into scoring weights,
// resolving component slugs against the store.
func parseWeightSpec(modelID uuid.UUID, spec string) ([]schema.ScoringWeight, error) {
	components, err := goatstore.GetStore().ListComponents(rootCtx)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	bySlug := make(map[string]uuid.UUID, len(components))
	for _, c := range components {
		bySlug[c.Slug] = c.ID
	}

	var weights []schema.ScoringWeight
	for _, pair := range strings.Split(spec, ",") {
		slug, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("malformed weight pair %q, expected slug=weight", pair)
		}
		componentID, ok := bySlug[slug]
		if !ok {
			return nil, fmt.Errorf("unknown component slug %q", slug)
		}
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %q: %w", slug, err)
		}
		weights = append(weights, schema.ScoringWeight{
			ID:          uuid.New(),
			ModelID:     modelID,
			ComponentID: componentID,
			Weight:      weight,
		})
	}
	return weights, nil
}
