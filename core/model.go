package core

import (
	"context"
	"fmt"
	"math"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// CreateScoringModel validates a model definition and persists it with its
// weights as one unit. Raw weights must each lie in [0,1] and sum to 1.0
// within schema.WeightSumTolerance; the subjective cap is applied later at
// scoring time, not at creation.
func CreateScoringModel(ctx context.Context, store contract.Store, model *schema.ScoringModel, weights []schema.ScoringWeight) error {
	category, err := store.GetCategory(ctx, model.CategoryID)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return contract.NewNotFound("category", model.CategoryID.String())
	}

	if len(weights) == 0 {
		return contract.NewValidation("a scoring model needs at least one weighted component")
	}

	components, err := store.ListComponents(ctx)
	if err != nil {
		return fmt.Errorf("list components: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(components))
	for _, c := range components {
		known[c.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(weights))
	var sum float64
	for i := range weights {
		w := &weights[i]
		if !known[w.ComponentID] {
			return contract.NewNotFound("scoring component", w.ComponentID.String())
		}
		if seen[w.ComponentID] {
			return contract.NewValidation("component %s is weighted twice", w.ComponentID)
		}
		seen[w.ComponentID] = true
		if w.Weight < 0 || w.Weight > 1 {
			return contract.NewValidation("weight %.3f outside [0, 1]", w.Weight)
		}
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		w.ModelID = model.ID
		sum += w.Weight
	}
	if math.Abs(sum-1.0) > schema.WeightSumTolerance {
		return contract.NewValidation("weights sum to %.3f, expected 1.0 within ±%.2f", sum, schema.WeightSumTolerance)
	}

	if err := store.CreateScoringModel(ctx, model, weights); err != nil {
		return fmt.Errorf("create scoring model: %w", err)
	}
	return nil
}
