package core

import (
	"context"
	"fmt"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// CreateSnapshot freezes the current ranking of a category under a model into
// an immutable snapshot with 1-based ranks. A category with no final scores
// cannot be snapshotted.
//
// Model resolution: a non-nil modelID selects that model; otherwise the
// category's active model is used.
func CreateSnapshot(ctx context.Context, store contract.Store, categoryID uuid.UUID, modelID *uuid.UUID, label string) (*schema.RankingSnapshot, error) {
	category, err := store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, contract.NewNotFound("category", categoryID.String())
	}

	var model *schema.ScoringModel
	if modelID != nil {
		model, err = store.GetScoringModel(ctx, *modelID)
		if err != nil {
			return nil, fmt.Errorf("load scoring model: %w", err)
		}
		if model == nil {
			return nil, contract.NewNotFound("scoring model", modelID.String())
		}
	} else {
		model, err = store.GetActiveScoringModel(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("resolve active scoring model: %w", err)
		}
		if model == nil {
			return nil, contract.NewNotFound("active scoring model for category", categoryID.String())
		}
	}

	scores, err := store.ListFinalScores(ctx, categoryID, model.ID)
	if err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}
	if len(scores) == 0 {
		return nil, contract.NewNotFound("final scores for category", category.Name)
	}

	entries := make([]schema.SnapshotEntry, 0, len(scores))
	for i, fs := range scores {
		entries = append(entries, schema.SnapshotEntry{
			Rank:       i + 1,
			EntityID:   fs.EntityID,
			EntityName: fs.EntityName,
			Score:      fs.Score,
			Breakdown:  fs.Breakdown,
		})
	}

	snap := &schema.RankingSnapshot{
		ID:         uuid.New(),
		CategoryID: categoryID,
		ModelID:    model.ID,
		Label:      label,
		Entries:    entries,
	}
	if err := store.InsertSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}
