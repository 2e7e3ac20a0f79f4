package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// RunScoring executes the full composite pipeline for every entity in a
// category and persists the results as one batch. The pipeline per entity:
// normalize each component's latest raw score, apply era adjustment where the
// observation is era-tagged, weight and sum into a 0-100 base, then blend the
// expert, fan and influence overlays in that fixed order.
//
// Model resolution: a non-nil modelID selects that model; otherwise the
// category's active model is used. Per-entity failures follow
// cfg.FailureMode: fail_fast aborts the run, best_effort logs and skips.
// Returned scores are ordered descending.
func RunScoring(ctx context.Context, store contract.Store, cfg *contract.Config, categoryID uuid.UUID, modelID *uuid.UUID) ([]schema.FinalScore, error) {
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

	weights, err := store.ListModelWeights(ctx, model.ID)
	if err != nil {
		return nil, fmt.Errorf("list model weights: %w", err)
	}
	if len(weights) == 0 {
		return nil, contract.NewValidation("scoring model %s has no weights", model.Name)
	}

	componentList, err := store.ListComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	components := make(map[uuid.UUID]schema.ScoringComponent, len(componentList))
	for _, c := range componentList {
		components[c.ID] = c
	}

	// Weights are model-level, so cap and renormalize once per run.
	effective := CapAndRenormalize(weights, components)

	entities, err := store.ListEntities(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	if len(entities) == 0 {
		// An empty category is a valid outcome, not an error.
		return []schema.FinalScore{}, nil
	}

	// Component stats are category-level, shared across entities.
	statsCache := make(map[uuid.UUID]*schema.ComponentStats, len(weights))

	scorer := &entityScorer{
		store:      store,
		cfg:        cfg,
		category:   category,
		model:      model,
		components: components,
		effective:  effective,
		statsCache: statsCache,
	}

	var results []schema.FinalScore
	for _, entity := range entities {
		fs, err := scorer.score(ctx, entity)
		if err != nil {
			if cfg.FailureMode == schema.FailFast {
				return nil, fmt.Errorf("score entity %s: %w", entity.Name, err)
			}
			contract.LogWarn(fmt.Sprintf("Skipping entity %s", entity.Name), err)
			continue
		}
		results = append(results, *fs)
	}
	if len(results) == 0 {
		return nil, contract.NewValidation("every entity in category %s failed to score", category.Name)
	}

	if err := store.UpsertFinalScores(ctx, results); err != nil {
		return nil, fmt.Errorf("persist final scores: %w", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

// entityScorer carries the run-level state shared by every entity in one
// scoring pass.
type entityScorer struct {
	store      contract.Store
	cfg        *contract.Config
	category   *schema.Category
	model      *schema.ScoringModel
	components map[uuid.UUID]schema.ScoringComponent
	effective  map[uuid.UUID]float64
	statsCache map[uuid.UUID]*schema.ComponentStats
}

func (s *entityScorer) stats(ctx context.Context, componentID uuid.UUID) (*schema.ComponentStats, error) {
	if cached, ok := s.statsCache[componentID]; ok {
		return cached, nil
	}
	stats, err := s.store.GetComponentStats(ctx, s.category.ID, componentID)
	if err != nil {
		return nil, fmt.Errorf("component stats: %w", err)
	}
	s.statsCache[componentID] = stats
	return stats, nil
}

// orderedComponents returns the weighted component ids sorted by slug so the
// breakdown and explanation are deterministic across runs.
func (s *entityScorer) orderedComponents() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.effective))
	for id := range s.effective {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.components[ids[i]].Slug < s.components[ids[j]].Slug
	})
	return ids
}

func (s *entityScorer) score(ctx context.Context, entity schema.Entity) (*schema.FinalScore, error) {
	breakdown := make(map[string]float64)
	var fragments []string
	var total float64

	for _, componentID := range s.orderedComponents() {
		weight := s.effective[componentID]
		comp, ok := s.components[componentID]
		if !ok {
			return nil, contract.NewNotFound("scoring component", componentID.String())
		}

		raw, err := s.store.GetLatestRawScore(ctx, entity.ID, componentID)
		if err != nil {
			return nil, fmt.Errorf("latest raw score for %s: %w", comp.Slug, err)
		}
		if raw == nil {
			// Missing data contributes zero rather than failing the entity.
			breakdown[comp.Slug] = 0
			fragments = append(fragments, fmt.Sprintf("%s: no data, contributes 0", comp.Name))
			continue
		}

		stats, err := s.stats(ctx, componentID)
		if err != nil {
			return nil, err
		}

		normalized := Normalize(raw.Value, *stats, comp.NormalizationType)
		fragments = append(fragments, fmt.Sprintf("%s: raw %.2f normalized to %.3f (weight %.2f)",
			comp.Name, raw.Value, normalized, weight))

		if raw.EraID != nil {
			adjusted, notes, err := AdjustForEra(ctx, s.store, normalized, raw.Value, *raw.EraID, componentID)
			if err != nil {
				return nil, fmt.Errorf("era adjustment for %s: %w", comp.Slug, err)
			}
			normalized = adjusted
			fragments = append(fragments, notes...)
		}

		contribution := normalized * weight * 100
		breakdown[comp.Slug] = contract.RoundTo(contribution, s.cfg.Precision)
		total += contribution
	}

	// Overlays blend into the running total in a fixed order; each shifts the
	// total toward its own 0-100 value by its overlay weight.
	expertValue, hasExpert, err := ExpertConsensus(ctx, s.store, entity.ID, s.model)
	if err != nil {
		return nil, err
	}
	if hasExpert {
		total = blendOverlay(total, expertValue, schema.ExpertOverlayWeight)
		breakdown[string(schema.BreakdownExpert)] = contract.RoundTo(expertValue*schema.ExpertOverlayWeight, s.cfg.Precision)
		fragments = append(fragments, fmt.Sprintf("Expert consensus %.1f blended at %.0f%%",
			expertValue, schema.ExpertOverlayWeight*100))
	}

	fanAgg, err := s.store.GetFanAggregate(ctx, entity.ID, s.category.ID)
	if err != nil {
		return nil, fmt.Errorf("fan aggregate: %w", err)
	}
	if fanAgg != nil && fanAgg.VoteCount > 0 {
		total = blendOverlay(total, fanAgg.Score, schema.FanOverlayWeight)
		breakdown[string(schema.BreakdownFan)] = contract.RoundTo(fanAgg.Score*schema.FanOverlayWeight, s.cfg.Precision)
		fragments = append(fragments, fmt.Sprintf("Fan sentiment %.1f from %d votes blended at %.0f%%",
			fanAgg.Score, fanAgg.VoteCount, schema.FanOverlayWeight*100))
	}

	infValue, hasInfluence, err := s.influenceOverlay(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	if hasInfluence {
		total = blendOverlay(total, infValue, schema.InfluenceOverlayWeight)
		breakdown[string(schema.BreakdownInfluence)] = contract.RoundTo(infValue*schema.InfluenceOverlayWeight, s.cfg.Precision)
		fragments = append(fragments, fmt.Sprintf("AI influence %.1f blended at %.0f%%",
			infValue, schema.InfluenceOverlayWeight*100))
	}

	return &schema.FinalScore{
		ID:          uuid.New(),
		EntityID:    entity.ID,
		EntityName:  entity.Name,
		ModelID:     s.model.ID,
		Score:       contract.RoundTo(contract.Clamp(total, 0, 100), s.cfg.Precision),
		Breakdown:   breakdown,
		Explanation: strings.Join(fragments, " | "),
	}, nil
}

// influenceOverlay looks up a previously calculated influence score under the
// category's active influence model. No model or no stored score means the
// overlay is skipped.
func (s *entityScorer) influenceOverlay(ctx context.Context, entityID uuid.UUID) (float64, bool, error) {
	model, err := s.store.GetActiveInfluenceModel(ctx, s.category.ID)
	if err != nil {
		return 0, false, fmt.Errorf("resolve influence model: %w", err)
	}
	if model == nil {
		return 0, false, nil
	}
	stored, err := s.store.GetInfluenceScore(ctx, entityID, model.ID)
	if err != nil {
		return 0, false, fmt.Errorf("load influence score: %w", err)
	}
	if stored == nil {
		return 0, false, nil
	}
	return stored.Total, true, nil
}

// blendOverlay shifts the running total toward an overlay value by the
// overlay's weight: total*(1-w) + value*w.
func blendOverlay(total, value, weight float64) float64 {
	return total*(1-weight) + value*weight
}
