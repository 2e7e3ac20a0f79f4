package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// CalculateInfluenceScore evaluates an entity's event-level evidence into the
// four influence sub-scores, blends them under the model's weights and
// persists the result. An entity with zero events gets a zeroed score with an
// explanatory message rather than an error, so sparse datasets still rank.
//
// Model resolution: a non-nil modelID selects that model; otherwise the
// category's active influence model is used.
func CalculateInfluenceScore(ctx context.Context, store contract.Store, entityID uuid.UUID, modelID *uuid.UUID) (*schema.InfluenceScore, error) {
	entity, err := store.GetEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("load entity: %w", err)
	}
	if entity == nil {
		return nil, contract.NewNotFound("entity", entityID.String())
	}

	var model *schema.InfluenceModel
	if modelID != nil {
		model, err = store.GetInfluenceModel(ctx, *modelID)
		if err != nil {
			return nil, fmt.Errorf("load influence model: %w", err)
		}
		if model == nil {
			return nil, contract.NewNotFound("influence model", modelID.String())
		}
	} else {
		model, err = store.GetActiveInfluenceModel(ctx, entity.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("resolve active influence model: %w", err)
		}
		if model == nil {
			return nil, contract.NewNotFound("active influence model for category", entity.CategoryID.String())
		}
	}

	events, err := store.ListInfluenceEvents(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list influence events: %w", err)
	}

	score := buildInfluenceScore(entity, model, events)
	if err := store.UpsertInfluenceScore(ctx, score); err != nil {
		return nil, fmt.Errorf("upsert influence score: %w", err)
	}
	return score, nil
}

// buildInfluenceScore is the pure scoring half of the calculator.
func buildInfluenceScore(entity *schema.Entity, model *schema.InfluenceModel, events []schema.InfluenceEvent) *schema.InfluenceScore {
	score := &schema.InfluenceScore{
		EntityID:   entity.ID,
		ModelID:    model.ID,
		EventCount: len(events),
	}
	if len(events) == 0 {
		score.Explanation = fmt.Sprintf("No influence events recorded for %s; score defaults to zero", entity.Name)
		return score
	}

	sources := make(map[uuid.UUID]bool)
	var weightSum, peerWeightSum, credibilitySum float64
	var earliest, latest *time.Time
	for _, ev := range events {
		sources[ev.SourceID] = true
		weightSum += ev.Weight
		credibilitySum += ev.SourceCredibility
		if ev.EventType == schema.PeerMentionEvent {
			peerWeightSum += ev.Weight
		}
		if ev.EventDate != nil {
			if earliest == nil || ev.EventDate.Before(*earliest) {
				earliest = ev.EventDate
			}
			if latest == nil || ev.EventDate.After(*latest) {
				latest = ev.EventDate
			}
		}
	}

	score.Breadth = saturate100(float64(len(sources)) * schema.BreadthPerSource)
	score.Depth = saturate100(math.Log(weightSum+1) * schema.DepthLogScale)
	if earliest != nil && latest != nil {
		years := latest.Sub(*earliest).Hours() / 24 / 365.25
		score.Longevity = saturate100(years * schema.LongevityPerYear)
	}
	score.Peer = saturate100(peerWeightSum * schema.PeerMentionScale)

	// Plain weighted sum; the model's weights are taken as-is and are not
	// renormalized even when they do not sum to 1.
	w := model.Weights.Normalized()
	score.Total = score.Breadth*w.Breadth + score.Depth*w.Depth +
		score.Longevity*w.Longevity + score.Peer*w.Peer

	avgCredibility := credibilitySum / float64(len(events))
	density := math.Min(1, float64(len(events))/schema.ConfidenceDensityN)
	score.Confidence = avgCredibility * density

	score.Explanation = strings.Join([]string{
		fmt.Sprintf("Breadth %.1f from %d distinct sources", score.Breadth, len(sources)),
		fmt.Sprintf("Depth %.1f from total event weight %.2f", score.Depth, weightSum),
		fmt.Sprintf("Longevity %.1f over the evidence span", score.Longevity),
		fmt.Sprintf("Peer recognition %.1f from peer mentions", score.Peer),
		fmt.Sprintf("Confidence %.2f from %d events", score.Confidence, len(events)),
	}, " | ")
	return score
}

func saturate100(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
