package core

import (
	"context"
	"fmt"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// ExpertVoteWeight derives the effective weight of one expert vote:
// reputation clamped to [0.5, 1.5], scaled by the vote's confidence and the
// expert's domain match for the category. No domain entry means zero weight.
func ExpertVoteWeight(reputation, confidence, domainMatch float64) float64 {
	return contract.Clamp(reputation, schema.ReputationFloor, schema.ReputationCeiling) * confidence * domainMatch
}

// SubmitExpertVote validates and records an expert's rating of an entity
// under a scoring model. Only active, verified experts may vote, and each
// (expert, entity, model) triple votes at most once; a duplicate is rejected
// rather than overwritten.
func SubmitExpertVote(ctx context.Context, store contract.Store, vote *schema.ExpertVote) error {
	if vote.Score < 0 || vote.Score > 10 {
		return contract.NewValidation("expert score %.2f outside [0, 10]", vote.Score)
	}
	if vote.Confidence < 0 || vote.Confidence > 1 {
		return contract.NewValidation("confidence %.2f outside [0, 1]", vote.Confidence)
	}

	expert, err := store.GetExpert(ctx, vote.ExpertID)
	if err != nil {
		return fmt.Errorf("load expert: %w", err)
	}
	if expert == nil {
		return contract.NewNotFound("expert", vote.ExpertID.String())
	}
	if !expert.IsActive || !expert.VerificationStatus {
		return contract.NewValidation("expert %s is not active and verified", expert.Name)
	}

	entity, err := store.GetEntity(ctx, vote.EntityID)
	if err != nil {
		return fmt.Errorf("load entity: %w", err)
	}
	if entity == nil {
		return contract.NewNotFound("entity", vote.EntityID.String())
	}

	model, err := store.GetScoringModel(ctx, vote.ModelID)
	if err != nil {
		return fmt.Errorf("load scoring model: %w", err)
	}
	if model == nil {
		return contract.NewNotFound("scoring model", vote.ModelID.String())
	}

	exists, err := store.HasExpertVote(ctx, vote.ExpertID, vote.EntityID, vote.ModelID)
	if err != nil {
		return fmt.Errorf("check duplicate vote: %w", err)
	}
	if exists {
		return contract.NewValidation("expert %s already voted for this entity under this model", expert.Name)
	}

	if err := store.InsertExpertVote(ctx, vote); err != nil {
		return fmt.Errorf("insert expert vote: %w", err)
	}
	return nil
}

// ExpertConsensus computes the weighted-average expert rating for an
// (entity, model) pair on the 0-100 scale. The second return value is false
// when there are no votes or every vote carries zero weight, in which case
// the overlay must be skipped entirely rather than treated as a zero score.
func ExpertConsensus(ctx context.Context, store contract.Store, entityID uuid.UUID, model *schema.ScoringModel) (float64, bool, error) {
	votes, err := store.ListExpertVotes(ctx, entityID, model.ID)
	if err != nil {
		return 0, false, fmt.Errorf("list expert votes: %w", err)
	}
	if len(votes) == 0 {
		return 0, false, nil
	}

	var weightedSum, weightSum float64
	for _, v := range votes {
		expert, err := store.GetExpert(ctx, v.ExpertID)
		if err != nil {
			return 0, false, fmt.Errorf("load expert: %w", err)
		}
		if expert == nil {
			continue
		}
		domainMatch, err := store.GetExpertDomainLevel(ctx, v.ExpertID, model.CategoryID)
		if err != nil {
			return 0, false, fmt.Errorf("load domain level: %w", err)
		}
		w := ExpertVoteWeight(expert.ReputationScore, v.Confidence, domainMatch)
		weightedSum += v.Score * w
		weightSum += w
	}

	if weightSum <= 0 {
		return 0, false, nil
	}
	// Expert votes are 0-10; final scores live on the 0-100 scale.
	return weightedSum / weightSum * 10, true, nil
}
