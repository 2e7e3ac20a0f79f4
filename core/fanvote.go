package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// FanVoteService serializes vote writes per (entity, category) pair so the
// synchronous aggregate recompute never races with a concurrent vote for the
// same pair. Votes for different pairs proceed in parallel.
type FanVoteService struct {
	store contract.Store

	mu    sync.Mutex
	locks map[[2]uuid.UUID]*sync.Mutex
}

// NewFanVoteService returns a service bound to a store.
func NewFanVoteService(store contract.Store) *FanVoteService {
	return &FanVoteService{
		store: store,
		locks: make(map[[2]uuid.UUID]*sync.Mutex),
	}
}

func (s *FanVoteService) lockFor(entityID, categoryID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{entityID, categoryID}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// SubmitVote validates a fan vote, replaces the user's prior vote if one
// exists, and synchronously recomputes the pair's aggregate before returning.
func (s *FanVoteService) SubmitVote(ctx context.Context, vote *schema.FanVote) (*schema.FanVoteAggregate, error) {
	if vote.Rating < schema.FanRatingMin || vote.Rating > schema.FanRatingMax {
		return nil, contract.NewValidation("fan rating %.2f outside [%.0f, %.0f]",
			vote.Rating, schema.FanRatingMin, schema.FanRatingMax)
	}
	if vote.Weight <= 0 {
		return nil, contract.NewValidation("vote weight must be positive, got %.2f", vote.Weight)
	}

	entity, err := s.store.GetEntity(ctx, vote.EntityID)
	if err != nil {
		return nil, fmt.Errorf("load entity: %w", err)
	}
	if entity == nil {
		return nil, contract.NewNotFound("entity", vote.EntityID.String())
	}
	if entity.CategoryID != vote.CategoryID {
		return nil, contract.NewValidation("entity %s does not belong to the given category", entity.Name)
	}

	lock := s.lockFor(vote.EntityID, vote.CategoryID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.UpsertFanVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("upsert fan vote: %w", err)
	}
	return s.recomputeAggregate(ctx, vote.EntityID, vote.CategoryID)
}

// recomputeAggregate rebuilds the weighted average from all current votes.
// Callers must hold the pair's lock.
func (s *FanVoteService) recomputeAggregate(ctx context.Context, entityID, categoryID uuid.UUID) (*schema.FanVoteAggregate, error) {
	votes, err := s.store.ListFanVotes(ctx, entityID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list fan votes: %w", err)
	}

	agg := &schema.FanVoteAggregate{
		EntityID:   entityID,
		CategoryID: categoryID,
		VoteCount:  len(votes),
	}

	var weightedSum, weightSum float64
	for _, v := range votes {
		weightedSum += v.Rating * v.Weight
		weightSum += v.Weight
	}
	if weightSum > 0 {
		// Ratings are 0-10; the aggregate lives on the 0-100 scale.
		agg.Score = weightedSum / weightSum * 10
	}

	if err := s.store.UpsertFanAggregate(ctx, agg); err != nil {
		return nil, fmt.Errorf("upsert fan aggregate: %w", err)
	}
	return agg, nil
}
