// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// Store defines the persistence operations the scoring pipeline consumes.
// The pipeline never talks SQL directly; this interface allows the core
// logic to be tested against an in-memory fake.
type Store interface {
	// --- Categories / Entities / Components ---

	// GetCategory returns a category by id.
	GetCategory(ctx context.Context, id uuid.UUID) (*schema.Category, error)

	// ListEntities returns every entity in a category.
	ListEntities(ctx context.Context, categoryID uuid.UUID) ([]schema.Entity, error)

	// GetEntity returns an entity by id.
	GetEntity(ctx context.Context, id uuid.UUID) (*schema.Entity, error)

	// ListComponents returns all scoring components.
	ListComponents(ctx context.Context) ([]schema.ScoringComponent, error)

	// --- Scoring models ---

	// GetScoringModel returns a model by id.
	GetScoringModel(ctx context.Context, id uuid.UUID) (*schema.ScoringModel, error)

	// GetActiveScoringModel returns the unique active model for a category.
	GetActiveScoringModel(ctx context.Context, categoryID uuid.UUID) (*schema.ScoringModel, error)

	// CreateScoringModel persists a model and its weights as one unit.
	// Callers validate the weight-sum invariant before calling.
	CreateScoringModel(ctx context.Context, model *schema.ScoringModel, weights []schema.ScoringWeight) error

	// ListModelWeights returns the weights of a model.
	ListModelWeights(ctx context.Context, modelID uuid.UUID) ([]schema.ScoringWeight, error)

	// --- Raw scores ---

	// InsertRawScore records one observation. Observations are append-only.
	InsertRawScore(ctx context.Context, raw *schema.RawScore) error

	// GetLatestRawScore returns the most recent observation for an
	// (entity, component) pair, ties broken by highest insertion seq, or
	// nil when the pair has no observations.
	GetLatestRawScore(ctx context.Context, entityID, componentID uuid.UUID) (*schema.RawScore, error)

	// GetComponentStats returns min/max/mean/stddev over the latest raw
	// score per entity within the category.
	GetComponentStats(ctx context.Context, categoryID, componentID uuid.UUID) (*schema.ComponentStats, error)

	// ListEraRawValues returns all raw values tagged with an era for a
	// component, across all observations.
	ListEraRawValues(ctx context.Context, eraID, componentID uuid.UUID) ([]float64, error)

	// --- Eras ---

	// GetEra returns an era by id.
	GetEra(ctx context.Context, id uuid.UUID) (*schema.Era, error)

	// GetEraFactor returns the factor for an (era, component) pair, or nil
	// when none has been calculated.
	GetEraFactor(ctx context.Context, eraID, componentID uuid.UUID) (*schema.EraFactor, error)

	// UpsertEraFactors writes factors as one transactional unit, preserving
	// each existing factor's multiplier.
	UpsertEraFactors(ctx context.Context, factors []schema.EraFactor) error

	// --- Experts ---

	// GetExpert returns an expert by id.
	GetExpert(ctx context.Context, id uuid.UUID) (*schema.Expert, error)

	// GetExpertDomainLevel returns the expert's declared expertise level for
	// a category, or 0 when the expert has no domain entry there.
	GetExpertDomainLevel(ctx context.Context, expertID, categoryID uuid.UUID) (float64, error)

	// HasExpertVote reports whether the expert already voted for the
	// (entity, model) pair.
	HasExpertVote(ctx context.Context, expertID, entityID, modelID uuid.UUID) (bool, error)

	// InsertExpertVote records a vote. Votes are never updated in place.
	InsertExpertVote(ctx context.Context, vote *schema.ExpertVote) error

	// ListExpertVotes returns all votes for an (entity, model) pair.
	ListExpertVotes(ctx context.Context, entityID, modelID uuid.UUID) ([]schema.ExpertVote, error)

	// --- Fan votes ---

	// UpsertFanVote replaces a user's prior vote for the (entity, category)
	// pair, versioning the old value, or inserts a new one.
	UpsertFanVote(ctx context.Context, vote *schema.FanVote) error

	// ListFanVotes returns all current votes for an (entity, category) pair.
	ListFanVotes(ctx context.Context, entityID, categoryID uuid.UUID) ([]schema.FanVote, error)

	// GetFanAggregate returns the aggregate for an (entity, category) pair,
	// or nil when no votes exist.
	GetFanAggregate(ctx context.Context, entityID, categoryID uuid.UUID) (*schema.FanVoteAggregate, error)

	// UpsertFanAggregate writes the recomputed aggregate.
	UpsertFanAggregate(ctx context.Context, agg *schema.FanVoteAggregate) error

	// --- Influence ---

	// GetInfluenceModel returns an influence model by id.
	GetInfluenceModel(ctx context.Context, id uuid.UUID) (*schema.InfluenceModel, error)

	// GetActiveInfluenceModel returns the active influence model for a
	// category, or nil when none is configured.
	GetActiveInfluenceModel(ctx context.Context, categoryID uuid.UUID) (*schema.InfluenceModel, error)

	// ListInfluenceEvents returns all influence events for an entity with
	// source credibility joined in.
	ListInfluenceEvents(ctx context.Context, entityID uuid.UUID) ([]schema.InfluenceEvent, error)

	// GetInfluenceScore returns the stored score for an (entity, model)
	// pair, or nil when none has been calculated.
	GetInfluenceScore(ctx context.Context, entityID, modelID uuid.UUID) (*schema.InfluenceScore, error)

	// UpsertInfluenceScore overwrites the score for an (entity, model) pair.
	UpsertInfluenceScore(ctx context.Context, score *schema.InfluenceScore) error

	// --- Final scores / Snapshots ---

	// UpsertFinalScores writes a run's results as one transactional unit,
	// replacing prior records per (entity, model).
	UpsertFinalScores(ctx context.Context, scores []schema.FinalScore) error

	// ListFinalScores returns the current final scores for a category under
	// a model, ordered descending by score.
	ListFinalScores(ctx context.Context, categoryID, modelID uuid.UUID) ([]schema.FinalScore, error)

	// InsertSnapshot freezes a ranking snapshot. Snapshots are immutable.
	InsertSnapshot(ctx context.Context, snap *schema.RankingSnapshot) error

	// GetSnapshot returns a snapshot with its entries.
	GetSnapshot(ctx context.Context, id uuid.UUID) (*schema.RankingSnapshot, error)

	// --- Diagnostics ---

	// GetStatus returns status information about the datastore.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Seeder is implemented by stores that can bulk-load demonstration data.
type Seeder interface {
	InsertCategory(ctx context.Context, c *schema.Category) error
	InsertSubCategory(ctx context.Context, sc *schema.SubCategory) error
	InsertEntity(ctx context.Context, e *schema.Entity) error
	InsertComponent(ctx context.Context, c *schema.ScoringComponent) error
	InsertEra(ctx context.Context, e *schema.Era) error
	InsertExpert(ctx context.Context, e *schema.Expert) error
	InsertExpertDomain(ctx context.Context, d *schema.ExpertDomain) error
	InsertInfluenceSource(ctx context.Context, s *schema.InfluenceSource) error
	InsertInfluenceEvent(ctx context.Context, e *schema.InfluenceEvent) error
	InsertInfluenceModel(ctx context.Context, m *schema.InfluenceModel) error
}
