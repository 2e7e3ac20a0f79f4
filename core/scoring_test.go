package core

import (
	"context"
	"errors"
	"testing"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	store      *goatstore.MockStore
	cfg        *contract.Config
	category   schema.Category
	model      schema.ScoringModel
	champ, mvp schema.ScoringComponent
	alpha      schema.Entity
	beta       schema.Entity
}

// newScoringFixture seeds two entities and two min-max components weighted
// 0.6/0.4. Alpha holds the max raw value on both, beta the min, so alpha
// scores a 100 base and beta a 0 base.
func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	ctx := context.Background()
	store := goatstore.NewMockStore()

	category := schema.Category{ID: uuid.New(), Name: "Basketball", Slug: "basketball"}
	require.NoError(t, store.InsertCategory(ctx, &category))

	champ := schema.ScoringComponent{ID: uuid.New(), Name: "Championships", Slug: "championships", NormalizationType: schema.MinMaxNormalization}
	mvp := schema.ScoringComponent{ID: uuid.New(), Name: "MVP Awards", Slug: "mvp-awards", NormalizationType: schema.MinMaxNormalization}
	require.NoError(t, store.InsertComponent(ctx, &champ))
	require.NoError(t, store.InsertComponent(ctx, &mvp))

	model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "default", Version: 1, IsActive: true}
	require.NoError(t, store.CreateScoringModel(ctx, &model, []schema.ScoringWeight{
		{ID: uuid.New(), ModelID: model.ID, ComponentID: champ.ID, Weight: 0.6},
		{ID: uuid.New(), ModelID: model.ID, ComponentID: mvp.ID, Weight: 0.4},
	}))

	alpha := schema.Entity{ID: uuid.New(), CategoryID: category.ID, Name: "Alpha", Slug: "alpha"}
	beta := schema.Entity{ID: uuid.New(), CategoryID: category.ID, Name: "Beta", Slug: "beta"}
	require.NoError(t, store.InsertEntity(ctx, &alpha))
	require.NoError(t, store.InsertEntity(ctx, &beta))

	for _, raw := range []schema.RawScore{
		{EntityID: alpha.ID, ComponentID: champ.ID, Value: 6},
		{EntityID: alpha.ID, ComponentID: mvp.ID, Value: 5},
		{EntityID: beta.ID, ComponentID: champ.ID, Value: 2},
		{EntityID: beta.ID, ComponentID: mvp.ID, Value: 1},
	} {
		r := raw
		r.Source = "test"
		require.NoError(t, store.InsertRawScore(ctx, &r))
	}

	cfg := &contract.Config{Precision: 2, FailureMode: schema.FailFast}
	return &scoringFixture{
		store: store, cfg: cfg, category: category, model: model,
		champ: champ, mvp: mvp, alpha: alpha, beta: beta,
	}
}

// TestRunScoringBase checks the weighted normalized sum with no overlays.
func TestRunScoringBase(t *testing.T) {
	f := newScoringFixture(t)

	results, err := RunScoring(context.Background(), f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Alpha", results[0].EntityName)
	assert.InDelta(t, 100.0, results[0].Score, 1e-9)
	assert.InDelta(t, 60.0, results[0].Breakdown["championships"], 1e-9)
	assert.InDelta(t, 40.0, results[0].Breakdown["mvp-awards"], 1e-9)

	assert.Equal(t, "Beta", results[1].EntityName)
	assert.InDelta(t, 0.0, results[1].Score, 1e-9)
	assert.Contains(t, results[1].Explanation, "normalized")
}

// TestRunScoringOverlays verifies the fixed blend order: expert, then fan,
// then influence.
func TestRunScoringOverlays(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	expert := schema.Expert{ID: uuid.New(), Name: "analyst", ReputationScore: 1.0, IsActive: true, VerificationStatus: true}
	require.NoError(t, f.store.InsertExpert(ctx, &expert))
	require.NoError(t, f.store.InsertExpertDomain(ctx, &schema.ExpertDomain{
		ID: uuid.New(), ExpertID: expert.ID, CategoryID: f.category.ID, ExpertiseLevel: 1.0,
	}))
	require.NoError(t, f.store.InsertExpertVote(ctx, &schema.ExpertVote{
		ExpertID: expert.ID, EntityID: f.alpha.ID, ModelID: f.model.ID, Score: 8, Confidence: 1.0,
	}))

	require.NoError(t, f.store.UpsertFanVote(ctx, &schema.FanVote{
		UserID: uuid.New(), EntityID: f.alpha.ID, CategoryID: f.category.ID, Rating: 9, Weight: 1,
	}))
	require.NoError(t, f.store.UpsertFanAggregate(ctx, &schema.FanVoteAggregate{
		EntityID: f.alpha.ID, CategoryID: f.category.ID, Score: 90, VoteCount: 1,
	}))

	infModel := schema.InfluenceModel{ID: uuid.New(), CategoryID: f.category.ID, Name: "default", IsActive: true}
	require.NoError(t, f.store.InsertInfluenceModel(ctx, &infModel))
	require.NoError(t, f.store.UpsertInfluenceScore(ctx, &schema.InfluenceScore{
		EntityID: f.alpha.ID, ModelID: infModel.ID, Total: 50, EventCount: 3,
	}))

	results, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	var alpha schema.FinalScore
	for _, r := range results {
		if r.EntityID == f.alpha.ID {
			alpha = r
		}
	}

	// Base 100, expert 80 at 20%, fan 90 at 10%, influence 50 at 15%:
	// 100 -> 96 -> 95.4 -> 88.59.
	assert.InDelta(t, 88.59, alpha.Score, 1e-9)
	// The breakdown records each overlay's contribution, not its raw value.
	assert.InDelta(t, 16.0, alpha.Breakdown[string(schema.BreakdownExpert)], 1e-9)
	assert.InDelta(t, 9.0, alpha.Breakdown[string(schema.BreakdownFan)], 1e-9)
	assert.InDelta(t, 7.5, alpha.Breakdown[string(schema.BreakdownInfluence)], 1e-9)
	assert.Contains(t, alpha.Explanation, "Expert consensus")
	assert.Contains(t, alpha.Explanation, "Fan sentiment")
	assert.Contains(t, alpha.Explanation, "AI influence")
}

// TestRunScoringEmptyCategory returns an empty result rather than an error
// when a category has a valid active model but no entities.
func TestRunScoringEmptyCategory(t *testing.T) {
	ctx := context.Background()
	store := goatstore.NewMockStore()

	category := schema.Category{ID: uuid.New(), Name: "Empty", Slug: "empty"}
	require.NoError(t, store.InsertCategory(ctx, &category))

	comp := schema.ScoringComponent{ID: uuid.New(), Name: "Titles", Slug: "titles", NormalizationType: schema.MinMaxNormalization}
	require.NoError(t, store.InsertComponent(ctx, &comp))

	model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "default", Version: 1, IsActive: true}
	require.NoError(t, store.CreateScoringModel(ctx, &model, []schema.ScoringWeight{
		{ID: uuid.New(), ModelID: model.ID, ComponentID: comp.ID, Weight: 1.0},
	}))

	cfg := &contract.Config{Precision: 2, FailureMode: schema.FailFast}
	results, err := RunScoring(ctx, store, cfg, category.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestRunScoringOverlayContribution stores the weighted overlay contribution
// in the breakdown: a unanimous 10/10 expert consensus on a 100 base records
// 20, not 100.
func TestRunScoringOverlayContribution(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	expert := schema.Expert{ID: uuid.New(), Name: "oracle", ReputationScore: 1.0, IsActive: true, VerificationStatus: true}
	require.NoError(t, f.store.InsertExpert(ctx, &expert))
	require.NoError(t, f.store.InsertExpertDomain(ctx, &schema.ExpertDomain{
		ID: uuid.New(), ExpertID: expert.ID, CategoryID: f.category.ID, ExpertiseLevel: 1.0,
	}))
	require.NoError(t, f.store.InsertExpertVote(ctx, &schema.ExpertVote{
		ExpertID: expert.ID, EntityID: f.alpha.ID, ModelID: f.model.ID, Score: 10, Confidence: 1.0,
	}))

	results, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	var alpha schema.FinalScore
	for _, r := range results {
		if r.EntityID == f.alpha.ID {
			alpha = r
		}
	}
	// Consensus 100 blended at 20% into a 100 base leaves the total at 100.
	assert.InDelta(t, 100.0, alpha.Score, 1e-9)
	assert.InDelta(t, 20.0, alpha.Breakdown[string(schema.BreakdownExpert)], 1e-9)
}

// TestRunScoringMissingData gives zero contribution for a component with no
// observation instead of failing the entity.
func TestRunScoringMissingData(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	gamma := schema.Entity{ID: uuid.New(), CategoryID: f.category.ID, Name: "Gamma", Slug: "gamma"}
	require.NoError(t, f.store.InsertEntity(ctx, &gamma))
	raw := schema.RawScore{EntityID: gamma.ID, ComponentID: f.champ.ID, Value: 4, Source: "test"}
	require.NoError(t, f.store.InsertRawScore(ctx, &raw))

	results, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	var got schema.FinalScore
	for _, r := range results {
		if r.EntityID == gamma.ID {
			got = r
		}
	}
	assert.Equal(t, 0.0, got.Breakdown["mvp-awards"])
	assert.Contains(t, got.Explanation, "no data")
	// Champ raw 4 in [2,6] normalizes to 0.5: 0.5 * 0.6 * 100 = 30.
	assert.InDelta(t, 30.0, got.Breakdown["championships"], 1e-9)
}

// TestRunScoringSubjectiveCap caps a subjective component's weight during the
// run without mutating the stored model.
func TestRunScoringSubjectiveCap(t *testing.T) {
	ctx := context.Background()
	store := goatstore.NewMockStore()

	category := schema.Category{ID: uuid.New(), Name: "Basketball", Slug: "basketball"}
	require.NoError(t, store.InsertCategory(ctx, &category))

	hype := schema.ScoringComponent{ID: uuid.New(), Name: "Hype", Slug: "hype", NormalizationType: schema.MinMaxNormalization, IsSubjective: true}
	rings := schema.ScoringComponent{ID: uuid.New(), Name: "Rings", Slug: "rings", NormalizationType: schema.MinMaxNormalization}
	require.NoError(t, store.InsertComponent(ctx, &hype))
	require.NoError(t, store.InsertComponent(ctx, &rings))

	model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "default", Version: 1, IsActive: true}
	require.NoError(t, store.CreateScoringModel(ctx, &model, []schema.ScoringWeight{
		{ID: uuid.New(), ModelID: model.ID, ComponentID: hype.ID, Weight: 0.3},
		{ID: uuid.New(), ModelID: model.ID, ComponentID: rings.ID, Weight: 0.7},
	}))

	top := schema.Entity{ID: uuid.New(), CategoryID: category.ID, Name: "Top", Slug: "top"}
	low := schema.Entity{ID: uuid.New(), CategoryID: category.ID, Name: "Low", Slug: "low"}
	require.NoError(t, store.InsertEntity(ctx, &top))
	require.NoError(t, store.InsertEntity(ctx, &low))
	for _, raw := range []schema.RawScore{
		{EntityID: top.ID, ComponentID: hype.ID, Value: 10},
		{EntityID: top.ID, ComponentID: rings.ID, Value: 6},
		{EntityID: low.ID, ComponentID: hype.ID, Value: 0},
		{EntityID: low.ID, ComponentID: rings.ID, Value: 0},
	} {
		r := raw
		require.NoError(t, store.InsertRawScore(ctx, &r))
	}

	cfg := &contract.Config{Precision: 2, FailureMode: schema.FailFast}
	results, err := RunScoring(ctx, store, cfg, category.ID, nil)
	require.NoError(t, err)

	// Hype capped to 0.1, rings rescaled to 0.9.
	assert.InDelta(t, 10.0, results[0].Breakdown["hype"], 1e-9)
	assert.InDelta(t, 90.0, results[0].Breakdown["rings"], 1e-9)
}

// TestRunScoringEraAdjustment applies multiplier and dominance to era-tagged
// observations.
func TestRunScoringEraAdjustment(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	era := schema.Era{ID: uuid.New(), CategoryID: f.category.ID, Name: "80s", StartYear: 1980, EndYear: 1989}
	require.NoError(t, f.store.InsertEra(ctx, &era))
	f.store.SetEraFactor(schema.EraFactor{
		EraID: era.ID, ComponentID: f.champ.ID, Mean: 6, StdDev: 1, Multiplier: 0.8,
	})

	// Replace alpha's championships observation with an era-tagged one.
	raw := schema.RawScore{EntityID: f.alpha.ID, ComponentID: f.champ.ID, Value: 6, EraID: &era.ID, Source: "test"}
	require.NoError(t, f.store.InsertRawScore(ctx, &raw))

	results, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	var alpha schema.FinalScore
	for _, r := range results {
		if r.EntityID == f.alpha.ID {
			alpha = r
		}
	}
	// Normalized 1.0 * multiplier 0.8 * dominance 1.0, weighted 0.6.
	assert.InDelta(t, 48.0, alpha.Breakdown["championships"], 1e-9)
	assert.Contains(t, alpha.Explanation, "Era multiplier")
}

// TestRunScoringResolutionErrors covers category, model and weight lookups.
func TestRunScoringResolutionErrors(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		_, err := RunScoring(ctx, f.store, f.cfg, uuid.New(), nil)
		require.Error(t, err)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("unknown model", func(t *testing.T) {
		bogus := uuid.New()
		_, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, &bogus)
		require.Error(t, err)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("no active model", func(t *testing.T) {
		store := goatstore.NewMockStore()
		category := schema.Category{ID: uuid.New(), Name: "Chess", Slug: "chess"}
		require.NoError(t, store.InsertCategory(ctx, &category))
		_, err := RunScoring(ctx, store, f.cfg, category.ID, nil)
		require.Error(t, err)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("model without weights", func(t *testing.T) {
		store := goatstore.NewMockStore()
		category := schema.Category{ID: uuid.New(), Name: "Chess", Slug: "chess"}
		require.NoError(t, store.InsertCategory(ctx, &category))
		model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "bare", IsActive: true}
		require.NoError(t, store.CreateScoringModel(ctx, &model, nil))
		_, err := RunScoring(ctx, store, f.cfg, category.ID, nil)
		require.Error(t, err)
		assert.True(t, contract.IsValidation(err))
	})
}

// flakyStore fails raw-score reads for one entity to exercise the failure
// modes.
type flakyStore struct {
	contract.Store
	failEntity uuid.UUID
}

func (s *flakyStore) GetLatestRawScore(ctx context.Context, entityID, componentID uuid.UUID) (*schema.RawScore, error) {
	if entityID == s.failEntity {
		return nil, errors.New("simulated read failure")
	}
	return s.Store.GetLatestRawScore(ctx, entityID, componentID)
}

// TestRunScoringFailureModes aborts under fail_fast and skips under
// best_effort.
func TestRunScoringFailureModes(t *testing.T) {
	f := newScoringFixture(t)
	flaky := &flakyStore{Store: f.store, failEntity: f.beta.ID}

	t.Run("fail_fast aborts", func(t *testing.T) {
		cfg := &contract.Config{Precision: 2, FailureMode: schema.FailFast}
		_, err := RunScoring(context.Background(), flaky, cfg, f.category.ID, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Beta")
	})

	t.Run("best_effort skips", func(t *testing.T) {
		cfg := &contract.Config{Precision: 2, FailureMode: schema.BestEffort}
		results, err := RunScoring(context.Background(), flaky, cfg, f.category.ID, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, f.alpha.ID, results[0].EntityID)
	})
}

// TestRunScoringOverwrites keeps one final score per (entity, model) across
// reruns.
func TestRunScoringOverwrites(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	_, err := RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	// A new observation flips beta into the lead on championships.
	raw := schema.RawScore{EntityID: f.beta.ID, ComponentID: f.champ.ID, Value: 12, Source: "test"}
	require.NoError(t, f.store.InsertRawScore(ctx, &raw))

	_, err = RunScoring(ctx, f.store, f.cfg, f.category.ID, nil)
	require.NoError(t, err)

	scores, err := f.store.ListFinalScores(ctx, f.category.ID, f.model.ID)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
	assert.Equal(t, f.beta.ID, scores[0].EntityID)
}
