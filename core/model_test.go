package core

import (
	"context"
	"testing"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModelFixture(t *testing.T) (*goatstore.MockStore, schema.Category, []schema.ScoringComponent) {
	t.Helper()
	ctx := context.Background()
	store := goatstore.NewMockStore()

	category := schema.Category{ID: uuid.New(), Name: "Basketball", Slug: "basketball"}
	require.NoError(t, store.InsertCategory(ctx, &category))

	components := []schema.ScoringComponent{
		{ID: uuid.New(), Name: "Championships", Slug: "championships", NormalizationType: schema.MinMaxNormalization},
		{ID: uuid.New(), Name: "MVP Awards", Slug: "mvp-awards", NormalizationType: schema.MinMaxNormalization},
	}
	for i := range components {
		require.NoError(t, store.InsertComponent(ctx, &components[i]))
	}
	return store, category, components
}

// TestCreateScoringModel persists a valid model with its weights.
func TestCreateScoringModel(t *testing.T) {
	store, category, components := newModelFixture(t)
	ctx := context.Background()

	model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "default", Version: 1, IsActive: true}
	err := CreateScoringModel(ctx, store, &model, []schema.ScoringWeight{
		{ComponentID: components[0].ID, Weight: 0.6},
		{ComponentID: components[1].ID, Weight: 0.4},
	})
	require.NoError(t, err)

	weights, err := store.ListModelWeights(ctx, model.ID)
	require.NoError(t, err)
	require.Len(t, weights, 2)
	for _, w := range weights {
		assert.Equal(t, model.ID, w.ModelID)
		assert.NotEqual(t, uuid.Nil, w.ID)
	}
}

// TestCreateScoringModelToleratesSmallDrift accepts a sum within ±0.01.
func TestCreateScoringModelToleratesSmallDrift(t *testing.T) {
	store, category, components := newModelFixture(t)

	model := schema.ScoringModel{ID: uuid.New(), CategoryID: category.ID, Name: "default", Version: 1}
	err := CreateScoringModel(context.Background(), store, &model, []schema.ScoringWeight{
		{ComponentID: components[0].ID, Weight: 0.6},
		{ComponentID: components[1].ID, Weight: 0.405},
	})
	require.NoError(t, err)
}

// TestCreateScoringModelRejections covers every validation gate.
func TestCreateScoringModelRejections(t *testing.T) {
	store, category, components := newModelFixture(t)

	tests := []struct {
		name     string
		category uuid.UUID
		weights  []schema.ScoringWeight
		notFound bool
	}{
		{
			name:     "unknown category",
			category: uuid.New(),
			weights:  []schema.ScoringWeight{{ComponentID: components[0].ID, Weight: 1.0}},
			notFound: true,
		},
		{
			name:     "no weights",
			category: category.ID,
			weights:  nil,
		},
		{
			name:     "unknown component",
			category: category.ID,
			weights:  []schema.ScoringWeight{{ComponentID: uuid.New(), Weight: 1.0}},
			notFound: true,
		},
		{
			name:     "duplicate component",
			category: category.ID,
			weights: []schema.ScoringWeight{
				{ComponentID: components[0].ID, Weight: 0.5},
				{ComponentID: components[0].ID, Weight: 0.5},
			},
		},
		{
			name:     "weight out of range",
			category: category.ID,
			weights: []schema.ScoringWeight{
				{ComponentID: components[0].ID, Weight: 1.4},
				{ComponentID: components[1].ID, Weight: -0.4},
			},
		},
		{
			name:     "sum far from one",
			category: category.ID,
			weights: []schema.ScoringWeight{
				{ComponentID: components[0].ID, Weight: 0.5},
				{ComponentID: components[1].ID, Weight: 0.3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := schema.ScoringModel{ID: uuid.New(), CategoryID: tt.category, Name: "bad", Version: 1}
			err := CreateScoringModel(context.Background(), store, &model, tt.weights)
			require.Error(t, err)
			if tt.notFound {
				assert.True(t, contract.IsNotFound(err))
			} else {
				assert.True(t, contract.IsValidation(err))
			}
		})
	}
}
