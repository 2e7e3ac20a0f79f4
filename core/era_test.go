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

func seedEraFixture(t *testing.T, store *goatstore.MockStore) (eraID, componentID, entityID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	category := schema.Category{ID: uuid.New(), Name: "Basketball", Slug: "basketball"}
	require.NoError(t, store.InsertCategory(ctx, &category))

	era := schema.Era{ID: uuid.New(), CategoryID: category.ID, Name: "90s", StartYear: 1990, EndYear: 1999}
	require.NoError(t, store.InsertEra(ctx, &era))

	component := schema.ScoringComponent{
		ID:                uuid.New(),
		Name:              "Championships",
		Slug:              "championships",
		NormalizationType: schema.MinMaxNormalization,
	}
	require.NoError(t, store.InsertComponent(ctx, &component))

	entity := schema.Entity{ID: uuid.New(), CategoryID: category.ID, Name: "Jordan", Slug: "jordan"}
	require.NoError(t, store.InsertEntity(ctx, &entity))

	return era.ID, component.ID, entity.ID
}

func insertEraRaw(t *testing.T, store *goatstore.MockStore, entityID, componentID, eraID uuid.UUID, values ...float64) {
	t.Helper()
	ctx := context.Background()
	for _, v := range values {
		raw := schema.RawScore{
			EntityID:    entityID,
			ComponentID: componentID,
			Value:       v,
			EraID:       &eraID,
			Source:      "test",
		}
		require.NoError(t, store.InsertRawScore(ctx, &raw))
	}
}

// TestCalculateEraFactors computes mean and population stddev from tagged
// observations and writes one factor per component.
func TestCalculateEraFactors(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID, entityID := seedEraFixture(t, store)
	insertEraRaw(t, store, entityID, componentID, eraID, 2, 4, 6)

	require.NoError(t, CalculateEraFactors(context.Background(), store, eraID))

	factor, err := store.GetEraFactor(context.Background(), eraID, componentID)
	require.NoError(t, err)
	require.NotNil(t, factor)
	assert.InDelta(t, 4.0, factor.Mean, 1e-9)
	// Population stddev of {2,4,6} is sqrt(8/3).
	assert.InDelta(t, 1.632993, factor.StdDev, 1e-5)
	assert.Equal(t, 1.0, factor.Multiplier)
}

// TestCalculateEraFactorsStdDevFloor forces the floor when every observation
// is identical.
func TestCalculateEraFactorsStdDevFloor(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID, entityID := seedEraFixture(t, store)
	insertEraRaw(t, store, entityID, componentID, eraID, 5, 5, 5)

	require.NoError(t, CalculateEraFactors(context.Background(), store, eraID))

	factor, err := store.GetEraFactor(context.Background(), eraID, componentID)
	require.NoError(t, err)
	require.NotNil(t, factor)
	assert.Equal(t, schema.StdDevFloor, factor.StdDev)
}

// TestCalculateEraFactorsPreservesMultiplier recalculates over an existing
// factor and expects the assigned multiplier to survive.
func TestCalculateEraFactorsPreservesMultiplier(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID, entityID := seedEraFixture(t, store)
	insertEraRaw(t, store, entityID, componentID, eraID, 3, 9)

	require.NoError(t, CalculateEraFactors(context.Background(), store, eraID))

	existing, err := store.GetEraFactor(context.Background(), eraID, componentID)
	require.NoError(t, err)
	existing.Multiplier = 1.3
	store.SetEraFactor(*existing)

	insertEraRaw(t, store, entityID, componentID, eraID, 12)
	require.NoError(t, CalculateEraFactors(context.Background(), store, eraID))

	factor, err := store.GetEraFactor(context.Background(), eraID, componentID)
	require.NoError(t, err)
	assert.Equal(t, 1.3, factor.Multiplier)
	assert.InDelta(t, 8.0, factor.Mean, 1e-9)
}

// TestCalculateEraFactorsUnknownEra returns a not-found error.
func TestCalculateEraFactorsUnknownEra(t *testing.T) {
	store := goatstore.NewMockStore()

	err := CalculateEraFactors(context.Background(), store, uuid.New())

	require.Error(t, err)
	assert.True(t, contract.IsNotFound(err))
}

// TestCalculateEraFactorsNoObservations is a no-op rather than an error.
func TestCalculateEraFactorsNoObservations(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID, _ := seedEraFixture(t, store)

	require.NoError(t, CalculateEraFactors(context.Background(), store, eraID))

	factor, err := store.GetEraFactor(context.Background(), eraID, componentID)
	require.NoError(t, err)
	assert.Nil(t, factor)
}

// TestAdjustForEraPassthrough leaves the value untouched when no factor
// exists for the pair.
func TestAdjustForEraPassthrough(t *testing.T) {
	store := goatstore.NewMockStore()

	adjusted, notes, err := AdjustForEra(context.Background(), store, 0.75, 30, uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, 0.75, adjusted)
	assert.Empty(t, notes)
}

// TestAdjustForEraMultiplierAndDominance applies both corrections in order.
func TestAdjustForEraMultiplierAndDominance(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID := uuid.New(), uuid.New()
	store.SetEraFactor(schema.EraFactor{
		ID:          uuid.New(),
		EraID:       eraID,
		ComponentID: componentID,
		Mean:        10,
		StdDev:      2,
		Multiplier:  1.2,
	})

	// Raw 15 vs era mean 10 gives dominance 1.5.
	adjusted, notes, err := AdjustForEra(context.Background(), store, 0.5, 15, eraID, componentID)

	require.NoError(t, err)
	assert.InDelta(t, 0.5*1.2*1.5, adjusted, 1e-9)
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "multiplier 1.20")
	assert.Contains(t, notes[1], "Dominance factor 1.50")
}

// TestAdjustForEraDominanceClamps bounds the dominance factor on both ends.
func TestAdjustForEraDominanceClamps(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID := uuid.New(), uuid.New()
	store.SetEraFactor(schema.EraFactor{
		EraID:       eraID,
		ComponentID: componentID,
		Mean:        10,
		StdDev:      2,
		Multiplier:  1.0,
	})

	t.Run("ceiling", func(t *testing.T) {
		adjusted, _, err := AdjustForEra(context.Background(), store, 0.4, 100, eraID, componentID)
		require.NoError(t, err)
		assert.InDelta(t, 0.4*schema.DominanceCeiling, adjusted, 1e-9)
	})

	t.Run("floor", func(t *testing.T) {
		adjusted, _, err := AdjustForEra(context.Background(), store, 0.4, 0.1, eraID, componentID)
		require.NoError(t, err)
		assert.InDelta(t, 0.4*schema.DominanceFloor, adjusted, 1e-9)
	})
}

// TestAdjustForEraClampsToUnit never lets the adjusted value exceed 1.
func TestAdjustForEraClampsToUnit(t *testing.T) {
	store := goatstore.NewMockStore()
	eraID, componentID := uuid.New(), uuid.New()
	store.SetEraFactor(schema.EraFactor{
		EraID:       eraID,
		ComponentID: componentID,
		Mean:        10,
		StdDev:      2,
		Multiplier:  1.5,
	})

	adjusted, _, err := AdjustForEra(context.Background(), store, 0.9, 50, eraID, componentID)

	require.NoError(t, err)
	assert.Equal(t, 1.0, adjusted)
}
