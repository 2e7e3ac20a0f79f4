package core

import (
	"testing"

	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWeights(entries map[uuid.UUID]float64) []schema.ScoringWeight {
	out := make([]schema.ScoringWeight, 0, len(entries))
	for id, w := range entries {
		out = append(out, schema.ScoringWeight{ID: uuid.New(), ComponentID: id, Weight: w})
	}
	return out
}

func sumWeights(m map[uuid.UUID]float64) float64 {
	var s float64
	for _, v := range m {
		s += v
	}
	return s
}

// TestCapAndRenormalizeNoSubjective leaves a valid objective-only set
// untouched.
func TestCapAndRenormalizeNoSubjective(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	components := map[uuid.UUID]schema.ScoringComponent{
		a: {ID: a}, b: {ID: b},
	}
	weights := makeWeights(map[uuid.UUID]float64{a: 0.6, b: 0.4})

	got := CapAndRenormalize(weights, components)

	assert.InDelta(t, 0.6, got[a], 1e-9)
	assert.InDelta(t, 0.4, got[b], 1e-9)
	assert.InDelta(t, 1.0, sumWeights(got), 1e-9)
}

// TestCapAndRenormalizeCapsSubjective pins an oversized subjective weight at
// the cap and hands the freed mass to the objective components.
func TestCapAndRenormalizeCapsSubjective(t *testing.T) {
	fan, champ := uuid.New(), uuid.New()
	components := map[uuid.UUID]schema.ScoringComponent{
		fan:   {ID: fan, IsSubjective: true},
		champ: {ID: champ},
	}
	weights := makeWeights(map[uuid.UUID]float64{fan: 0.3, champ: 0.7})

	got := CapAndRenormalize(weights, components)

	assert.InDelta(t, schema.SubjectiveWeightCap, got[fan], 1e-9)
	assert.InDelta(t, 0.9, got[champ], 1e-9)
	assert.InDelta(t, 1.0, sumWeights(got), 1e-9)
}

// TestCapAndRenormalizeIdempotent applies the operation twice and expects
// identical output, the fixed-point property.
func TestCapAndRenormalizeIdempotent(t *testing.T) {
	fan, hype, champ, mvp := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	components := map[uuid.UUID]schema.ScoringComponent{
		fan:   {ID: fan, IsSubjective: true},
		hype:  {ID: hype, IsSubjective: true},
		champ: {ID: champ},
		mvp:   {ID: mvp},
	}
	weights := makeWeights(map[uuid.UUID]float64{fan: 0.4, hype: 0.09, champ: 0.31, mvp: 0.2})

	once := CapAndRenormalize(weights, components)
	require.InDelta(t, 1.0, sumWeights(once), 1e-9)

	onceAsWeights := make([]schema.ScoringWeight, 0, len(once))
	for id, w := range once {
		onceAsWeights = append(onceAsWeights, schema.ScoringWeight{ComponentID: id, Weight: w})
	}
	twice := CapAndRenormalize(onceAsWeights, components)

	for id := range once {
		assert.InDelta(t, once[id], twice[id], 1e-9, "component %s drifted between passes", id)
	}
}

// TestCapAndRenormalizeSubjectiveNeverExceedsCap checks the fixed point even
// when rescaling would push a second subjective weight over the cap.
func TestCapAndRenormalizeSubjectiveNeverExceedsCap(t *testing.T) {
	s1, s2, obj := uuid.New(), uuid.New(), uuid.New()
	components := map[uuid.UUID]schema.ScoringComponent{
		s1:  {ID: s1, IsSubjective: true},
		s2:  {ID: s2, IsSubjective: true},
		obj: {ID: obj},
	}
	// s2 starts below the cap but a naive rescale would lift it above.
	weights := makeWeights(map[uuid.UUID]float64{s1: 0.5, s2: 0.095, obj: 0.405})

	got := CapAndRenormalize(weights, components)

	assert.LessOrEqual(t, got[s1], schema.SubjectiveWeightCap+1e-9)
	assert.LessOrEqual(t, got[s2], schema.SubjectiveWeightCap+1e-9)
	assert.InDelta(t, 1.0, sumWeights(got), 1e-9)
}

// TestCapAndRenormalizeDegenerate returns zero weights unmodified.
func TestCapAndRenormalizeDegenerate(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	components := map[uuid.UUID]schema.ScoringComponent{a: {ID: a}, b: {ID: b}}
	weights := makeWeights(map[uuid.UUID]float64{a: 0, b: 0})

	got := CapAndRenormalize(weights, components)

	assert.Equal(t, 0.0, got[a])
	assert.Equal(t, 0.0, got[b])
}
