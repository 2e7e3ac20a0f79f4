package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfluenceWeightsNormalized(t *testing.T) {
	tests := []struct {
		name  string
		input InfluenceWeights
		want  InfluenceWeights
	}{
		{
			name:  "all zero falls back to defaults",
			input: InfluenceWeights{},
			want:  InfluenceWeights{Breadth: 0.25, Depth: 0.25, Longevity: 0.25, Peer: 0.25},
		},
		{
			name:  "partial weights keep set values",
			input: InfluenceWeights{Breadth: 0.4, Peer: 0.1},
			want:  InfluenceWeights{Breadth: 0.4, Depth: 0.25, Longevity: 0.25, Peer: 0.1},
		},
		{
			name:  "fully specified weights unchanged",
			input: InfluenceWeights{Breadth: 0.3, Depth: 0.3, Longevity: 0.2, Peer: 0.2},
			want:  InfluenceWeights{Breadth: 0.3, Depth: 0.3, Longevity: 0.2, Peer: 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Normalized())
		})
	}
}

func TestValidEnumMaps(t *testing.T) {
	assert.Contains(t, ValidOutputModes, TextOut)
	assert.Contains(t, ValidOutputModes, ParquetOut)
	assert.NotContains(t, ValidOutputModes, OutputMode("xml"))

	assert.Contains(t, ValidDatabaseBackends, SQLiteBackend)
	assert.Contains(t, ValidDatabaseBackends, PostgreSQLBackend)
	assert.NotContains(t, ValidDatabaseBackends, DatabaseBackend("oracle"))

	assert.Contains(t, ValidFailureModes, FailFast)
	assert.Contains(t, ValidFailureModes, BestEffort)
}

func TestOverlayWeightsSumBelowOne(t *testing.T) {
	// Overlays blend sequentially, so each weight must leave room for the
	// running total.
	for _, w := range []float64{ExpertOverlayWeight, FanOverlayWeight, InfluenceOverlayWeight} {
		assert.Greater(t, w, 0.0)
		assert.Less(t, w, 1.0)
	}
}
