package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"legendary at boundary", 80, LegendaryValue},
		{"legendary above", 97.5, LegendaryValue},
		{"elite at boundary", 60, EliteValue},
		{"great at boundary", 40, GreatValue},
		{"contender below", 39.99, ContenderValue},
		{"contender at zero", 0, ContenderValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainLabel(tt.score))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	assert.Contains(t, GetColorLabel(85), LegendaryValue)
	assert.Contains(t, GetColorLabel(65), EliteValue)
	assert.Contains(t, GetColorLabel(45), GreatValue)
	assert.Contains(t, GetColorLabel(5), ContenderValue)
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"round down", 1.234, 2, 1.23},
		{"round up", 1.235, 2, 1.24},
		{"zero places", 1.6, 0, 2},
		{"already exact", 5.5, 1, 5.5},
		// math.Round rounds halves away from zero.
		{"negative value", -1.235, 2, -1.24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 1e-9)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.2, 0.5, 1.5))
	assert.Equal(t, 1.5, Clamp(2.0, 0.5, 1.5))
	assert.Equal(t, 1.0, Clamp(1.0, 0.5, 1.5))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path falls back to stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, "/dev/stdout", f.Name())
	})

	t.Run("creates the named file", func(t *testing.T) {
		path := t.TempDir() + "/out.txt"
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, path, f.Name())
	})
}
