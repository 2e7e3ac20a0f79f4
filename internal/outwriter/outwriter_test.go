package outwriter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedScores() []schema.FinalScore {
	return []schema.FinalScore{
		{
			ID:         uuid.New(),
			EntityID:   uuid.New(),
			EntityName: "Jordan",
			ModelID:    uuid.New(),
			Score:      96.43,
			Breakdown: map[string]float64{
				"championships":                60.0,
				"mvp-awards":                   36.4,
				string(schema.BreakdownExpert): 87.5,
			},
			Explanation: "championships: dominant",
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New(),
			EntityID:    uuid.New(),
			EntityName:  "Russell",
			ModelID:     uuid.New(),
			Score:       88.17,
			Breakdown:   map[string]float64{"championships": 55.0},
			Explanation: "championships: strong",
			UpdatedAt:   time.Now(),
		},
	}
}

func outputConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		ResultLimit: 25,
		Precision:   2,
		Output:      output,
		OutputFile:  filepath.Join(t.TempDir(), "out."+string(output)),
		Width:       120,
		Color:       false,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(data)
}

func TestWriteRankingResults_Table(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)
	cfg.Explain = true

	ow := NewOutWriter()
	require.NoError(t, ow.WriteRankings(rankedScores(), cfg, 42*time.Millisecond))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "Jordan")
	assert.Contains(t, got, "96.43")
	assert.Contains(t, got, contract.LegendaryValue)
	assert.Contains(t, got, "championships > mvp-awards")
	assert.Contains(t, got, "Showing top 2 entities")
}

func TestWriteRankingResults_CSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut)

	require.NoError(t, WriteRankingResults(rankedScores(), cfg, time.Millisecond))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "rank,entity,score,label,explanation")
	assert.Contains(t, got, "1,Jordan,96.43,Legendary")
	assert.Contains(t, got, "2,Russell,88.17,Legendary")
}

func TestWriteRankingResults_JSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut)

	require.NoError(t, WriteRankingResults(rankedScores(), cfg, time.Millisecond))

	got := readOutput(t, cfg)
	assert.Contains(t, got, `"rank": 1`)
	assert.Contains(t, got, `"entity_name": "Jordan"`)
	assert.Contains(t, got, `"label": "Legendary"`)
}

func TestWriteRankingResults_Parquet(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut)

	require.NoError(t, WriteRankingResults(rankedScores(), cfg, time.Millisecond))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteRankingResults_ParquetNeedsFile(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut)
	cfg.OutputFile = ""

	err := WriteRankingResults(rankedScores(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output-file")
}

func TestWriteSnapshotResults_Table(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)

	snap := &schema.RankingSnapshot{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		ModelID:    uuid.New(),
		Label:      "post-season",
		Entries: []schema.SnapshotEntry{
			{Rank: 1, EntityID: uuid.New(), EntityName: "Jordan", Score: 96.43},
			{Rank: 2, EntityID: uuid.New(), EntityName: "Russell", Score: 88.17},
		},
		CreatedAt: time.Now(),
	}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteSnapshot(snap, cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "post-season")
	assert.Contains(t, got, "Jordan")
	assert.Contains(t, got, "Snapshot holds 2 entries")
}

func TestWriteSnapshotResults_CSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut)

	snap := &schema.RankingSnapshot{
		ID:    uuid.New(),
		Label: "midseason",
		Entries: []schema.SnapshotEntry{
			{Rank: 1, EntityID: uuid.New(), EntityName: "Jordan", Score: 90},
		},
	}
	require.NoError(t, WriteSnapshotResults(snap, cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "rank,entity,score,label,snapshot_id,snapshot_label")
	assert.Contains(t, got, "midseason")
}

func TestWriteInfluenceResult_Table(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)

	score := &schema.InfluenceScore{
		EntityID: uuid.New(), ModelID: uuid.New(),
		Breadth: 20, Depth: 30.08, Longevity: 50, Peer: 37.5,
		Total: 34.4, Confidence: 0.14, EventCount: 2,
		Explanation: "Breadth 20.0 from 2 sources",
	}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteInfluence(score, "Jordan", cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "Influence score for Jordan")
	assert.Contains(t, got, "Peer Recognition")
	assert.Contains(t, got, "Confidence: 0.14 (2 events)")
	assert.Contains(t, got, "Breadth 20.0 from 2 sources")
}

func TestWriteInfluenceResult_JSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut)

	score := &schema.InfluenceScore{EntityID: uuid.New(), ModelID: uuid.New(), Total: 34.4}
	require.NoError(t, WriteInfluenceResult(score, "Jordan", cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, `"entity_name": "Jordan"`)
	assert.Contains(t, got, `"total_score": 34.4`)
}

func TestWriteEraFactorResults_Table(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)

	rows := []EraFactorRow{
		{ComponentName: "championships", Factor: schema.EraFactor{Mean: 4, StdDev: 1.63, Multiplier: 1.3}},
		{ComponentName: "mvp-awards", Factor: schema.EraFactor{Mean: 2, StdDev: 0.5, Multiplier: 1.0}},
	}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteEraFactors(rows, "90s", cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "Era factors for 90s")
	assert.Contains(t, got, "championships")
	assert.Contains(t, got, "1.30")
	assert.Contains(t, got, "Computed factors for 2 components")
}

func TestWriteStatusResult_Table(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)

	scoredAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	status := &schema.StoreStatus{
		Backend: "sqlite", Connected: true,
		Categories: 1, Entities: 4, RawScores: 12, FinalScores: 4, Snapshots: 1,
		LastScoredAt: &scoredAt,
	}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteStatus(status, cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "sqlite")
	assert.Contains(t, got, "2026-03-01")
	assert.NotContains(t, got, "Store is not reachable")
}

func TestWriteStatusResult_NeverScored(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)

	status := &schema.StoreStatus{Backend: "sqlite", Connected: false}
	require.NoError(t, WriteStatusResult(status, cfg))

	got := readOutput(t, cfg)
	assert.Contains(t, got, "never")
	assert.Contains(t, got, "Store is not reachable")
}
