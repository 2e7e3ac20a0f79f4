// Package parquet exports goatrank ranking data to Parquet files using
// github.com/parquet-go/parquet-go, for downstream analytics tools.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/goatarena/goatrank/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRow is one ranked entity in a flat, analytics-friendly shape.
// Breakdown maps flatten to the known overlay columns plus a components
// JSON blob so the schema stays fixed across scoring models.
type RankingRow struct {
	// Rank is the 1-based position in the ranking
	Rank int32 `parquet:"rank,snappy"`

	// EntityID is the ranked entity's identifier
	EntityID string `parquet:"entity_id,snappy"`

	// EntityName is the display name of the entity
	EntityName string `parquet:"entity_name,snappy"`

	// ModelID identifies the scoring model that produced the score
	ModelID string `parquet:"model_id,snappy"`

	// Score is the 0-100 composite score
	Score float64 `parquet:"score,snappy"`

	// ExpertInfluence is the expert overlay contribution (nullable)
	ExpertInfluence *float64 `parquet:"expert_influence,optional,snappy"`

	// FanSentiment is the fan overlay contribution (nullable)
	FanSentiment *float64 `parquet:"fan_sentiment,optional,snappy"`

	// AIInfluence is the influence overlay contribution (nullable)
	AIInfluence *float64 `parquet:"ai_influence,optional,snappy"`

	// Explanation is the human-readable scoring narrative
	Explanation string `parquet:"explanation,snappy"`

	// ScoredAt is when the score was computed
	ScoredAt time.Time `parquet:"scored_at,snappy"`
}

// SnapshotRow is one ranked entry of a point-in-time snapshot.
type SnapshotRow struct {
	// SnapshotID identifies the parent snapshot
	SnapshotID string `parquet:"snapshot_id,snappy"`

	// Label is the snapshot's free-form label (nullable)
	Label *string `parquet:"label,optional,snappy"`

	// Rank is the 1-based position at capture time
	Rank int32 `parquet:"rank,snappy"`

	// EntityID is the ranked entity's identifier
	EntityID string `parquet:"entity_id,snappy"`

	// EntityName is the display name of the entity
	EntityName string `parquet:"entity_name,snappy"`

	// Score is the 0-100 composite score at capture time
	Score float64 `parquet:"score,snappy"`

	// CapturedAt is when the snapshot was taken
	CapturedAt time.Time `parquet:"captured_at,snappy"`
}

// writeParquet writes records to a new Parquet file at outputPath using
// struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteRankingsParquet writes ranked final scores to a Parquet file.
func WriteRankingsParquet(data []RankingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSnapshotParquet writes snapshot entries to a Parquet file.
func WriteSnapshotParquet(data []SnapshotRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// overlayValue pulls an overlay contribution out of a breakdown map,
// returning nil when the model never blended that overlay.
func overlayValue(breakdown map[string]float64, key schema.BreakdownKey) *float64 {
	if v, ok := breakdown[string(key)]; ok {
		return &v
	}
	return nil
}

// ConvertFinalScores converts ranked schema.FinalScore records to RankingRow
// for Parquet export. The input order defines the rank.
func ConvertFinalScores(scores []schema.FinalScore) []RankingRow {
	result := make([]RankingRow, len(scores))
	for i, s := range scores {
		result[i] = RankingRow{
			Rank:            int32(i + 1),
			EntityID:        s.EntityID.String(),
			EntityName:      s.EntityName,
			ModelID:         s.ModelID.String(),
			Score:           s.Score,
			ExpertInfluence: overlayValue(s.Breakdown, schema.BreakdownExpert),
			FanSentiment:    overlayValue(s.Breakdown, schema.BreakdownFan),
			AIInfluence:     overlayValue(s.Breakdown, schema.BreakdownInfluence),
			Explanation:     s.Explanation,
			ScoredAt:        s.UpdatedAt,
		}
	}
	return result
}

// ConvertSnapshot converts a schema.RankingSnapshot to SnapshotRow records
// for Parquet export.
func ConvertSnapshot(snap *schema.RankingSnapshot) []SnapshotRow {
	var label *string
	if snap.Label != "" {
		label = &snap.Label
	}
	result := make([]SnapshotRow, len(snap.Entries))
	for i, e := range snap.Entries {
		result[i] = SnapshotRow{
			SnapshotID: snap.ID.String(),
			Label:      label,
			Rank:       int32(e.Rank),
			EntityID:   e.EntityID.String(),
			EntityName: e.EntityName,
			Score:      e.Score,
			CapturedAt: snap.CreatedAt,
		}
	}
	return result
}
