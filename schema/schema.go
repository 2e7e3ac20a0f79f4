// Package schema has the domain records, configs and constants shared by all
// parts of goatrank.
package schema

import (
	"time"

	"github.com/google/uuid"
)

// Category is a domain grouping (e.g. "Basketball"). It owns subcategories,
// entities, scoring models, eras and influence models.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SubCategory is a finer grouping inside a category (e.g. "Point Guards").
type SubCategory struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Entity is a ranked subject, a GOAT candidate. Each entity belongs to
// exactly one category and one subcategory.
type Entity struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CategoryID    uuid.UUID `db:"category_id" json:"category_id"`
	SubCategoryID uuid.UUID `db:"subcategory_id" json:"subcategory_id"`
	Name          string    `db:"name" json:"name"`
	Slug          string    `db:"slug" json:"slug"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ScoringComponent is a named metric type (e.g. "Championships").
// Subjective components (fan-style metrics) get capped influence during
// weight renormalization.
type ScoringComponent struct {
	ID                uuid.UUID           `db:"id" json:"id"`
	Name              string              `db:"name" json:"name"`
	Slug              string              `db:"slug" json:"slug"`
	NormalizationType NormalizationMethod `db:"normalization_type" json:"normalization_type"`
	IsSubjective      bool                `db:"is_subjective" json:"is_subjective"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
}

// ScoringModel groups weighted components for a category. At most one model
// per category is active at a time.
type ScoringModel struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	Version    int       `db:"version" json:"version"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ScoringWeight assigns a weight in [0,1] to a component within a model.
// Weights across a model must sum to 1.0 (±0.01) at creation time.
type ScoringWeight struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ModelID     uuid.UUID `db:"model_id" json:"model_id"`
	ComponentID uuid.UUID `db:"component_id" json:"component_id"`
	Weight      float64   `db:"weight" json:"weight"`
}

// RawScore is one observed (entity, component, value) triple, optionally
// tagged with an era. Multiple observations may exist per pair; the pipeline
// only ever consumes the latest one ("latest wins", ties broken by highest
// insertion seq).
type RawScore struct {
	Seq         int64      `db:"seq" json:"seq"`
	ID          uuid.UUID  `db:"id" json:"id"`
	EntityID    uuid.UUID  `db:"entity_id" json:"entity_id"`
	ComponentID uuid.UUID  `db:"component_id" json:"component_id"`
	Value       float64    `db:"value" json:"value"`
	EraID       *uuid.UUID `db:"era_id" json:"era_id,omitempty"`
	Source      string     `db:"source" json:"source"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ComponentStats holds the reference distribution used for normalization.
// The stats are computed over the latest raw score per entity within one
// category, never globally.
type ComponentStats struct {
	Min    float64 `db:"min_value" json:"min"`
	Max    float64 `db:"max_value" json:"max"`
	Mean   float64 `db:"mean_value" json:"mean"`
	StdDev float64 `db:"std_dev" json:"stddev"`
	Count  int     `db:"sample_count" json:"count"`
}

// FinalScore is the pipeline output for one (entity, model) pair: a 0-100
// composite score with a per-component breakdown and a human-readable
// explanation. Re-running the pipeline replaces the prior record in place.
type FinalScore struct {
	ID          uuid.UUID          `db:"id" json:"id"`
	EntityID    uuid.UUID          `db:"entity_id" json:"entity_id"`
	EntityName  string             `db:"entity_name" json:"entity_name"`
	ModelID     uuid.UUID          `db:"model_id" json:"model_id"`
	Score       float64            `db:"score" json:"score"`
	Breakdown   map[string]float64 `db:"-" json:"breakdown"`
	Explanation string             `db:"explanation" json:"explanation"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// SnapshotEntry is one ranked row inside a snapshot.
type SnapshotEntry struct {
	Rank       int                `json:"rank"`
	EntityID   uuid.UUID          `json:"entity_id"`
	EntityName string             `json:"entity_name"`
	Score      float64            `json:"score"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// RankingSnapshot is an immutable point-in-time capture of a category's
// ranked final scores. Snapshots are created on demand and never mutated.
type RankingSnapshot struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	CategoryID uuid.UUID       `db:"category_id" json:"category_id"`
	ModelID    uuid.UUID       `db:"model_id" json:"model_id"`
	Label      string          `db:"label" json:"label"`
	Entries    []SnapshotEntry `db:"-" json:"entries"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// StoreStatus summarizes the datastore for diagnostics.
type StoreStatus struct {
	Backend      string     `json:"backend"`
	Connected    bool       `json:"connected"`
	Categories   int        `json:"categories"`
	Entities     int        `json:"entities"`
	RawScores    int        `json:"raw_scores"`
	FinalScores  int        `json:"final_scores"`
	Snapshots    int        `json:"snapshots"`
	LastScoredAt *time.Time `json:"last_scored_at,omitempty"`
}
