package schema

import (
	"time"

	"github.com/google/uuid"
)

// InfluenceSource identifies where influence evidence comes from (press,
// peer interviews, archives). Credibility feeds the confidence signal.
type InfluenceSource struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	CredibilityScore float64   `db:"credibility_score" json:"credibility_score"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// InfluenceEvent is one piece of event-level evidence for an entity.
// SourceCredibility is joined in from the source record on read.
type InfluenceEvent struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	EntityID          uuid.UUID          `db:"entity_id" json:"entity_id"`
	SourceID          uuid.UUID          `db:"source_id" json:"source_id"`
	EventType         InfluenceEventType `db:"event_type" json:"event_type"`
	Weight            float64            `db:"weight" json:"weight"`
	EventDate         *time.Time         `db:"event_date" json:"event_date,omitempty"`
	Description       string             `db:"description" json:"description"`
	SourceCredibility float64            `db:"source_credibility" json:"source_credibility"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
}

// InfluenceWeights is the fixed-shape weight record for blending the four
// influence sub-scores. Zero-valued fields fall back to 0.25 so a partially
// specified model still blends to a full weight set.
type InfluenceWeights struct {
	Breadth   float64 `db:"breadth_weight" json:"breadth"`
	Depth     float64 `db:"depth_weight" json:"depth"`
	Longevity float64 `db:"longevity_weight" json:"longevity"`
	Peer      float64 `db:"peer_weight" json:"peer"`
}

// DefaultInfluenceWeight fills unspecified influence weights.
const DefaultInfluenceWeight = 0.25

// Normalized returns the weights with zero fields replaced by the default.
func (w InfluenceWeights) Normalized() InfluenceWeights {
	out := w
	if out.Breadth == 0 {
		out.Breadth = DefaultInfluenceWeight
	}
	if out.Depth == 0 {
		out.Depth = DefaultInfluenceWeight
	}
	if out.Longevity == 0 {
		out.Longevity = DefaultInfluenceWeight
	}
	if out.Peer == 0 {
		out.Peer = DefaultInfluenceWeight
	}
	return out
}

// InfluenceModel configures how the four influence sub-scores blend for a
// category. At most one model per category is active at a time.
type InfluenceModel struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	CategoryID uuid.UUID        `db:"category_id" json:"category_id"`
	Name       string           `db:"name" json:"name"`
	IsActive   bool             `db:"is_active" json:"is_active"`
	Weights    InfluenceWeights `json:"weights"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// InfluenceScore is the calculator output for one (entity, model) pair.
// Unique per pair; recalculation overwrites the prior breakdown and
// explanation. Confidence is a data-sufficiency signal, not a score-accuracy
// signal.
type InfluenceScore struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EntityID    uuid.UUID `db:"entity_id" json:"entity_id"`
	ModelID     uuid.UUID `db:"model_id" json:"model_id"`
	Breadth     float64   `db:"breadth_score" json:"breadth_score"`
	Depth       float64   `db:"depth_score" json:"depth_score"`
	Longevity   float64   `db:"longevity_score" json:"longevity_score"`
	Peer        float64   `db:"peer_score" json:"peer_score"`
	Total       float64   `db:"total_score" json:"total_score"`
	Confidence  float64   `db:"confidence_score" json:"confidence_score"`
	EventCount  int       `db:"event_count" json:"event_count"`
	Explanation string    `db:"explanation" json:"explanation"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Influence sub-score scaling constants. Each sub-score saturates at 100.
const (
	BreadthPerSource   = 10.0 // 10 distinct sources max out breadth
	DepthLogScale      = 20.0 // logarithmic to dampen power-law outliers
	LongevityPerYear   = 5.0  // 20 years of span max out longevity
	PeerMentionScale   = 25.0
	ConfidenceDensityN = 10.0 // events needed for full data-density credit
)
