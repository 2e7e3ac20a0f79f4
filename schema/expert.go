package schema

import (
	"time"

	"github.com/google/uuid"
)

// Expert is a vetted voter whose contributions are weighted by reputation
// and per-category expertise. Only active, verified experts may vote.
type Expert struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	ReputationScore    float64   `db:"reputation_score" json:"reputation_score"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	VerificationStatus bool      `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// ExpertDomain declares an expert's expertise level in [0,1] for one
// category. An expert with no domain entry for a category contributes zero
// weight there.
type ExpertDomain struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ExpertID       uuid.UUID `db:"expert_id" json:"expert_id"`
	CategoryID     uuid.UUID `db:"category_id" json:"category_id"`
	ExpertiseLevel float64   `db:"expertise_level" json:"expertise_level"`
}

// ExpertVote is one expert's rating of an entity under a scoring model.
// Score is on the 0-10 scale, confidence in [0,1]. One vote per
// (expert, entity, model); resubmission is rejected, not overwritten.
type ExpertVote struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ExpertID   uuid.UUID `db:"expert_id" json:"expert_id"`
	EntityID   uuid.UUID `db:"entity_id" json:"entity_id"`
	ModelID    uuid.UUID `db:"model_id" json:"model_id"`
	Score      float64   `db:"score" json:"score"`
	Confidence float64   `db:"confidence" json:"confidence"`
	Rationale  string    `db:"rationale" json:"rationale"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Reputation factor clamp for expert vote weighting.
const (
	ReputationFloor   = 0.5
	ReputationCeiling = 1.5
)
