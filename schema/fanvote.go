package schema

import (
	"time"

	"github.com/google/uuid"
)

// FanVote is one user's rating of an entity within a category. Rating is on
// the 0-10 scale; weight reflects the user's trust score. Resubmission
// replaces the user's prior vote (the old value is kept as a version row).
type FanVote struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	EntityID   uuid.UUID `db:"entity_id" json:"entity_id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Rating     float64   `db:"rating" json:"rating"`
	Weight     float64   `db:"weight" json:"weight"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FanVoteVersion preserves a replaced fan vote for audit purposes.
type FanVoteVersion struct {
	ID        uuid.UUID `db:"id" json:"id"`
	VoteID    uuid.UUID `db:"vote_id" json:"vote_id"`
	Rating    float64   `db:"rating" json:"rating"`
	Weight    float64   `db:"weight" json:"weight"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FanVoteAggregate is the running weighted-average rating for an
// (entity, category) pair on the 0-100 scale, recomputed synchronously after
// every fan vote.
type FanVoteAggregate struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EntityID   uuid.UUID `db:"entity_id" json:"entity_id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Score      float64   `db:"aggregate_score" json:"aggregate_score"`
	VoteCount  int       `db:"vote_count" json:"vote_count"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FanRating bounds for vote validation.
const (
	FanRatingMin = 0.0
	FanRatingMax = 10.0
)
