package schema

import (
	"time"

	"github.com/google/uuid"
)

// Era is a (category, time span) context bucket used to normalize
// achievements across different competitive periods.
type Era struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	StartYear  int       `db:"start_year" json:"start_year"`
	EndYear    int       `db:"end_year" json:"end_year"`
	Context    string    `db:"context" json:"context"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// EraFactor holds the computed mean and standard deviation of a component's
// raw scores within an era, plus a manually assigned multiplier capturing
// contextual difficulty. Unique per (era, component); recalculation preserves
// the multiplier.
type EraFactor struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EraID       uuid.UUID `db:"era_id" json:"era_id"`
	ComponentID uuid.UUID `db:"component_id" json:"component_id"`
	Mean        float64   `db:"mean_value" json:"mean"`
	StdDev      float64   `db:"std_dev" json:"std_dev"`
	Multiplier  float64   `db:"multiplier" json:"multiplier"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
