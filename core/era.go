package core

import (
	"context"
	"fmt"
	"math"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// CalculateEraFactors computes the per-component mean and population
// standard deviation from all raw observations tagged with the era, and
// upserts one EraFactor per (era, component) as a single transactional unit.
//
// Components with zero observations are skipped so any prior factor stays
// untouched. A zero variance forces the standard deviation to the
// schema.StdDevFloor so downstream division stays defined. Existing
// multipliers are preserved by the store upsert.
func CalculateEraFactors(ctx context.Context, store contract.Store, eraID uuid.UUID) error {
	era, err := store.GetEra(ctx, eraID)
	if err != nil {
		return fmt.Errorf("load era: %w", err)
	}
	if era == nil {
		return contract.NewNotFound("era", eraID.String())
	}

	components, err := store.ListComponents(ctx)
	if err != nil {
		return fmt.Errorf("list components: %w", err)
	}

	var factors []schema.EraFactor
	for _, comp := range components {
		values, err := store.ListEraRawValues(ctx, eraID, comp.ID)
		if err != nil {
			return fmt.Errorf("list raw values for component %s: %w", comp.Slug, err)
		}
		if len(values) == 0 {
			continue
		}

		mean, stdDev := meanAndStdDev(values)
		if stdDev == 0 {
			stdDev = schema.StdDevFloor
		}

		factors = append(factors, schema.EraFactor{
			ID:          uuid.New(),
			EraID:       eraID,
			ComponentID: comp.ID,
			Mean:        mean,
			StdDev:      stdDev,
			Multiplier:  1.0, // only applies on create; updates keep the assigned multiplier
		})
	}

	if len(factors) == 0 {
		return nil
	}

	if err := store.UpsertEraFactors(ctx, factors); err != nil {
		return fmt.Errorf("upsert era factors: %w", err)
	}
	return nil
}

// meanAndStdDev returns the arithmetic mean and population standard
// deviation of values.
func meanAndStdDev(values []float64) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var varSum float64
	for _, v := range values {
		d := v - mean
		varSum += d * d
	}
	variance := varSum / n
	if variance <= 0 {
		return mean, 0
	}
	return mean, math.Sqrt(variance)
}

// AdjustForEra applies an era's contextual correction to a normalized value:
// first the factor's multiplier, then a dominance factor rewarding
// above-era-average raw performance. The dominance factor is clamped to
// [schema.DominanceFloor, schema.DominanceCeiling] to bound outlier
// amplification, and the adjusted value is clamped back to [0,1] so a
// component can never contribute more than its full weight.
//
// A missing factor means no adjustment: the value passes through unchanged
// with no explanation fragments. This is a defined fallback, not an error.
func AdjustForEra(ctx context.Context, store contract.Store, normalized, rawValue float64, eraID, componentID uuid.UUID) (float64, []string, error) {
	factor, err := store.GetEraFactor(ctx, eraID, componentID)
	if err != nil {
		return 0, nil, fmt.Errorf("load era factor: %w", err)
	}
	if factor == nil {
		return normalized, nil, nil
	}

	var notes []string
	adjusted := normalized * factor.Multiplier
	notes = append(notes, fmt.Sprintf("Era multiplier %.2f applied", factor.Multiplier))

	eraMean := factor.Mean
	if eraMean == 0 {
		// Factor predates the raw data; fall back to a fresh average.
		values, err := store.ListEraRawValues(ctx, eraID, componentID)
		if err != nil {
			return 0, nil, fmt.Errorf("compute era mean: %w", err)
		}
		for _, v := range values {
			eraMean += v
		}
		if len(values) > 0 {
			eraMean /= float64(len(values))
		}
	}

	if eraMean != 0 {
		dominance := contract.Clamp(rawValue/eraMean, schema.DominanceFloor, schema.DominanceCeiling)
		adjusted *= dominance
		notes = append(notes, fmt.Sprintf("Dominance factor %.2f applied", dominance))
	}

	return clamp01(adjusted), notes, nil
}
