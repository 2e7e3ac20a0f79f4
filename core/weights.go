package core

import (
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// maxCapIterations bounds the fixed-point loop in CapAndRenormalize. Each
// iteration pins at least one more subjective weight to the cap, so the loop
// terminates after at most len(weights) passes; the bound is a safety net.
const maxCapIterations = 16

// CapAndRenormalize caps every subjective component weight at
// schema.SubjectiveWeightCap and rescales the remaining weights so the set
// sums to 1.0 again. It is a pure function and runs once per scoring pass
// per model. Weights are model-level, not entity-level.
//
// The rescale runs to a fixed point: capped subjective weights stay pinned
// while uncapped weights absorb the freed mass, repeating if the rescale
// pushes another subjective weight over the cap. The fixed point makes the
// operation idempotent.
//
// A degenerate input whose capped sum is <= 0 is returned capped but not
// rescaled.
func CapAndRenormalize(weights []schema.ScoringWeight, components map[uuid.UUID]schema.ScoringComponent) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(weights))
	subjective := make(map[uuid.UUID]bool, len(weights))

	var sum float64
	for _, w := range weights {
		v := w.Weight
		if comp, ok := components[w.ComponentID]; ok && comp.IsSubjective {
			subjective[w.ComponentID] = true
			if v > schema.SubjectiveWeightCap {
				v = schema.SubjectiveWeightCap
			}
		}
		out[w.ComponentID] = v
		sum += v
	}

	if sum <= 0 {
		return out
	}

	for range maxCapIterations {
		pinnedMass := 0.0
		uncappedMass := 0.0
		for id, v := range out {
			if subjective[id] && v >= schema.SubjectiveWeightCap {
				pinnedMass += schema.SubjectiveWeightCap
			} else {
				uncappedMass += v
			}
		}

		if uncappedMass <= 0 {
			// Nothing left to absorb the remainder; fall back to a plain
			// proportional rescale of whatever is there.
			total := pinnedMass + uncappedMass
			if total > 0 {
				for id, v := range out {
					out[id] = v / total
				}
			}
			return out
		}

		scale := (1.0 - pinnedMass) / uncappedMass
		changed := false
		for id, v := range out {
			if subjective[id] && v >= schema.SubjectiveWeightCap {
				out[id] = schema.SubjectiveWeightCap
				continue
			}
			scaled := v * scale
			if subjective[id] && scaled > schema.SubjectiveWeightCap {
				scaled = schema.SubjectiveWeightCap
				changed = true // the cap bit, run another pass
			}
			out[id] = scaled
		}

		if !changed {
			return out
		}
	}

	return out
}
