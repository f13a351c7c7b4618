package planner

import (
	"sort"

	"github.com/mkoskin/treeni/internal/training"
)

// PickSubstitute chooses the best replacement from the candidate list under
// the current equipment availability. Candidates whose equipment type has no
// available instance are discarded; the rest are ranked by similarity,
// breaking ties toward larger muscle overlap, then smaller difficulty jumps,
// then list order.
func PickSubstitute(
	candidates []Substitute,
	equipment []training.EquipmentInstance,
) (Substitute, error) {
	if len(candidates) == 0 {
		return Substitute{}, ErrNoSuitableSubstitutes
	}

	available := availableTypes(equipment)

	viable := make([]Substitute, 0, len(candidates))
	for _, candidate := range candidates {
		if available[candidate.Exercise.Type] {
			viable = append(viable, candidate)
		}
	}
	if len(viable) == 0 {
		return Substitute{}, ErrEquipmentUnavailable
	}

	sort.SliceStable(viable, func(i, j int) bool {
		if viable[i].SimilarityScore != viable[j].SimilarityScore {
			return viable[i].SimilarityScore > viable[j].SimilarityScore
		}
		if viable[i].MuscleOverlapPercent != viable[j].MuscleOverlapPercent {
			return viable[i].MuscleOverlapPercent > viable[j].MuscleOverlapPercent
		}
		return absInt(viable[i].DifficultyDelta) < absInt(viable[j].DifficultyDelta)
	})

	return viable[0], nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
