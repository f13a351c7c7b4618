// Package planner generates adaptive workout sessions: it sequences movement
// patterns, scores catalog exercises against equipment and weekly volume
// debt, and selects a session under duration and variety constraints.
package planner

import (
	"sort"

	"github.com/mkoskin/treeni/internal/training"
)

// VolumeNeed is one muscle group's remaining weekly set debt. Needs are
// prioritized descending by remaining sets before scoring.
type VolumeNeed struct {
	MuscleGroup   training.MuscleGroup
	RemainingSets int
}

// Request is the generator's input contract besides the exercise catalog.
type Request struct {
	TargetDurationMinutes int
	Equipment             []training.EquipmentInstance
	// VolumeNeeds is optional; when empty, scoring ignores volume debt.
	VolumeNeeds []VolumeNeed
}

// Plan is a generated workout session with substitution options and
// logistics metrics.
type Plan struct {
	// Exercises is the ordered session.
	Exercises []training.Exercise
	// Alternatives maps each selected exercise ID to up to three substitute
	// exercises sharing its movement pattern, in catalog order.
	Alternatives map[int][]training.Exercise
	// FloorSwitches counts transitions between gym floors across adjacent
	// exercises in the session.
	FloorSwitches            int
	EstimatedDurationMinutes int
}

// Substitute is one pre-ranked replacement candidate for an exercise,
// supplied by the substitute-ranking provider.
type Substitute struct {
	Exercise             training.Exercise
	SimilarityScore      float64
	MuscleOverlapPercent float64
	DifficultyDelta      int
}

// prioritizeNeeds orders volume needs descending by remaining sets, dropping
// groups without debt. Ties break by canonical muscle group order so that
// scoring stays deterministic.
func prioritizeNeeds(needs []VolumeNeed) []VolumeNeed {
	order := make(map[training.MuscleGroup]int, 13)
	for i, group := range training.MuscleGroups() {
		order[group] = i
	}

	prioritized := make([]VolumeNeed, 0, len(needs))
	for _, need := range needs {
		if need.RemainingSets > 0 {
			prioritized = append(prioritized, need)
		}
	}
	sort.SliceStable(prioritized, func(i, j int) bool {
		if prioritized[i].RemainingSets != prioritized[j].RemainingSets {
			return prioritized[i].RemainingSets > prioritized[j].RemainingSets
		}
		return order[prioritized[i].MuscleGroup] < order[prioritized[j].MuscleGroup]
	})
	return prioritized
}

// priorityWeights converts a prioritized need list into per-group scoring
// weights: the group with the highest debt weighs len(needs), the next one
// less, groups absent from the list weigh zero.
func priorityWeights(prioritized []VolumeNeed) map[training.MuscleGroup]int {
	weights := make(map[training.MuscleGroup]int, len(prioritized))
	for i, need := range prioritized {
		weights[need.MuscleGroup] = len(prioritized) - i
	}
	return weights
}
