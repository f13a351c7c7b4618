package planner

import (
	"github.com/mkoskin/treeni/internal/training"
)

const (
	// MinutesPerExercise is the fixed time heuristic per exercise covering
	// three working sets, rest and setup.
	MinutesPerExercise = 8
	// minSessionExercises is the smallest session worth generating.
	minSessionExercises = 3
	// maxAlternatives caps the substitute suggestions per selected exercise.
	maxAlternatives = 3

	equipmentPreferenceFactor = 10
	availabilityBonus         = 5
)

// Generate builds a workout session from the catalog under the request's
// equipment, duration and variety constraints.
//
// The pipeline filters the catalog by available equipment, derives an
// exercise budget from the target duration, then repeatedly asks the pattern
// sequencer for the next movement pattern and picks the highest scoring
// matching exercise. When no exercise matches the recommended pattern the
// selection falls back to any pattern before stopping early. Fewer than three
// selected exercises fail the whole generation.
func Generate(req Request, catalog []training.Exercise) (Plan, error) {
	available := availableTypes(req.Equipment)

	pool := make([]training.Exercise, 0, len(catalog))
	for _, exercise := range catalog {
		if available[exercise.Type] {
			pool = append(pool, exercise)
		}
	}
	if len(pool) == 0 {
		return Plan{}, ErrNoAvailableEquipment
	}

	maxExercises := req.TargetDurationMinutes / MinutesPerExercise
	weights := priorityWeights(prioritizeNeeds(req.VolumeNeeds))

	var (
		selected     []training.Exercise
		usedPatterns []training.MovementPattern
	)
	selectedIDs := make(map[int]bool, maxExercises)
	for len(selected) < maxExercises {
		pattern := NextPattern(usedPatterns)
		candidates := filterCandidates(pool, pattern, selectedIDs)
		if len(candidates) == 0 {
			// No exercise for the recommended pattern; fall back to an
			// unconstrained pick.
			candidates = filterCandidates(pool, "", selectedIDs)
		}
		if len(candidates) == 0 {
			break
		}
		best := pickBest(candidates, weights, available)
		selected = append(selected, best)
		selectedIDs[best.ID] = true
		usedPatterns = append(usedPatterns, best.Pattern)
	}

	if len(selected) < minSessionExercises {
		return Plan{}, ErrInsufficientExercises
	}

	return Plan{
		Exercises:                selected,
		Alternatives:             collectAlternatives(selected, catalog),
		FloorSwitches:            countFloorSwitches(selected, req.Equipment),
		EstimatedDurationMinutes: len(selected) * MinutesPerExercise,
	}, nil
}

// availableTypes collects the equipment types served by at least one
// available instance.
func availableTypes(equipment []training.EquipmentInstance) map[training.EquipmentType]bool {
	available := make(map[training.EquipmentType]bool, len(equipment))
	for _, instance := range equipment {
		if instance.Available {
			available[instance.Type] = true
		}
	}
	return available
}

// filterCandidates returns pool exercises matching the pattern and not yet
// selected. An empty pattern matches any pattern.
func filterCandidates(
	pool []training.Exercise,
	pattern training.MovementPattern,
	selectedIDs map[int]bool,
) []training.Exercise {
	var candidates []training.Exercise
	for _, exercise := range pool {
		if selectedIDs[exercise.ID] {
			continue
		}
		if pattern != "" && exercise.Pattern != pattern {
			continue
		}
		candidates = append(candidates, exercise)
	}
	return candidates
}

// pickBest returns the highest scoring candidate. Ties keep the earliest
// candidate so that selection is deterministic in catalog order.
func pickBest(
	candidates []training.Exercise,
	weights map[training.MuscleGroup]int,
	available map[training.EquipmentType]bool,
) training.Exercise {
	best := candidates[0]
	bestScore := score(best, weights, available)
	for _, candidate := range candidates[1:] {
		if s := score(candidate, weights, available); s > bestScore {
			best = candidate
			bestScore = s
		}
	}
	return best
}

// score rates an exercise for selection: muscle group splits weighted by
// volume debt priority, plus the fixed equipment preference, plus a bonus
// when an available instance serves the exercise's equipment type.
func score(
	exercise training.Exercise,
	weights map[training.MuscleGroup]int,
	available map[training.EquipmentType]bool,
) float64 {
	total := 0.0
	for _, split := range exercise.Splits {
		total += float64(weights[split.MuscleGroup]) * split.Percent
	}
	total += float64(exercise.Type.PreferenceWeight() * equipmentPreferenceFactor)
	if available[exercise.Type] {
		total += availabilityBonus
	}
	return total
}

// collectAlternatives gathers up to maxAlternatives same-pattern catalog
// exercises per selected exercise, preserving catalog order.
func collectAlternatives(
	selected []training.Exercise,
	catalog []training.Exercise,
) map[int][]training.Exercise {
	alternatives := make(map[int][]training.Exercise, len(selected))
	for _, exercise := range selected {
		var matches []training.Exercise
		for _, candidate := range catalog {
			if candidate.ID == exercise.ID || candidate.Pattern != exercise.Pattern {
				continue
			}
			matches = append(matches, candidate)
			if len(matches) == maxAlternatives {
				break
			}
		}
		alternatives[exercise.ID] = matches
	}
	return alternatives
}

// countFloorSwitches counts adjacent exercise pairs whose matched equipment
// sits on different gym floors. An exercise's floor is decided by the first
// available instance serving its equipment type; the first exercise never
// counts as a switch.
func countFloorSwitches(selected []training.Exercise, equipment []training.EquipmentInstance) int {
	switches := 0
	previousFloor, havePrevious := 0, false
	for _, exercise := range selected {
		floor, ok := matchedFloor(exercise.Type, equipment)
		if !ok {
			continue
		}
		if havePrevious && floor != previousFloor {
			switches++
		}
		previousFloor, havePrevious = floor, true
	}
	return switches
}

func matchedFloor(typ training.EquipmentType, equipment []training.EquipmentInstance) (int, bool) {
	for _, instance := range equipment {
		if instance.Available && instance.Type == typ {
			return instance.FloorID, true
		}
	}
	return 0, false
}
