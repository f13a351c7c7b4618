package training

import (
	"errors"
	"fmt"
	"math"
)

// splitTolerance absorbs floating point noise when checking that the split
// percentages of an exercise sum to 100.
const splitTolerance = 1e-6

// ErrInvalidSplits reports an exercise whose muscle group splits do not sum
// to 100 percent.
var ErrInvalidSplits = errors.New("muscle group splits must sum to 100")

// MuscleGroupSplit assigns a percentage of an exercise's training load to a
// muscle group.
type MuscleGroupSplit struct {
	MuscleGroup MuscleGroup
	Percent     float64
}

// Exercise represents a single exercise type, e.g. Bench Press, with its
// equipment requirement, movement pattern and muscle group split breakdown.
type Exercise struct {
	ID                  int
	Name                string
	Type                EquipmentType
	Pattern             MovementPattern
	Splits              []MuscleGroupSplit
	DescriptionMarkdown string
}

// NewExercise constructs an exercise and validates that its muscle group
// splits sum to exactly 100 percent. Invalid exercises must never enter the
// catalog, so this is the only construction path besides
// NewExerciseNormalized.
func NewExercise(
	id int,
	name string,
	typ EquipmentType,
	pattern MovementPattern,
	splits []MuscleGroupSplit,
) (Exercise, error) {
	total := splitTotal(splits)
	if math.Abs(total-100) > splitTolerance {
		return Exercise{}, fmt.Errorf("%w: exercise %q sums to %.2f", ErrInvalidSplits, name, total)
	}
	return newExercise(id, name, typ, pattern, splits), nil
}

// NewExerciseNormalized constructs an exercise, scaling its splits so that
// they sum to 100 percent. It fails when the splits are empty or sum to zero.
func NewExerciseNormalized(
	id int,
	name string,
	typ EquipmentType,
	pattern MovementPattern,
	splits []MuscleGroupSplit,
) (Exercise, error) {
	total := splitTotal(splits)
	if total <= 0 {
		return Exercise{}, fmt.Errorf("%w: exercise %q has nothing to normalize", ErrInvalidSplits, name)
	}
	normalized := make([]MuscleGroupSplit, len(splits))
	for i, split := range splits {
		normalized[i] = MuscleGroupSplit{
			MuscleGroup: split.MuscleGroup,
			Percent:     split.Percent / total * 100,
		}
	}
	return newExercise(id, name, typ, pattern, normalized), nil
}

func newExercise(
	id int,
	name string,
	typ EquipmentType,
	pattern MovementPattern,
	splits []MuscleGroupSplit,
) Exercise {
	copied := make([]MuscleGroupSplit, len(splits))
	copy(copied, splits)
	return Exercise{
		ID:                  id,
		Name:                name,
		Type:                typ,
		Pattern:             pattern,
		Splits:              copied,
		DescriptionMarkdown: "",
	}
}

func splitTotal(splits []MuscleGroupSplit) float64 {
	total := 0.0
	for _, split := range splits {
		total += split.Percent
	}
	return total
}
