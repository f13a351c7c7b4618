// Package training holds the immutable reference data shared by the
// recommendation engine: muscle groups, movement patterns, equipment types
// and the exercise catalog model. All lookup tables are fixed at compile
// time and never mutated at runtime.
package training

import "fmt"

// Category groups muscle groups into coarse body regions.
type Category string

const (
	CategoryCore Category = "core"
	CategoryBack Category = "back"
	CategoryArms Category = "arms"
	CategoryLegs Category = "legs"
)

// MuscleGroup identifies one of the 13 anatomical groupings used for volume
// and recovery accounting.
type MuscleGroup string

const (
	MusclePecs       MuscleGroup = "pecs"
	MuscleAbs        MuscleGroup = "abs"
	MuscleLats       MuscleGroup = "lats"
	MuscleTrapezes   MuscleGroup = "trapezes"
	MuscleLowerBack  MuscleGroup = "lower_back"
	MuscleDelts      MuscleGroup = "delts"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleQuads      MuscleGroup = "quads"
	MuscleArmstrings MuscleGroup = "armstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
)

// muscleGroupInfo is the fixed per-group reference data. The time constant
// governs how fast the group sheds fatigue: larger muscles recover slower.
type muscleGroupInfo struct {
	category          Category
	timeConstantHours float64
}

//nolint:gochecknoglobals // immutable reference data, never mutated.
var muscleGroups = map[MuscleGroup]muscleGroupInfo{
	MusclePecs:       {category: CategoryCore, timeConstantHours: 36},
	MuscleAbs:        {category: CategoryCore, timeConstantHours: 18},
	MuscleLats:       {category: CategoryBack, timeConstantHours: 36},
	MuscleTrapezes:   {category: CategoryBack, timeConstantHours: 24},
	MuscleLowerBack:  {category: CategoryBack, timeConstantHours: 60},
	MuscleDelts:      {category: CategoryArms, timeConstantHours: 24},
	MuscleBiceps:     {category: CategoryArms, timeConstantHours: 24},
	MuscleTriceps:    {category: CategoryArms, timeConstantHours: 24},
	MuscleForearms:   {category: CategoryArms, timeConstantHours: 18},
	MuscleQuads:      {category: CategoryLegs, timeConstantHours: 48},
	MuscleArmstrings: {category: CategoryLegs, timeConstantHours: 48},
	MuscleGlutes:     {category: CategoryLegs, timeConstantHours: 48},
	MuscleCalves:     {category: CategoryLegs, timeConstantHours: 18},
}

// muscleGroupOrder lists the groups in a stable canonical order used for
// deterministic iteration and tie-breaking.
//
//nolint:gochecknoglobals // immutable reference data, never mutated.
var muscleGroupOrder = []MuscleGroup{
	MusclePecs,
	MuscleDelts,
	MuscleTriceps,
	MuscleLats,
	MuscleTrapezes,
	MuscleBiceps,
	MuscleForearms,
	MuscleAbs,
	MuscleLowerBack,
	MuscleQuads,
	MuscleArmstrings,
	MuscleGlutes,
	MuscleCalves,
}

// MuscleGroups returns all known muscle groups in canonical order.
func MuscleGroups() []MuscleGroup {
	groups := make([]MuscleGroup, len(muscleGroupOrder))
	copy(groups, muscleGroupOrder)
	return groups
}

// Category returns the body region the muscle group belongs to.
func (mg MuscleGroup) Category() Category {
	return muscleGroups[mg].category
}

// RecoveryTimeConstantHours returns the base exponential time constant in
// hours governing the group's recovery speed.
func (mg MuscleGroup) RecoveryTimeConstantHours() float64 {
	return muscleGroups[mg].timeConstantHours
}

// ParseMuscleGroup converts a stored string into a MuscleGroup.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	mg := MuscleGroup(s)
	if _, ok := muscleGroups[mg]; !ok {
		return "", fmt.Errorf("unknown muscle group: %q", s)
	}
	return mg, nil
}
