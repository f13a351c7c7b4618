package training

import "fmt"

// MovementPattern classifies an exercise by its coarse movement type. The
// pattern drives session variety and weekly volume attribution.
type MovementPattern string

const (
	PatternPush      MovementPattern = "push"
	PatternPull      MovementPattern = "pull"
	PatternSquat     MovementPattern = "squat"
	PatternHinge     MovementPattern = "hinge"
	PatternCore      MovementPattern = "core"
	PatternRotation  MovementPattern = "rotation"
	PatternGait      MovementPattern = "gait"
	PatternIsolation MovementPattern = "isolation"
)

// patternOrder is the canonical rotation order used by the session sequencer.
//
//nolint:gochecknoglobals // immutable reference data, never mutated.
var patternOrder = []MovementPattern{
	PatternPush,
	PatternPull,
	PatternSquat,
	PatternHinge,
	PatternCore,
	PatternRotation,
	PatternGait,
	PatternIsolation,
}

// patternPrimaryMuscles maps each pattern to the muscle groups credited with
// weekly volume when a set of that pattern is completed. Isolation exercises
// credit nothing under this coarse mapping; their targeting is too varied to
// attribute at the pattern level.
//
//nolint:gochecknoglobals // immutable reference data, never mutated.
var patternPrimaryMuscles = map[MovementPattern][]MuscleGroup{
	PatternPush:      {MusclePecs, MuscleDelts, MuscleTriceps},
	PatternPull:      {MuscleLats, MuscleTrapezes, MuscleBiceps},
	PatternSquat:     {MuscleQuads, MuscleGlutes},
	PatternHinge:     {MuscleArmstrings, MuscleGlutes, MuscleLowerBack},
	PatternCore:      {MuscleAbs},
	PatternRotation:  {MuscleAbs},
	PatternGait:      {MuscleCalves, MuscleQuads},
	PatternIsolation: {},
}

// MovementPatterns returns all movement patterns in canonical order.
func MovementPatterns() []MovementPattern {
	patterns := make([]MovementPattern, len(patternOrder))
	copy(patterns, patternOrder)
	return patterns
}

// PrimaryMuscleGroups returns the muscle groups credited with pattern-level
// volume for this pattern. The returned slice must not be mutated.
func (p MovementPattern) PrimaryMuscleGroups() []MuscleGroup {
	return patternPrimaryMuscles[p]
}

// ParseMovementPattern converts a stored string into a MovementPattern.
func ParseMovementPattern(s string) (MovementPattern, error) {
	p := MovementPattern(s)
	if _, ok := patternPrimaryMuscles[p]; !ok {
		return "", fmt.Errorf("unknown movement pattern: %q", s)
	}
	return p, nil
}
