package planner

import "github.com/mkoskin/treeni/internal/errors"

// Failure tags crossing the planner boundary. All are terminal: the caller
// surfaces them verbatim and decides whether to re-prompt.
var (
	// ErrNoAvailableEquipment means no catalog exercise matches any available
	// equipment type.
	ErrNoAvailableEquipment = errors.NewSentinel("no available equipment")
	// ErrInsufficientExercises means fewer than the minimum number of
	// exercises could be selected for the requested duration and equipment.
	ErrInsufficientExercises = errors.NewSentinel("insufficient exercises for requested session")
	// ErrDurationConstraint is reserved for callers that want to distinguish
	// a duration too short to contain any full exercise from a thin catalog.
	// Generate folds the condition into ErrInsufficientExercises.
	ErrDurationConstraint = errors.NewSentinel("duration constraint failed")
	// ErrExerciseNotFound means the exercise ID is unknown to the catalog.
	ErrExerciseNotFound = errors.NewSentinel("exercise not found")
	// ErrNoSuitableSubstitutes means the substitute list for the exercise is
	// empty.
	ErrNoSuitableSubstitutes = errors.NewSentinel("no suitable substitutes")
	// ErrEquipmentUnavailable means every substitute requires equipment that
	// is not currently available.
	ErrEquipmentUnavailable = errors.NewSentinel("equipment unavailable for all substitutes")
)
