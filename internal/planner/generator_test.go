package planner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mkoskin/treeni/internal/errors"
	"github.com/mkoskin/treeni/internal/planner"
	"github.com/mkoskin/treeni/internal/training"
)

func buildExercise(
	t *testing.T,
	id int,
	name string,
	typ training.EquipmentType,
	pattern training.MovementPattern,
	splits []training.MuscleGroupSplit,
) training.Exercise {
	t.Helper()
	exercise, err := training.NewExercise(id, name, typ, pattern, splits)
	if err != nil {
		t.Fatalf("build exercise %q: %v", name, err)
	}
	return exercise
}

func pecsSplit() []training.MuscleGroupSplit {
	return []training.MuscleGroupSplit{{MuscleGroup: training.MusclePecs, Percent: 100}}
}

func TestGenerateSmallCatalog(t *testing.T) {
	t.Parallel()

	catalog := []training.Exercise{
		buildExercise(t, 1, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 2, "Dumbbell Row", training.EquipmentDumbbells, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 3, "Goblet Squat", training.EquipmentDumbbells, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}
	req := planner.Request{
		TargetDurationMinutes: 60,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantIDs := []int{1, 2, 3}
	if diff := cmp.Diff(wantIDs, exerciseIDs(plan.Exercises)); diff != "" {
		t.Errorf("exercise IDs mismatch (-want +got):\n%s", diff)
	}
	if got, want := plan.EstimatedDurationMinutes, 24; got != want {
		t.Errorf("EstimatedDurationMinutes = %d, want %d", got, want)
	}
	if got, want := plan.FloorSwitches, 0; got != want {
		t.Errorf("FloorSwitches = %d, want %d", got, want)
	}
	for id, alternatives := range plan.Alternatives {
		if len(alternatives) != 0 {
			t.Errorf("exercise %d has %d alternatives, want none", id, len(alternatives))
		}
	}
}

func TestGenerateNoAvailableEquipment(t *testing.T) {
	t.Parallel()

	catalog := []training.Exercise{
		buildExercise(t, 1, "Bench Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
	}
	req := planner.Request{
		TargetDurationMinutes: 60,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
		},
	}

	if _, err := planner.Generate(req, catalog); !errors.Is(err, planner.ErrNoAvailableEquipment) {
		t.Fatalf("Generate() error = %v, want ErrNoAvailableEquipment", err)
	}
}

func TestGenerateUnavailableInstancesDoNotCount(t *testing.T) {
	t.Parallel()

	catalog := []training.Exercise{
		buildExercise(t, 1, "Bench Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
	}
	req := planner.Request{
		TargetDurationMinutes: 60,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentBarbell, Available: false, FloorID: 1},
		},
	}

	if _, err := planner.Generate(req, catalog); !errors.Is(err, planner.ErrNoAvailableEquipment) {
		t.Fatalf("Generate() error = %v, want ErrNoAvailableEquipment", err)
	}
}

func TestGenerateInsufficientExercises(t *testing.T) {
	t.Parallel()

	catalog := []training.Exercise{
		buildExercise(t, 1, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 2, "Dumbbell Row", training.EquipmentDumbbells, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 3, "Goblet Squat", training.EquipmentDumbbells, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}

	testCases := []struct {
		name    string
		minutes int
		catalog []training.Exercise
	}{
		{
			name:    "duration too short for three exercises",
			minutes: 20,
			catalog: catalog,
		},
		{
			name:    "catalog runs out before three exercises",
			minutes: 60,
			catalog: catalog[:2],
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := planner.Request{
				TargetDurationMinutes: tc.minutes,
				Equipment: []training.EquipmentInstance{
					{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
				},
			}
			if _, err := planner.Generate(req, tc.catalog); !errors.Is(err, planner.ErrInsufficientExercises) {
				t.Fatalf("Generate() error = %v, want ErrInsufficientExercises", err)
			}
		})
	}
}

func TestGenerateVolumeDebtSteersSelection(t *testing.T) {
	t.Parallel()

	// The cable press scores higher on equipment preference alone; the pecs
	// volume debt must outweigh that and pick the dumbbell press.
	catalog := []training.Exercise{
		buildExercise(t, 1, "Cable Press", training.EquipmentCable, training.PatternPush,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleDelts, Percent: 100}}),
		buildExercise(t, 2, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 3, "Dumbbell Row", training.EquipmentDumbbells, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 4, "Goblet Squat", training.EquipmentDumbbells, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}
	req := planner.Request{
		TargetDurationMinutes: 30,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
			{ID: 2, Type: training.EquipmentCable, Available: true, FloorID: 2},
		},
		VolumeNeeds: []planner.VolumeNeed{
			{MuscleGroup: training.MusclePecs, RemainingSets: 8},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := plan.Exercises[0].ID, 2; got != want {
		t.Errorf("first exercise ID = %d, want %d", got, want)
	}
}

func TestGenerateTiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	// Both push exercises score identically; the earlier catalog entry wins.
	catalog := []training.Exercise{
		buildExercise(t, 10, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 11, "Push-Up", training.EquipmentBodyweight, training.PatternPush, pecsSplit()),
		buildExercise(t, 12, "Pull-Up", training.EquipmentBodyweight, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 13, "Squat", training.EquipmentBodyweight, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}
	req := planner.Request{
		TargetDurationMinutes: 30,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
			{ID: 2, Type: training.EquipmentBodyweight, Available: true, FloorID: 1},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := plan.Exercises[0].ID, 10; got != want {
		t.Errorf("first exercise ID = %d, want %d", got, want)
	}
}

func TestGenerateAlternatives(t *testing.T) {
	t.Parallel()

	catalog := []training.Exercise{
		buildExercise(t, 1, "Bench Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
		buildExercise(t, 2, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 3, "Push-Up", training.EquipmentBodyweight, training.PatternPush, pecsSplit()),
		buildExercise(t, 4, "Machine Press", training.EquipmentMachine, training.PatternPush, pecsSplit()),
		buildExercise(t, 5, "Cable Press", training.EquipmentCable, training.PatternPush, pecsSplit()),
		buildExercise(t, 6, "Pull-Up", training.EquipmentBodyweight, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 7, "Squat", training.EquipmentBodyweight, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}
	req := planner.Request{
		TargetDurationMinutes: 24,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentBarbell, Available: true, FloorID: 1},
			{ID: 2, Type: training.EquipmentBodyweight, Available: true, FloorID: 1},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	pushID := plan.Exercises[0].ID
	alternatives := plan.Alternatives[pushID]
	if got, want := len(alternatives), 3; got != want {
		t.Fatalf("len(alternatives) = %d, want %d", got, want)
	}
	// Catalog order, the selected exercise excluded. Unavailable equipment is
	// still suggested; substitution handles availability later.
	var wantIDs []int
	for _, exercise := range catalog {
		if exercise.ID != pushID && exercise.Pattern == training.PatternPush {
			wantIDs = append(wantIDs, exercise.ID)
			if len(wantIDs) == 3 {
				break
			}
		}
	}
	if diff := cmp.Diff(wantIDs, exerciseIDs(alternatives)); diff != "" {
		t.Errorf("alternative IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateFloorSwitches(t *testing.T) {
	t.Parallel()

	// Selection order is push, pull, squat; the pull exercise sits on another
	// floor, so the session crosses floors twice.
	catalog := []training.Exercise{
		buildExercise(t, 1, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, pecsSplit()),
		buildExercise(t, 2, "Cable Row", training.EquipmentCable, training.PatternPull,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleLats, Percent: 100}}),
		buildExercise(t, 3, "Goblet Squat", training.EquipmentDumbbells, training.PatternSquat,
			[]training.MuscleGroupSplit{{MuscleGroup: training.MuscleQuads, Percent: 100}}),
	}
	req := planner.Request{
		TargetDurationMinutes: 24,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
			{ID: 2, Type: training.EquipmentCable, Available: true, FloorID: 2},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := plan.FloorSwitches, 2; got != want {
		t.Errorf("FloorSwitches = %d, want %d", got, want)
	}
}

func TestGenerateFallsBackWhenPatternExhausted(t *testing.T) {
	t.Parallel()

	// Only push exercises exist, so after the first pick every sequencer
	// recommendation falls back to the remaining push candidates.
	catalog := []training.Exercise{
		buildExercise(t, 1, "Bench Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
		buildExercise(t, 2, "Incline Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
		buildExercise(t, 3, "Close-Grip Press", training.EquipmentBarbell, training.PatternPush, pecsSplit()),
	}
	req := planner.Request{
		TargetDurationMinutes: 60,
		Equipment: []training.EquipmentInstance{
			{ID: 1, Type: training.EquipmentBarbell, Available: true, FloorID: 1},
		},
	}

	plan, err := planner.Generate(req, catalog)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := len(plan.Exercises), 3; got != want {
		t.Errorf("len(Exercises) = %d, want %d", got, want)
	}
}

func exerciseIDs(exercises []training.Exercise) []int {
	ids := make([]int, len(exercises))
	for i, exercise := range exercises {
		ids[i] = exercise.ID
	}
	return ids
}
