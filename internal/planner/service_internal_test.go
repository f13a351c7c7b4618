package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mkoskin/treeni/internal/errors"
	"github.com/mkoskin/treeni/internal/recovery"
	"github.com/mkoskin/treeni/internal/testhelpers"
	"github.com/mkoskin/treeni/internal/training"
	"github.com/mkoskin/treeni/internal/volume"
)

type fakeCatalog struct {
	exercises []training.Exercise
}

func (f fakeCatalog) List(_ context.Context) ([]training.Exercise, error) {
	return f.exercises, nil
}

func (f fakeCatalog) Get(_ context.Context, id int) (training.Exercise, error) {
	for _, exercise := range f.exercises {
		if exercise.ID == id {
			return exercise, nil
		}
	}
	return training.Exercise{}, ErrExerciseNotFound
}

type fakeEquipment struct {
	instances []training.EquipmentInstance
}

func (f fakeEquipment) List(_ context.Context) ([]training.EquipmentInstance, error) {
	return f.instances, nil
}

type fakeHistory struct {
	events []recovery.FatigueEvent
	counts map[training.MuscleGroup]int

	gotSince     time.Time
	gotWeekStart time.Time
}

func (f *fakeHistory) FatigueEvents(_ context.Context, since time.Time) ([]recovery.FatigueEvent, error) {
	f.gotSince = since
	return f.events, nil
}

func (f *fakeHistory) CompletedSetCounts(
	_ context.Context,
	weekStart time.Time,
) (map[training.MuscleGroup]int, error) {
	f.gotWeekStart = weekStart
	return f.counts, nil
}

type fakeTargets struct {
	targets []volume.Target
}

func (f fakeTargets) List(_ context.Context) ([]volume.Target, error) {
	return f.targets, nil
}

type fakeSubstitutes struct {
	byExercise map[int][]Substitute
}

func (f fakeSubstitutes) ListForExercise(_ context.Context, exerciseID int) ([]Substitute, error) {
	return f.byExercise[exerciseID], nil
}

func testExercise(t *testing.T, id int, name string, typ training.EquipmentType, pattern training.MovementPattern, group training.MuscleGroup) training.Exercise {
	t.Helper()
	exercise, err := training.NewExercise(id, name, typ, pattern, []training.MuscleGroupSplit{
		{MuscleGroup: group, Percent: 100},
	})
	if err != nil {
		t.Fatalf("build exercise %q: %v", name, err)
	}
	return exercise
}

func newTestService(t *testing.T, catalog fakeCatalog, equipment fakeEquipment, history *fakeHistory, targets fakeTargets, substitutes fakeSubstitutes, now time.Time) *Service {
	t.Helper()
	service := NewService(catalog, equipment, history, targets, substitutes, testhelpers.NewLogger(testhelpers.NewWriter(t)))
	service.now = func() time.Time { return now }
	return service
}

func TestServiceRecoveryStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{
		events: []recovery.FatigueEvent{
			{MuscleGroup: training.MusclePecs, VolumeLoad: 1000, WorkoutDate: now.Add(-72 * time.Hour)},
		},
	}
	service := newTestService(t, fakeCatalog{}, fakeEquipment{}, history, fakeTargets{}, fakeSubstitutes{}, now)

	statuses, err := service.RecoveryStatus(context.Background())
	if err != nil {
		t.Fatalf("RecoveryStatus() error = %v", err)
	}

	wantSince := now.Add(-recovery.LookbackWindow)
	if !history.gotSince.Equal(wantSince) {
		t.Errorf("history queried since %v, want %v", history.gotSince, wantSince)
	}
	if got, want := len(statuses), len(training.MuscleGroups()); got != want {
		t.Fatalf("len(statuses) = %d, want %d", got, want)
	}
	for _, status := range statuses {
		if status.MuscleGroup == training.MusclePecs && status.Level != recovery.LevelFresh {
			t.Errorf("pecs level = %q, want %q after 72h", status.Level, recovery.LevelFresh)
		}
	}
}

func TestServiceWeeklyVolume(t *testing.T) {
	t.Parallel()

	// A Wednesday; the history must be queried from Monday local midnight.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{
		counts: map[training.MuscleGroup]int{training.MusclePecs: 4},
	}
	targets := fakeTargets{targets: []volume.Target{
		{MuscleGroup: training.MusclePecs, MinSets: 10, MaxSets: 20},
	}}
	service := newTestService(t, fakeCatalog{}, fakeEquipment{}, history, targets, fakeSubstitutes{}, now)

	tracker, err := service.WeeklyVolume(context.Background())
	if err != nil {
		t.Fatalf("WeeklyVolume() error = %v", err)
	}

	wantWeekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !history.gotWeekStart.Equal(wantWeekStart) {
		t.Errorf("history queried for week start %v, want %v", history.gotWeekStart, wantWeekStart)
	}
	if got, want := tracker.Remaining[training.MusclePecs], 6; got != want {
		t.Errorf("Remaining[pecs] = %d, want %d", got, want)
	}
}

func TestServiceGenerateWorkout(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	catalog := fakeCatalog{exercises: []training.Exercise{
		testExercise(t, 1, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, training.MusclePecs),
		testExercise(t, 2, "Dumbbell Row", training.EquipmentDumbbells, training.PatternPull, training.MuscleLats),
		testExercise(t, 3, "Goblet Squat", training.EquipmentDumbbells, training.PatternSquat, training.MuscleQuads),
	}}
	equipment := fakeEquipment{instances: []training.EquipmentInstance{
		{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
	}}
	history := &fakeHistory{counts: map[training.MuscleGroup]int{}}
	targets := fakeTargets{targets: []volume.Target{
		{MuscleGroup: training.MusclePecs, MinSets: 10, MaxSets: 20},
	}}
	service := newTestService(t, catalog, equipment, history, targets, fakeSubstitutes{}, now)

	plan, err := service.GenerateWorkout(context.Background(), 60)
	if err != nil {
		t.Fatalf("GenerateWorkout() error = %v", err)
	}

	wantIDs := []int{1, 2, 3}
	gotIDs := make([]int, len(plan.Exercises))
	for i, exercise := range plan.Exercises {
		gotIDs[i] = exercise.ID
	}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Errorf("exercise IDs mismatch (-want +got):\n%s", diff)
	}
	if got, want := plan.EstimatedDurationMinutes, 24; got != want {
		t.Errorf("EstimatedDurationMinutes = %d, want %d", got, want)
	}
}

func TestServiceReplaceExercise(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	benchPress := testExercise(t, 1, "Bench Press", training.EquipmentBarbell, training.PatternPush, training.MusclePecs)
	dumbbellPress := testExercise(t, 2, "Dumbbell Press", training.EquipmentDumbbells, training.PatternPush, training.MusclePecs)
	machinePress := testExercise(t, 3, "Machine Press", training.EquipmentMachine, training.PatternPush, training.MusclePecs)

	catalog := fakeCatalog{exercises: []training.Exercise{benchPress, dumbbellPress, machinePress}}
	equipment := fakeEquipment{instances: []training.EquipmentInstance{
		{ID: 1, Type: training.EquipmentDumbbells, Available: true, FloorID: 1},
		{ID: 2, Type: training.EquipmentMachine, Available: false, FloorID: 2},
	}}
	substitutes := fakeSubstitutes{byExercise: map[int][]Substitute{
		benchPress.ID: {
			{Exercise: machinePress, SimilarityScore: 0.9},
			{Exercise: dumbbellPress, SimilarityScore: 0.8},
		},
	}}
	service := newTestService(t, catalog, equipment, &fakeHistory{}, fakeTargets{}, substitutes, now)

	// The machine press ranks higher but its equipment is unavailable.
	substitute, err := service.ReplaceExercise(context.Background(), benchPress.ID)
	if err != nil {
		t.Fatalf("ReplaceExercise() error = %v", err)
	}
	if got, want := substitute.Exercise.ID, dumbbellPress.ID; got != want {
		t.Errorf("substitute exercise ID = %d, want %d", got, want)
	}

	if _, err := service.ReplaceExercise(context.Background(), 99); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("ReplaceExercise(unknown) error = %v, want ErrExerciseNotFound", err)
	}

	if _, err := service.ReplaceExercise(context.Background(), dumbbellPress.ID); !errors.Is(err, ErrNoSuitableSubstitutes) {
		t.Errorf("ReplaceExercise(no candidates) error = %v, want ErrNoSuitableSubstitutes", err)
	}
}
