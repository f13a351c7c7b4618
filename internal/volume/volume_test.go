package volume_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mkoskin/treeni/internal/training"
	"github.com/mkoskin/treeni/internal/volume"
)

func TestWeekStart(t *testing.T) {
	t.Parallel()

	helsinki, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	testCases := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{
			name: "monday returns itself at midnight",
			date: time.Date(2026, 3, 16, 18, 30, 0, 0, time.UTC), // Monday
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls back six days",
			date: time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC), // Sunday
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday rolls back to monday",
			date: time.Date(2026, 3, 18, 0, 0, 1, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight is kept in the local location",
			date: time.Date(2026, 3, 20, 23, 59, 0, 0, helsinki), // Friday
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, helsinki),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := volume.WeekStart(tc.date); !got.Equal(tc.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	completed := map[training.MuscleGroup]int{
		training.MusclePecs:  12,
		training.MuscleQuads: 4,
	}
	targets := []volume.Target{
		{MuscleGroup: training.MusclePecs, MinSets: 10, MaxSets: 20},
		{MuscleGroup: training.MuscleQuads, MinSets: 12, MaxSets: 22},
		{MuscleGroup: training.MuscleLats, MinSets: 10, MaxSets: 20},
	}

	tracker := volume.Compute(weekStart, completed, targets)

	wantRemaining := map[training.MuscleGroup]int{
		training.MusclePecs:  0, // over the minimum, not negative
		training.MuscleQuads: 8,
		training.MuscleLats:  10,
	}
	if diff := cmp.Diff(wantRemaining, tracker.Remaining); diff != "" {
		t.Errorf("Remaining mismatch (-want +got):\n%s", diff)
	}

	if got, want := tracker.ProgressPercent(training.MusclePecs), 100.0; got != want {
		t.Errorf("ProgressPercent(pecs) = %f, want %f (capped)", got, want)
	}
	// Four of twelve minimum sets done. Built from runtime-typed floats so
	// the expectation rounds the same way the implementation does.
	wantQuads := float64(4) / float64(12) * 100
	if got := tracker.ProgressPercent(training.MuscleQuads); math.Abs(got-wantQuads) > 1e-9 {
		t.Errorf("ProgressPercent(quads) = %f, want %f", got, wantQuads)
	}
	if got, want := tracker.ProgressPercent(training.MuscleCalves), 100.0; got != want {
		t.Errorf("ProgressPercent for untargeted group = %f, want %f", got, want)
	}
}

func TestIsOnTrack(t *testing.T) {
	t.Parallel()

	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	targets := []volume.Target{
		{MuscleGroup: training.MusclePecs, MinSets: 10, MaxSets: 20},
		{MuscleGroup: training.MuscleLats, MinSets: 10, MaxSets: 20},
	}

	testCases := []struct {
		name      string
		completed map[training.MuscleGroup]int
		targets   []volume.Target
		want      bool
	}{
		{
			name: "average progress above threshold",
			completed: map[training.MuscleGroup]int{
				training.MusclePecs: 10,
				training.MuscleLats: 5,
			},
			targets: targets,
			want:    true, // (100 + 50) / 2 = 75
		},
		{
			name: "average progress below threshold",
			completed: map[training.MuscleGroup]int{
				training.MusclePecs: 6,
				training.MuscleLats: 2,
			},
			targets: targets,
			want:    false, // (60 + 20) / 2 = 40
		},
		{
			name:      "no targets counts as on track",
			completed: nil,
			targets:   nil,
			want:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tracker := volume.Compute(weekStart, tc.completed, tc.targets)
			if got := tracker.IsOnTrack(); got != tc.want {
				t.Errorf("IsOnTrack() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreditSets(t *testing.T) {
	t.Parallel()

	counts := make(map[training.MuscleGroup]int)

	volume.CreditSets(counts, training.PatternPush, 3)
	volume.CreditSets(counts, training.PatternHinge, 2)
	volume.CreditSets(counts, training.PatternIsolation, 5)

	want := map[training.MuscleGroup]int{
		training.MusclePecs:       3,
		training.MuscleDelts:      3,
		training.MuscleTriceps:    3,
		training.MuscleArmstrings: 2,
		training.MuscleGlutes:     2,
		training.MuscleLowerBack:  2,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
