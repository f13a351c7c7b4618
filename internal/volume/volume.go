// Package volume aggregates completed training sets per muscle group within
// a rolling week and compares them against per-group target ranges. The
// tracker is a derived aggregate rebuilt per request, never stored.
package volume

import (
	"time"

	"github.com/mkoskin/treeni/internal/training"
)

// onTrackThresholdPercent is the average progress at and above which the week
// counts as on track.
const onTrackThresholdPercent = 70.0

// Target is the weekly set range for one muscle group. Reference data
// supplied by the target provider, one row per muscle group.
type Target struct {
	MuscleGroup training.MuscleGroup
	MinSets     int
	MaxSets     int
}

// Tracker is the derived weekly volume state: completed sets, targets and
// remaining volume debt per muscle group.
type Tracker struct {
	WeekStart time.Time
	Current   map[training.MuscleGroup]int
	Targets   map[training.MuscleGroup]Target
	Remaining map[training.MuscleGroup]int
}

// WeekStart rolls a date back to the most recent Monday at local midnight.
// A Sunday rolls back six days rather than forward one.
func WeekStart(t time.Time) time.Time {
	offset := int(time.Monday - t.Weekday())
	if offset > 0 {
		offset = -6
	}
	monday := t.AddDate(0, 0, offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// Compute builds the weekly tracker from completed set counts and targets.
// Remaining debt per group is the shortfall against the target minimum,
// floored at zero.
func Compute(weekStart time.Time, completed map[training.MuscleGroup]int, targets []Target) Tracker {
	tracker := Tracker{
		WeekStart: weekStart,
		Current:   make(map[training.MuscleGroup]int, len(completed)),
		Targets:   make(map[training.MuscleGroup]Target, len(targets)),
		Remaining: make(map[training.MuscleGroup]int, len(targets)),
	}
	for group, sets := range completed {
		tracker.Current[group] = sets
	}
	for _, target := range targets {
		tracker.Targets[target.MuscleGroup] = target
		remaining := target.MinSets - tracker.Current[target.MuscleGroup]
		if remaining < 0 {
			remaining = 0
		}
		tracker.Remaining[target.MuscleGroup] = remaining
	}
	return tracker
}

// ProgressPercent reports how far along the group is towards its weekly
// minimum, capped at 100. Groups without a positive minimum count as done.
func (t Tracker) ProgressPercent(group training.MuscleGroup) float64 {
	target, ok := t.Targets[group]
	if !ok || target.MinSets <= 0 {
		return 100
	}
	progress := float64(t.Current[group]) / float64(target.MinSets) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// IsOnTrack reports whether the average progress across all targeted muscle
// groups reaches the on-track threshold.
func (t Tracker) IsOnTrack() bool {
	if len(t.Targets) == 0 {
		return true
	}
	total := 0.0
	for group := range t.Targets {
		total += t.ProgressPercent(group)
	}
	return total/float64(len(t.Targets)) >= onTrackThresholdPercent
}

// CreditSets credits completed sets of one exercise to the primary muscle
// groups of its movement pattern, one full set each regardless of the
// exercise's fine-grained splits. Isolation patterns credit nothing; this is
// an intentional simplification of the volume accounting, kept coarse so the
// weekly numbers stay stable across catalog edits.
func CreditSets(counts map[training.MuscleGroup]int, pattern training.MovementPattern, completedSets int) {
	if completedSets <= 0 {
		return
	}
	for _, group := range pattern.PrimaryMuscleGroups() {
		counts[group] += completedSets
	}
}
