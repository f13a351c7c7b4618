// Package recovery converts a history of training load events into
// per-muscle-group recovery percentages. The model is a pure function of the
// event history and the current time; it keeps no state between calls.
package recovery

import (
	"math"
	"sort"
	"time"

	"github.com/mkoskin/treeni/internal/training"
)

const (
	// BaselineVolumeLoad is the session volume load in kg·reps that leaves
	// the base time constant unchanged. Heavier sessions stretch the time
	// constant proportionally.
	BaselineVolumeLoad = 1000.0

	// LookbackWindow bounds how far back events influence recovery. Older
	// events contribute negligible residual fatigue and may be discarded by
	// the history provider.
	LookbackWindow = 168 * time.Hour

	// minTimeConstantFactor floors the load adjustment so that extremely
	// light sessions never recover unrealistically fast.
	minTimeConstantFactor = 0.5

	// FreshThresholdPercent is the recovery percentage at and above which a
	// muscle group counts as fresh.
	FreshThresholdPercent = 80

	recoveringThresholdPercent = 50
)

// FatigueEvent records the training load placed on one muscle group by one
// completed session. Events are immutable once produced.
type FatigueEvent struct {
	MuscleGroup training.MuscleGroup
	// VolumeLoad is the session's volume load for the muscle group in
	// kg·reps.
	VolumeLoad  float64
	WorkoutDate time.Time
}

// Level is the coarse recovery state derived from the recovery percentage.
type Level string

const (
	LevelFatigued   Level = "fatigued"
	LevelRecovering Level = "recovering"
	LevelFresh      Level = "fresh"
)

// Status is the derived recovery state of a single muscle group. It is
// recomputed on demand and never persisted.
type Status struct {
	MuscleGroup     training.MuscleGroup
	Category        training.Category
	RecoveryPercent int
	Level           Level
	// LastWorkout is the date of the most recent event for the group, nil
	// when the group has no events at all.
	LastWorkout *time.Time
	// HoursUntilFresh estimates when the group reaches the fresh threshold.
	// Nil when the group is already fresh. The estimate treats the stacked
	// multi-event fatigue as if it decayed under the single time constant of
	// the most recent event, so it is advisory only.
	HoursUntilFresh *float64
}

// Calculate derives the recovery status of every known muscle group at the
// given time. Groups without events default to 100% fresh. Fatigue from
// multiple events stacks: each event contributes an independent exponential
// residual and the residuals are summed, so back-to-back sessions compound.
func Calculate(events []FatigueEvent, now time.Time) []Status {
	byGroup := make(map[training.MuscleGroup][]FatigueEvent)
	for _, event := range events {
		byGroup[event.MuscleGroup] = append(byGroup[event.MuscleGroup], event)
	}

	groups := training.MuscleGroups()
	statuses := make([]Status, 0, len(groups))
	for _, group := range groups {
		statuses = append(statuses, groupStatus(group, byGroup[group], now))
	}
	return statuses
}

// groupStatus computes the status of a single muscle group from its events.
func groupStatus(group training.MuscleGroup, events []FatigueEvent, now time.Time) Status {
	status := Status{
		MuscleGroup:     group,
		Category:        group.Category(),
		RecoveryPercent: 100,
		Level:           LevelFresh,
		LastWorkout:     nil,
		HoursUntilFresh: nil,
	}
	if len(events) == 0 {
		return status
	}

	sorted := make([]FatigueEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].WorkoutDate.Before(sorted[j].WorkoutDate)
	})

	lastWorkout := sorted[len(sorted)-1].WorkoutDate
	status.LastWorkout = &lastWorkout

	totalFatigue := 0.0
	// effectiveTau is the adjusted time constant of the most recent event
	// inside the window, used as the representative constant for the ETA.
	effectiveTau := group.RecoveryTimeConstantHours()
	for _, event := range sorted {
		elapsed := now.Sub(event.WorkoutDate)
		if elapsed < 0 || elapsed > LookbackWindow {
			continue
		}
		tau := adjustedTimeConstant(group, event.VolumeLoad)
		totalFatigue += math.Exp(-elapsed.Hours() / tau)
		effectiveTau = tau
	}

	status.RecoveryPercent = clampPercent(int(math.Round((1 - totalFatigue) * 100)))
	status.Level = levelFor(status.RecoveryPercent)

	if hours, ok := hoursUntilFresh(totalFatigue, effectiveTau); ok {
		status.HoursUntilFresh = &hours
	}
	return status
}

// adjustedTimeConstant stretches the base time constant proportionally to the
// session load relative to the baseline, floored at half the base value.
func adjustedTimeConstant(group training.MuscleGroup, volumeLoad float64) float64 {
	factor := volumeLoad / BaselineVolumeLoad
	if factor < minTimeConstantFactor {
		factor = minTimeConstantFactor
	}
	return group.RecoveryTimeConstantHours() * factor
}

// hoursUntilFresh estimates the time until total fatigue decays to the fresh
// threshold under a single representative time constant. The second return
// value is false when the group is already at or above the threshold.
func hoursUntilFresh(totalFatigue, tau float64) (float64, bool) {
	targetFatigue := 1 - float64(FreshThresholdPercent)/100
	if totalFatigue <= targetFatigue {
		return 0, false
	}
	return -tau * math.Log(targetFatigue/totalFatigue), true
}

func levelFor(percent int) Level {
	switch {
	case percent >= FreshThresholdPercent:
		return LevelFresh
	case percent >= recoveringThresholdPercent:
		return LevelRecovering
	default:
		return LevelFatigued
	}
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
