package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoskin/treeni/internal/recovery"
	"github.com/mkoskin/treeni/internal/training"
	"github.com/mkoskin/treeni/internal/volume"
)

// HistoryRepository reads and writes the completed training history.
type HistoryRepository struct {
	baseRepository
}

// LoggedSet is a single performed set in a workout log.
type LoggedSet struct {
	ExerciseID    int
	WeightKg      float64
	MinReps       int
	MaxReps       int
	CompletedReps *int
}

// WorkoutLog is a completed or in-progress workout to record.
type WorkoutLog struct {
	Date        time.Time
	StartedAt   time.Time
	CompletedAt *time.Time
	Sets        []LoggedSet
}

// FatigueEvents derives per-muscle-group fatigue events from the completed
// sets of sessions started at or after since. The volume load of a session
// day credits each muscle group with weight × reps scaled by the exercise's
// split percentage.
func (r *HistoryRepository) FatigueEvents(ctx context.Context, since time.Time) (_ []recovery.FatigueEvent, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT ms.muscle_group,
               s.workout_date,
               s.started_at,
               SUM(es.weight_kg * es.completed_reps * ms.split_percent / 100.0) AS volume_load
        FROM exercise_sets es
        JOIN workout_sessions s ON s.workout_date = es.workout_date
        JOIN exercise_muscle_splits ms ON ms.exercise_id = es.exercise_id
        WHERE es.completed_reps IS NOT NULL
          AND s.workout_date >= ?
        GROUP BY s.workout_date, ms.muscle_group
        ORDER BY s.workout_date`, since.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query fatigue events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var events []recovery.FatigueEvent
	for rows.Next() {
		var (
			groupStr  string
			dateStr   string
			startedAt sql.NullTime
			load      float64
		)
		if err = rows.Scan(&groupStr, &dateStr, &startedAt, &load); err != nil {
			return nil, fmt.Errorf("scan fatigue event: %w", err)
		}

		group, err := training.ParseMuscleGroup(groupStr)
		if err != nil {
			return nil, fmt.Errorf("fatigue event: %w", err)
		}
		eventTime, err := parseEventTime(dateStr, startedAt)
		if err != nil {
			return nil, fmt.Errorf("fatigue event %s: %w", dateStr, err)
		}

		events = append(events, recovery.FatigueEvent{
			MuscleGroup: group,
			VolumeLoad:  load,
			WorkoutDate: eventTime,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return events, nil
}

// CompletedSetCounts counts the completed sets per muscle group for sessions
// on or after weekStart, crediting each set to its movement pattern's primary
// muscle groups.
func (r *HistoryRepository) CompletedSetCounts(
	ctx context.Context,
	weekStart time.Time,
) (_ map[training.MuscleGroup]int, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT e.movement_pattern, COUNT(*) AS completed_sets
        FROM exercise_sets es
        JOIN exercises e ON e.id = es.exercise_id
        WHERE es.completed_reps IS NOT NULL
          AND es.workout_date >= ?
        GROUP BY e.movement_pattern`, weekStart.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query completed set counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	counts := make(map[training.MuscleGroup]int)
	for rows.Next() {
		var (
			patternStr string
			sets       int
		)
		if err = rows.Scan(&patternStr, &sets); err != nil {
			return nil, fmt.Errorf("scan set count: %w", err)
		}
		pattern, err := training.ParseMovementPattern(patternStr)
		if err != nil {
			return nil, fmt.Errorf("set count: %w", err)
		}
		volume.CreditSets(counts, pattern, sets)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return counts, nil
}

// RecordWorkout persists a workout log: the session row plus its sets. Set
// indices are assigned per exercise in log order.
func (r *HistoryRepository) RecordWorkout(ctx context.Context, log WorkoutLog) error {
	dateStr := log.Date.Format(dateFormat)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	var completedAt any
	if log.CompletedAt != nil {
		completedAt = log.CompletedAt.UTC().Format(timestampFormat)
	}
	if _, err = tx.ExecContext(ctx, `
        INSERT INTO workout_sessions (workout_date, started_at, completed_at)
        VALUES (?, ?, ?)
        ON CONFLICT (workout_date) DO UPDATE SET
            started_at = COALESCE(workout_sessions.started_at, excluded.started_at),
            completed_at = excluded.completed_at`,
		dateStr, log.StartedAt.UTC().Format(timestampFormat), completedAt); err != nil {
		return fmt.Errorf("insert workout session: %w", err)
	}

	setIndices := make(map[int]int, len(log.Sets))
	for _, set := range log.Sets {
		setIndices[set.ExerciseID]++
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO exercise_sets (
                workout_date, exercise_id, set_index,
                weight_kg, min_reps, max_reps, completed_reps
            ) VALUES (?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT (workout_date, exercise_id, set_index) DO UPDATE SET
                weight_kg = excluded.weight_kg,
                completed_reps = excluded.completed_reps`,
			dateStr, set.ExerciseID, setIndices[set.ExerciseID],
			set.WeightKg, set.MinReps, set.MaxReps, set.CompletedReps); err != nil {
			return fmt.Errorf("insert exercise set: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// parseEventTime prefers the session's start timestamp and falls back to
// local midnight of the workout date. The started_at column is declared
// TIMESTAMP, so the driver hands it over as a time.Time already.
func parseEventTime(dateStr string, startedAt sql.NullTime) (time.Time, error) {
	if startedAt.Valid {
		return startedAt.Time, nil
	}
	parsed, err := time.ParseInLocation(dateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse workout date: %w", err)
	}
	return parsed, nil
}
