// Package catalog provides SQLite-backed repositories for the exercise
// catalog, gym equipment, weekly volume targets, substitute rankings, and the
// training history.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	annotated "github.com/mkoskin/treeni/internal/errors"
	"github.com/mkoskin/treeni/internal/sqlite"
	"github.com/mkoskin/treeni/internal/training"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = annotated.NewSentinel("not found")

const timestampFormat = "2006-01-02T15:04:05.000Z"
const dateFormat = time.DateOnly

// baseRepository holds the dependencies shared by every repository.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// Repositories bundles all catalog repositories over one database.
type Repositories struct {
	Exercises   *ExerciseRepository
	Equipment   *EquipmentRepository
	History     *HistoryRepository
	Targets     *TargetRepository
	Substitutes *SubstituteRepository
}

// NewRepositories creates the catalog repositories backed by db.
func NewRepositories(db *sqlite.Database, logger *slog.Logger) *Repositories {
	base := newBaseRepository(db, logger)
	return &Repositories{
		Exercises:   &ExerciseRepository{baseRepository: base},
		Equipment:   &EquipmentRepository{baseRepository: base},
		History:     &HistoryRepository{baseRepository: base},
		Targets:     &TargetRepository{baseRepository: base},
		Substitutes: &SubstituteRepository{baseRepository: base},
	}
}

// fetchSplits retrieves the muscle group splits for an exercise in insertion
// order.
func (r baseRepository) fetchSplits(ctx context.Context, exerciseID int) (_ []training.MuscleGroupSplit, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT muscle_group, split_percent
        FROM exercise_muscle_splits
        WHERE exercise_id = ?
        ORDER BY rowid`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query muscle splits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var splits []training.MuscleGroupSplit
	for rows.Next() {
		var (
			groupStr string
			percent  float64
		)
		if err = rows.Scan(&groupStr, &percent); err != nil {
			return nil, fmt.Errorf("scan muscle split: %w", err)
		}
		group, err := training.ParseMuscleGroup(groupStr)
		if err != nil {
			return nil, fmt.Errorf("parse muscle group: %w", err)
		}
		splits = append(splits, training.MuscleGroupSplit{MuscleGroup: group, Percent: percent})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return splits, nil
}
