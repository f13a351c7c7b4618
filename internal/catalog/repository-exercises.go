package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkoskin/treeni/internal/planner"
	"github.com/mkoskin/treeni/internal/training"
)

// ExerciseRepository reads the exercise catalog.
type ExerciseRepository struct {
	baseRepository
}

// Get retrieves a single exercise by ID.
func (r *ExerciseRepository) Get(ctx context.Context, id int) (training.Exercise, error) {
	var (
		name        string
		typeStr     string
		patternStr  string
		description string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, equipment_type, movement_pattern, description_markdown
		FROM exercises
		WHERE id = ?`, id).Scan(&name, &typeStr, &patternStr, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return training.Exercise{}, planner.ErrExerciseNotFound
	}
	if err != nil {
		return training.Exercise{}, fmt.Errorf("query exercise: %w", err)
	}

	return r.buildExercise(ctx, id, name, typeStr, patternStr, description)
}

// List returns the full exercise catalog with muscle group splits, in catalog
// order.
func (r *ExerciseRepository) List(ctx context.Context) (_ []training.Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, equipment_type, movement_pattern, description_markdown
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	type exerciseRow struct {
		id          int
		name        string
		typeStr     string
		patternStr  string
		description string
	}
	var scanned []exerciseRow
	for rows.Next() {
		var row exerciseRow
		if err = rows.Scan(&row.id, &row.name, &row.typeStr, &row.patternStr, &row.description); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	exercises := make([]training.Exercise, 0, len(scanned))
	for _, row := range scanned {
		exercise, err := r.buildExercise(ctx, row.id, row.name, row.typeStr, row.patternStr, row.description)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	return exercises, nil
}

// buildExercise parses the enum columns, loads the splits, and validates the
// exercise through its constructor.
func (r *ExerciseRepository) buildExercise(
	ctx context.Context,
	id int,
	name, typeStr, patternStr, description string,
) (training.Exercise, error) {
	typ, err := training.ParseEquipmentType(typeStr)
	if err != nil {
		return training.Exercise{}, fmt.Errorf("exercise %d: %w", id, err)
	}
	pattern, err := training.ParseMovementPattern(patternStr)
	if err != nil {
		return training.Exercise{}, fmt.Errorf("exercise %d: %w", id, err)
	}

	splits, err := r.fetchSplits(ctx, id)
	if err != nil {
		return training.Exercise{}, fmt.Errorf("fetch splits for exercise %d: %w", id, err)
	}

	exercise, err := training.NewExercise(id, name, typ, pattern, splits)
	if err != nil {
		return training.Exercise{}, fmt.Errorf("build exercise %d: %w", id, err)
	}
	exercise.DescriptionMarkdown = description
	return exercise, nil
}
