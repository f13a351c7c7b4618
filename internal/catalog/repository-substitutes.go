package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkoskin/treeni/internal/planner"
)

// SubstituteRepository reads the curated exercise substitution rankings.
type SubstituteRepository struct {
	baseRepository
}

// ListForExercise returns the ranked substitutes for an exercise, in curated
// order.
func (r *SubstituteRepository) ListForExercise(ctx context.Context, exerciseID int) (_ []planner.Substitute, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT substitute_exercise_id, similarity_score, muscle_overlap_percent, difficulty_delta
		FROM exercise_substitutes
		WHERE exercise_id = ?
		ORDER BY rowid`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query substitutes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	type substituteRow struct {
		exerciseID           int
		similarityScore      float64
		muscleOverlapPercent float64
		difficultyDelta      int
	}
	var scanned []substituteRow
	for rows.Next() {
		var row substituteRow
		if err = rows.Scan(&row.exerciseID, &row.similarityScore, &row.muscleOverlapPercent, &row.difficultyDelta); err != nil {
			return nil, fmt.Errorf("scan substitute: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	exercises := ExerciseRepository{baseRepository: r.baseRepository}
	substitutes := make([]planner.Substitute, 0, len(scanned))
	for _, row := range scanned {
		exercise, err := exercises.Get(ctx, row.exerciseID)
		if err != nil {
			return nil, fmt.Errorf("get substitute exercise %d: %w", row.exerciseID, err)
		}
		substitutes = append(substitutes, planner.Substitute{
			Exercise:             exercise,
			SimilarityScore:      row.similarityScore,
			MuscleOverlapPercent: row.muscleOverlapPercent,
			DifficultyDelta:      row.difficultyDelta,
		})
	}

	return substitutes, nil
}
