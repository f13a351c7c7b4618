package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkoskin/treeni/internal/training"
	"github.com/mkoskin/treeni/internal/volume"
)

// TargetRepository reads and writes the weekly volume targets.
type TargetRepository struct {
	baseRepository
}

// List returns the configured weekly set targets per muscle group, in
// canonical muscle group order.
func (r *TargetRepository) List(ctx context.Context) (_ []volume.Target, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT muscle_group, min_sets, max_sets
		FROM weekly_volume_targets`)
	if err != nil {
		return nil, fmt.Errorf("query volume targets: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	byGroup := make(map[training.MuscleGroup]volume.Target)
	for rows.Next() {
		var (
			target   volume.Target
			groupStr string
		)
		if err = rows.Scan(&groupStr, &target.MinSets, &target.MaxSets); err != nil {
			return nil, fmt.Errorf("scan volume target: %w", err)
		}
		if target.MuscleGroup, err = training.ParseMuscleGroup(groupStr); err != nil {
			return nil, fmt.Errorf("volume target: %w", err)
		}
		byGroup[target.MuscleGroup] = target
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	var targets []volume.Target
	for _, group := range training.MuscleGroups() {
		if target, ok := byGroup[group]; ok {
			targets = append(targets, target)
		}
	}

	return targets, nil
}

// Set upserts the weekly set target for a muscle group.
func (r *TargetRepository) Set(ctx context.Context, target volume.Target) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO weekly_volume_targets (muscle_group, min_sets, max_sets)
		VALUES (?, ?, ?)
		ON CONFLICT (muscle_group) DO UPDATE SET
			min_sets = excluded.min_sets,
			max_sets = excluded.max_sets`,
		string(target.MuscleGroup), target.MinSets, target.MaxSets); err != nil {
		return fmt.Errorf("save volume target: %w", err)
	}
	return nil
}
