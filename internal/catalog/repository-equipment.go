package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkoskin/treeni/internal/training"
)

// EquipmentRepository reads the gym's equipment layout.
type EquipmentRepository struct {
	baseRepository
}

// List returns every equipment instance with its floor and availability, in
// instance order.
func (r *EquipmentRepository) List(ctx context.Context) (_ []training.EquipmentInstance, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, equipment_type, floor_id, available, capacity
		FROM equipment_instances
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query equipment instances: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var instances []training.EquipmentInstance
	for rows.Next() {
		var (
			instance training.EquipmentInstance
			typeStr  string
		)
		if err = rows.Scan(&instance.ID, &typeStr, &instance.FloorID, &instance.Available, &instance.Capacity); err != nil {
			return nil, fmt.Errorf("scan equipment instance: %w", err)
		}
		if instance.Type, err = training.ParseEquipmentType(typeStr); err != nil {
			return nil, fmt.Errorf("equipment instance %d: %w", instance.ID, err)
		}
		instances = append(instances, instance)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return instances, nil
}

// SetAvailability marks an equipment instance available or out of order.
func (r *EquipmentRepository) SetAvailability(ctx context.Context, id int, available bool) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE equipment_instances
		SET available = ?
		WHERE id = ?`, available, id)
	if err != nil {
		return fmt.Errorf("update equipment availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("equipment instance %d: %w", id, ErrNotFound)
	}

	return nil
}
