package training

import "fmt"

// EquipmentType identifies the kind of equipment an exercise requires.
type EquipmentType string

const (
	EquipmentBarbell    EquipmentType = "barbell"
	EquipmentDumbbells  EquipmentType = "dumbbells"
	EquipmentCable      EquipmentType = "cable"
	EquipmentMachine    EquipmentType = "machine"
	EquipmentBodyweight EquipmentType = "bodyweight"
)

// equipmentPreference ranks equipment kinds for exercise selection: cables
// first, then free weights and bodyweight, machines last. Leg training is an
// exception handled by catalog-level preference records, not by this table.
//
//nolint:gochecknoglobals // immutable reference data, never mutated.
var equipmentPreference = map[EquipmentType]int{
	EquipmentCable:      4,
	EquipmentDumbbells:  3,
	EquipmentBodyweight: 3,
	EquipmentBarbell:    2,
	EquipmentMachine:    1,
}

// PreferenceWeight returns the fixed selection preference for the equipment
// type. Higher is preferred.
func (t EquipmentType) PreferenceWeight() int {
	return equipmentPreference[t]
}

// ParseEquipmentType converts a stored string into an EquipmentType.
func ParseEquipmentType(s string) (EquipmentType, error) {
	t := EquipmentType(s)
	if _, ok := equipmentPreference[t]; !ok {
		return "", fmt.Errorf("unknown equipment type: %q", s)
	}
	return t, nil
}

// EquipmentInstance is a single physical piece of equipment on a gym floor.
// It is read-only input supplied by the gym-layout provider.
type EquipmentInstance struct {
	ID        int
	Type      EquipmentType
	Available bool
	FloorID   int
	Capacity  int
}
