package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoskin/treeni/internal/recovery"
	"github.com/mkoskin/treeni/internal/training"
	"github.com/mkoskin/treeni/internal/volume"
	"golang.org/x/sync/errgroup"
)

// CatalogRepository provides read access to the exercise catalog.
type CatalogRepository interface {
	List(ctx context.Context) ([]training.Exercise, error)
	Get(ctx context.Context, id int) (training.Exercise, error)
}

// EquipmentRepository lists the gym's equipment instances with their current
// availability.
type EquipmentRepository interface {
	List(ctx context.Context) ([]training.EquipmentInstance, error)
}

// HistoryRepository exposes the training history needed for recovery and
// volume calculations.
type HistoryRepository interface {
	FatigueEvents(ctx context.Context, since time.Time) ([]recovery.FatigueEvent, error)
	CompletedSetCounts(ctx context.Context, weekStart time.Time) (map[training.MuscleGroup]int, error)
}

// TargetRepository provides the configured weekly volume targets.
type TargetRepository interface {
	List(ctx context.Context) ([]volume.Target, error)
}

// SubstituteRepository lists the curated substitutes for an exercise.
type SubstituteRepository interface {
	ListForExercise(ctx context.Context, exerciseID int) ([]Substitute, error)
}

// Service handles the business logic for adaptive workout planning.
type Service struct {
	catalog     CatalogRepository
	equipment   EquipmentRepository
	history     HistoryRepository
	targets     TargetRepository
	substitutes SubstituteRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new planner service.
func NewService(
	catalog CatalogRepository,
	equipment EquipmentRepository,
	history HistoryRepository,
	targets TargetRepository,
	substitutes SubstituteRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:     catalog,
		equipment:   equipment,
		history:     history,
		targets:     targets,
		substitutes: substitutes,
		logger:      logger,
		now:         time.Now,
	}
}

// RecoveryStatus computes the current recovery state of every muscle group
// from the training history.
func (s *Service) RecoveryStatus(ctx context.Context) ([]recovery.Status, error) {
	now := s.now()
	events, err := s.history.FatigueEvents(ctx, now.Add(-recovery.LookbackWindow))
	if err != nil {
		return nil, fmt.Errorf("get fatigue events: %w", err)
	}
	return recovery.Calculate(events, now), nil
}

// WeeklyVolume computes the current week's per-muscle-group volume progress
// against the configured targets.
func (s *Service) WeeklyVolume(ctx context.Context) (volume.Tracker, error) {
	weekStart := volume.WeekStart(s.now())

	counts, err := s.history.CompletedSetCounts(ctx, weekStart)
	if err != nil {
		return volume.Tracker{}, fmt.Errorf("get completed set counts: %w", err)
	}

	targets, err := s.targets.List(ctx)
	if err != nil {
		return volume.Tracker{}, fmt.Errorf("list volume targets: %w", err)
	}

	return volume.Compute(weekStart, counts, targets), nil
}

// GenerateWorkout creates a workout plan for the target duration, prioritising
// muscle groups with remaining weekly volume debt and the equipment currently
// available in the gym.
func (s *Service) GenerateWorkout(ctx context.Context, targetDurationMinutes int) (Plan, error) {
	var (
		catalog   []training.Exercise
		equipment []training.EquipmentInstance
		tracker   volume.Tracker
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if catalog, err = s.catalog.List(gctx); err != nil {
			return fmt.Errorf("list exercises: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if equipment, err = s.equipment.List(gctx); err != nil {
			return fmt.Errorf("list equipment: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tracker, err = s.WeeklyVolume(gctx); err != nil {
			return fmt.Errorf("compute weekly volume: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}

	needs := make([]VolumeNeed, 0, len(tracker.Remaining))
	for _, group := range training.MuscleGroups() {
		if remaining := tracker.Remaining[group]; remaining > 0 {
			needs = append(needs, VolumeNeed{MuscleGroup: group, RemainingSets: remaining})
		}
	}

	plan, err := Generate(Request{
		TargetDurationMinutes: targetDurationMinutes,
		Equipment:             equipment,
		VolumeNeeds:           needs,
	}, catalog)
	if err != nil {
		return Plan{}, fmt.Errorf("generate workout: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout generated",
		slog.Int("exercises", len(plan.Exercises)),
		slog.Int("floor_switches", plan.FloorSwitches),
		slog.Int("estimated_duration_minutes", plan.EstimatedDurationMinutes))

	return plan, nil
}

// ReplaceExercise finds the best substitute for an exercise under the current
// equipment availability.
func (s *Service) ReplaceExercise(ctx context.Context, exerciseID int) (Substitute, error) {
	if _, err := s.catalog.Get(ctx, exerciseID); err != nil {
		return Substitute{}, fmt.Errorf("get exercise %d: %w", exerciseID, err)
	}

	candidates, err := s.substitutes.ListForExercise(ctx, exerciseID)
	if err != nil {
		return Substitute{}, fmt.Errorf("list substitutes for exercise %d: %w", exerciseID, err)
	}

	equipment, err := s.equipment.List(ctx)
	if err != nil {
		return Substitute{}, fmt.Errorf("list equipment: %w", err)
	}

	substitute, err := PickSubstitute(candidates, equipment)
	if err != nil {
		return Substitute{}, fmt.Errorf("pick substitute for exercise %d: %w", exerciseID, err)
	}
	return substitute, nil
}

// Exercise retrieves a catalog exercise by ID.
func (s *Service) Exercise(ctx context.Context, id int) (training.Exercise, error) {
	exercise, err := s.catalog.Get(ctx, id)
	if err != nil {
		return training.Exercise{}, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exercise, nil
}
