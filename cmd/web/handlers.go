package main

import (
	"bytes"
	"net/http"
	"time"

	"github.com/mkoskin/treeni/internal/catalog"
	"github.com/mkoskin/treeni/internal/errors"
	"github.com/mkoskin/treeni/internal/planner"
	"github.com/mkoskin/treeni/internal/training"
	"github.com/yuin/goldmark"
)

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type muscleSplitResponse struct {
	MuscleGroup string  `json:"muscle_group"`
	Percent     float64 `json:"percent"`
}

type exerciseResponse struct {
	ID              int                   `json:"id"`
	Name            string                `json:"name"`
	EquipmentType   string                `json:"equipment_type"`
	MovementPattern string                `json:"movement_pattern"`
	MuscleSplits    []muscleSplitResponse `json:"muscle_splits"`
}

func newExerciseResponse(exercise training.Exercise) exerciseResponse {
	splits := make([]muscleSplitResponse, 0, len(exercise.Splits))
	for _, split := range exercise.Splits {
		splits = append(splits, muscleSplitResponse{
			MuscleGroup: string(split.MuscleGroup),
			Percent:     split.Percent,
		})
	}
	return exerciseResponse{
		ID:              exercise.ID,
		Name:            exercise.Name,
		EquipmentType:   string(exercise.Type),
		MovementPattern: string(exercise.Pattern),
		MuscleSplits:    splits,
	}
}

type recoveryStatusResponse struct {
	MuscleGroup     string     `json:"muscle_group"`
	Category        string     `json:"category"`
	RecoveryPercent int        `json:"recovery_percent"`
	Level           string     `json:"level"`
	LastWorkout     *time.Time `json:"last_workout,omitempty"`
	HoursUntilFresh *float64   `json:"hours_until_fresh,omitempty"`
}

// recoveryGET reports the current recovery state of every muscle group.
func (app *application) recoveryGET(w http.ResponseWriter, r *http.Request) {
	statuses, err := app.plannerService.RecoveryStatus(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response := make([]recoveryStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		response = append(response, recoveryStatusResponse{
			MuscleGroup:     string(status.MuscleGroup),
			Category:        string(status.Category),
			RecoveryPercent: status.RecoveryPercent,
			Level:           string(status.Level),
			LastWorkout:     status.LastWorkout,
			HoursUntilFresh: status.HoursUntilFresh,
		})
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type volumeGroupResponse struct {
	MuscleGroup     string  `json:"muscle_group"`
	CurrentSets     int     `json:"current_sets"`
	MinSets         int     `json:"min_sets"`
	MaxSets         int     `json:"max_sets"`
	RemainingSets   int     `json:"remaining_sets"`
	ProgressPercent float64 `json:"progress_percent"`
}

type volumeResponse struct {
	WeekStart    string                `json:"week_start"`
	MuscleGroups []volumeGroupResponse `json:"muscle_groups"`
	OnTrack      bool                  `json:"on_track"`
}

// volumeGET reports the current week's volume progress per muscle group.
func (app *application) volumeGET(w http.ResponseWriter, r *http.Request) {
	tracker, err := app.plannerService.WeeklyVolume(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response := volumeResponse{
		WeekStart: tracker.WeekStart.Format(time.DateOnly),
		OnTrack:   tracker.IsOnTrack(),
	}
	for _, group := range training.MuscleGroups() {
		target, ok := tracker.Targets[group]
		if !ok {
			continue
		}
		response.MuscleGroups = append(response.MuscleGroups, volumeGroupResponse{
			MuscleGroup:     string(group),
			CurrentSets:     tracker.Current[group],
			MinSets:         target.MinSets,
			MaxSets:         target.MaxSets,
			RemainingSets:   tracker.Remaining[group],
			ProgressPercent: tracker.ProgressPercent(group),
		})
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type generateWorkoutRequest struct {
	TargetDurationMinutes int `json:"target_duration_minutes"`
}

type plannedExerciseResponse struct {
	exerciseResponse
	Alternatives []exerciseResponse `json:"alternatives"`
}

type workoutPlanResponse struct {
	Exercises                []plannedExerciseResponse `json:"exercises"`
	FloorSwitches            int                       `json:"floor_switches"`
	EstimatedDurationMinutes int                       `json:"estimated_duration_minutes"`
}

// workoutGeneratePOST generates a workout plan for the requested duration.
func (app *application) workoutGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var request generateWorkoutRequest
	if !app.decodeJSON(w, r, &request) {
		return
	}
	if request.TargetDurationMinutes <= 0 {
		app.clientError(w, r, http.StatusBadRequest, "target_duration_minutes must be positive")
		return
	}

	plan, err := app.plannerService.GenerateWorkout(r.Context(), request.TargetDurationMinutes)
	if err != nil {
		app.metrics.GenerationFailed()
		switch {
		case errors.Is(err, planner.ErrNoAvailableEquipment):
			app.clientError(w, r, http.StatusUnprocessableEntity, "no available equipment")
		case errors.Is(err, planner.ErrInsufficientExercises):
			app.clientError(w, r, http.StatusUnprocessableEntity,
				"not enough exercises for a meaningful session")
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.metrics.WorkoutGenerated()

	response := workoutPlanResponse{
		FloorSwitches:            plan.FloorSwitches,
		EstimatedDurationMinutes: plan.EstimatedDurationMinutes,
	}
	for _, exercise := range plan.Exercises {
		planned := plannedExerciseResponse{
			exerciseResponse: newExerciseResponse(exercise),
			Alternatives:     []exerciseResponse{},
		}
		for _, alternative := range plan.Alternatives[exercise.ID] {
			planned.Alternatives = append(planned.Alternatives, newExerciseResponse(alternative))
		}
		response.Exercises = append(response.Exercises, planned)
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type loggedSetRequest struct {
	ExerciseID    int     `json:"exercise_id"`
	WeightKg      float64 `json:"weight_kg"`
	MinReps       int     `json:"min_reps"`
	MaxReps       int     `json:"max_reps"`
	CompletedReps *int    `json:"completed_reps"`
}

type logWorkoutRequest struct {
	Date        string             `json:"date"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at"`
	Sets        []loggedSetRequest `json:"sets"`
}

// workoutLogPOST records a performed workout into the training history.
func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	var request logWorkoutRequest
	if !app.decodeJSON(w, r, &request) {
		return
	}

	date, err := time.Parse(time.DateOnly, request.Date)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "date must be formatted as 2006-01-02")
		return
	}

	log := catalog.WorkoutLog{
		Date:        date,
		StartedAt:   request.StartedAt,
		CompletedAt: request.CompletedAt,
		Sets:        make([]catalog.LoggedSet, 0, len(request.Sets)),
	}
	for _, set := range request.Sets {
		log.Sets = append(log.Sets, catalog.LoggedSet{
			ExerciseID:    set.ExerciseID,
			WeightKg:      set.WeightKg,
			MinReps:       set.MinReps,
			MaxReps:       set.MaxReps,
			CompletedReps: set.CompletedReps,
		})
	}

	if err = app.history.RecordWorkout(r.Context(), log); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exerciseInfoResponse struct {
	exerciseResponse
	DescriptionHTML string `json:"description_html"`
}

// exerciseInfoGET returns a catalog exercise with its description rendered
// from Markdown to HTML.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseIDParam(w, r, "exerciseID")
	if !ok {
		return
	}

	exercise, err := app.plannerService.Exercise(r.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, planner.ErrExerciseNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	var description bytes.Buffer
	if err = goldmark.Convert([]byte(exercise.DescriptionMarkdown), &description); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render exercise description"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, exerciseInfoResponse{
		exerciseResponse: newExerciseResponse(exercise),
		DescriptionHTML:  description.String(),
	})
}

type substituteResponse struct {
	Exercise             exerciseResponse `json:"exercise"`
	SimilarityScore      float64          `json:"similarity_score"`
	MuscleOverlapPercent float64          `json:"muscle_overlap_percent"`
	DifficultyDelta      int              `json:"difficulty_delta"`
}

// exerciseReplacePOST picks the best substitute for an exercise under the
// current equipment availability.
func (app *application) exerciseReplacePOST(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseIDParam(w, r, "exerciseID")
	if !ok {
		return
	}

	substitute, err := app.plannerService.ReplaceExercise(r.Context(), exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrExerciseNotFound):
			http.NotFound(w, r)
		case errors.Is(err, planner.ErrNoSuitableSubstitutes):
			app.metrics.SubstitutionFailed()
			app.clientError(w, r, http.StatusUnprocessableEntity, "no suitable substitutes")
		case errors.Is(err, planner.ErrEquipmentUnavailable):
			app.metrics.SubstitutionFailed()
			app.clientError(w, r, http.StatusUnprocessableEntity, "equipment unavailable for all substitutes")
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.metrics.SubstitutionServed()

	app.writeJSON(w, r, http.StatusOK, substituteResponse{
		Exercise:             newExerciseResponse(substitute.Exercise),
		SimilarityScore:      substitute.SimilarityScore,
		MuscleOverlapPercent: substitute.MuscleOverlapPercent,
		DifficultyDelta:      substitute.DifficultyDelta,
	})
}

type equipmentAvailabilityRequest struct {
	Available bool `json:"available"`
}

// equipmentAvailabilityPOST marks an equipment instance available or out of
// order.
func (app *application) equipmentAvailabilityPOST(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := app.parseIDParam(w, r, "equipmentID")
	if !ok {
		return
	}

	var request equipmentAvailabilityRequest
	if !app.decodeJSON(w, r, &request) {
		return
	}

	if err := app.equipment.SetAvailability(r.Context(), equipmentID, request.Available); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
