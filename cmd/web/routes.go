package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	shared := func(pattern string, next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
			app.observeRequest(pattern, app.timeout(next)))))
	}
	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		mux.Handle(pattern, shared(pattern, handlerFunc))
	}

	handle("GET /api/healthy", app.healthy)
	handle("GET /api/recovery", app.recoveryGET)
	handle("GET /api/volume", app.volumeGET)
	handle("POST /api/workouts/generate", app.workoutGeneratePOST)
	handle("POST /api/workouts/log", app.workoutLogPOST)
	handle("GET /api/exercises/{exerciseID}", app.exerciseInfoGET)
	handle("POST /api/exercises/{exerciseID}/replace", app.exerciseReplacePOST)
	handle("POST /api/equipment/{equipmentID}/availability", app.equipmentAvailabilityPOST)

	mux.Handle("GET /metrics", app.metrics.Handler())

	return mux
}
