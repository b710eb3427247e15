package routes

import (
	"net/http"

	"github.com/consultacerta/noshow-backend/internal/api/handlers"
	"github.com/consultacerta/noshow-backend/internal/api/middleware"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	predictionHandler    *handlers.PredictionHandler
	healthProfileHandler *handlers.HealthProfileHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	predictionHandler *handlers.PredictionHandler,
	healthProfileHandler *handlers.HealthProfileHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		predictionHandler:    predictionHandler,
		healthProfileHandler: healthProfileHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Liveness endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Scoring endpoints
	r.mux.HandleFunc("GET /api/ml/health", r.predictionHandler.Health)
	r.mux.HandleFunc("POST /api/ml/predict-noshow", r.predictionHandler.PredictNoShow)
	r.mux.HandleFunc("GET /api/ml/predictions/{appointmentId}", r.predictionHandler.GetPrediction)

	// Health profile endpoints
	r.mux.HandleFunc("POST /api/ml/health-profiles", r.healthProfileHandler.SaveProfile)
	r.mux.HandleFunc("GET /api/ml/health-profiles/{patientId}", r.healthProfileHandler.GetProfile)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
