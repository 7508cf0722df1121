package routes

import (
	"net/http"

	"github.com/pharmavault/backend/internal/api/handlers"
	"github.com/pharmavault/backend/internal/api/middleware"
	"github.com/pharmavault/backend/internal/infrastructure/observability"
)

// Handlers groups every route handler. Nil handlers leave their routes
// unregistered.
type Handlers struct {
	Health       *handlers.HealthHandler
	Medicine     *handlers.MedicineHandler
	Comparison   *handlers.ComparisonHandler
	Vitals       *handlers.VitalsHandler
	Authenticity *handlers.AuthenticityHandler
	Prescription *handlers.PrescriptionHandler
	Assistant    *handlers.AssistantHandler
}

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	handlers Handlers

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// NewRouter creates a new router
func NewRouter(h Handlers, cacheMiddleware *middleware.CacheMiddleware, metrics *observability.Metrics, allowedOrigins []string) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		handlers:        h,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers

	if h.Health != nil {
		r.mux.HandleFunc("GET /health", h.Health.Health)
	} else {
		r.mux.HandleFunc("GET /health", handlers.NewHealthHandler().Health)
	}

	// Catalog endpoints
	if h.Medicine != nil {
		r.mux.HandleFunc("GET /api/medicines", h.Medicine.ListMedicines)
		r.mux.HandleFunc("GET /api/medicines/{id}", h.Medicine.GetMedicine)
		r.mux.HandleFunc("GET /api/medicines/{id}/alternatives", h.Medicine.GetAlternatives)
		r.mux.HandleFunc("POST /api/medicines/interactions", h.Medicine.CheckInteractions)
	}

	if h.Comparison != nil {
		r.mux.HandleFunc("POST /api/comparisons", h.Comparison.Compare)
	}

	// Deterministic analysis
	if h.Vitals != nil {
		r.mux.HandleFunc("POST /api/vitals/parse", h.Vitals.Parse)
		r.mux.HandleFunc("POST /api/vitals/analyze", h.Vitals.Analyze)
		r.mux.HandleFunc("POST /api/vitals/respond", h.Vitals.Respond)
		r.mux.HandleFunc("POST /api/triage", h.Vitals.Triage)
	}

	if h.Authenticity != nil {
		r.mux.HandleFunc("POST /api/authenticity/verify", h.Authenticity.Verify)
	}

	if h.Prescription != nil {
		r.mux.HandleFunc("POST /api/prescriptions/analyze", h.Prescription.Analyze)
		r.mux.HandleFunc("POST /api/prescriptions/extract", h.Prescription.Extract)
	}

	// Assistant and conversations
	if h.Assistant != nil {
		r.mux.HandleFunc("POST /api/assistant/messages", h.Assistant.Reply)
		r.mux.HandleFunc("POST /api/conversations", h.Assistant.CreateConversation)
		r.mux.HandleFunc("GET /api/conversations", h.Assistant.ListConversations)
		r.mux.HandleFunc("GET /api/conversations/{id}", h.Assistant.GetConversation)
		r.mux.HandleFunc("DELETE /api/conversations/{id}", h.Assistant.DeleteConversation)
		r.mux.HandleFunc("PUT /api/conversations/{id}/medicine", h.Assistant.SelectMedicine)
		r.mux.HandleFunc("POST /api/conversations/{id}/messages", h.Assistant.SendMessage)
		r.mux.HandleFunc("POST /api/conversations/{id}/questions", h.Assistant.AskQuestion)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = middleware.RouteCapture(r.mux)
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
