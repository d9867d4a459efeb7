package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Events      *EventHandler
	Preferences *PreferenceHandler
}

// NewRouter wires the REST surface. api wraps every /api route; the health
// probes stay outside it so they need no token and are never throttled.
func NewRouter(h Handlers, api func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	setFallbacks(r)

	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	// Subrouters do not inherit the parent's fallback handlers.
	setFallbacks(apiRouter)
	if api != nil {
		apiRouter.Use(api)
	}

	// The literal .ics route must be registered before /events/{id}.
	apiRouter.HandleFunc("/events.ics", h.Events.ExportICS).Methods(http.MethodGet)

	apiRouter.HandleFunc("/events", h.Events.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/events", h.Events.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/events/{id}", h.Events.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/events/{id}", h.Events.Update).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/events/{id}", h.Events.Delete).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/events/{id}/redetect", h.Events.Redetect).Methods(http.MethodPost)
	apiRouter.HandleFunc("/events/{id}/reschedule", h.Events.Reschedule).Methods(http.MethodPost)

	apiRouter.HandleFunc("/conflicts/check", h.Events.CheckConflicts).Methods(http.MethodPost)
	apiRouter.HandleFunc("/scheduling/suggestions", h.Events.Suggest).Methods(http.MethodPost)

	apiRouter.HandleFunc("/preferences", h.Preferences.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/preferences", h.Preferences.Put).Methods(http.MethodPut)

	return r
}

func setFallbacks(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}
