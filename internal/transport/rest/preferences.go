package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

type preferenceService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	Set(ctx context.Context, userID uuid.UUID, p *domain.CalendarPreferences) (*domain.CalendarPreferences, error)
}

// PreferenceHandler serves the acting user's calendar preferences.
type PreferenceHandler struct {
	svc preferenceService
	log *slog.Logger
}

// NewPreferenceHandler creates a PreferenceHandler.
func NewPreferenceHandler(svc preferenceService, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{svc: svc, log: logger.With("handler", "preferences")}
}

// Get handles GET /api/preferences.
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, eventjson.PreferencesOf(p))
}

// Put handles PUT /api/preferences. The body replaces the stored
// preferences wholesale; user_id and updated_at in it are ignored.
func (h *PreferenceHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(w, r, h.log, domain.ErrUnauthorized)
		return
	}
	var req eventjson.Preferences
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Set(r.Context(), userID, req.Domain())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, eventjson.PreferencesOf(p))
}
