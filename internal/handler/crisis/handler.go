package crisis

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/feelbetterai/backend/internal/store"
	"github.com/feelbetterai/backend/pkg/utils"
)

// Handler exposes the crisis event audit trail over HTTP.
type Handler struct {
	store store.Store
}

// New creates the crisis handler.
func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the crisis routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/crisis/events", h.handleEvents)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	userID := utils.UserID(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.store.ListCrisisEvents(r.Context(), userID, limit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load crisis events")
		return
	}

	utils.RespondJSON(w, http.StatusOK, events)
}
