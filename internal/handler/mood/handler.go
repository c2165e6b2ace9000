package mood

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/feelbetterai/backend/internal/service/dashboard"
	"github.com/feelbetterai/backend/internal/store"
	"github.com/feelbetterai/backend/pkg/utils"
)

// Handler exposes mood history and the dashboard over HTTP.
type Handler struct {
	store        store.Store
	dashboardSvc *dashboard.Service
}

// New creates the mood handler.
func New(st store.Store, dashboardSvc *dashboard.Service) *Handler {
	return &Handler{store: st, dashboardSvc: dashboardSvc}
}

// RegisterRoutes mounts the mood routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood/entries", h.handleEntries)
	r.Get("/mood/average", h.handleAverage)
	r.Get("/mood/dashboard", h.handleDashboard)
}

func (h *Handler) handleEntries(w http.ResponseWriter, r *http.Request) {
	userID := utils.UserID(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	days := queryDays(r, 30)
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	entries, err := h.store.ListMoodEntries(r.Context(), userID, since)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood entries")
		return
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleAverage(w http.ResponseWriter, r *http.Request) {
	userID := utils.UserID(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	days := queryDays(r, 7)
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	average, err := h.store.AverageMood(r.Context(), userID, since)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to compute average mood")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]float64{"averageMood": average})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := utils.UserID(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	board, err := h.dashboardSvc.Build(r.Context(), userID, time.Now())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate mood dashboard")
		return
	}

	utils.RespondJSON(w, http.StatusOK, board)
}

func queryDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return fallback
	}
	return days
}
