package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcdev12/timeauction/go/internal/game"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/room"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles operator commands for the session
type AdminHandler struct {
	service *game.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *game.Service) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

type resetRequest struct {
	TotalRounds       int     `json:"total_rounds"`
	InitialTimeBudget float64 `json:"initial_time_budget"`
	FoldThreshold     float64 `json:"fold_threshold"`
}

// HandleOpenRound handles POST /api/admin/open-round
func (h *AdminHandler) HandleOpenRound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opened, err := h.service.OpenRound(r.Context())
	if err != nil {
		if errors.Is(err, room.ErrRoundLimitReached) {
			// The final state still goes back so the console can render it.
			writeJSON(w, http.StatusConflict, opened)
			return
		}
		log.Error().Err(err).Msg("failed to open round")
		http.Error(w, "Failed to open round", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, opened)
}

// HandleSettle handles POST /api/admin/settle, forcing settlement with
// whatever bids are on record.
func (h *AdminHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.service.ForceSettle(r.Context()); err != nil {
		log.Error().Err(err).Msg("forced settlement failed")
		http.Error(w, "Failed to settle round", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleReset handles POST /api/admin/reset
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	settings := models.DefaultGameSettings()
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		if req.TotalRounds > 0 {
			settings.TotalRounds = req.TotalRounds
		}
		if req.InitialTimeBudget > 0 {
			settings.InitialTimeBudget = req.InitialTimeBudget
		}
		if req.FoldThreshold > 0 {
			settings.FoldThreshold = req.FoldThreshold
		}
	}

	fresh, err := h.service.Reset(r.Context(), settings)
	if err != nil {
		log.Error().Err(err).Msg("failed to reset session")
		http.Error(w, "Failed to reset session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, fresh)
}

// RegisterRoutes registers admin routes with an HTTP mux
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/admin/open-round", h.HandleOpenRound)
	mux.HandleFunc("/api/admin/settle", h.HandleSettle)
	mux.HandleFunc("/api/admin/reset", h.HandleReset)
}
