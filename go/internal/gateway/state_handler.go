package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Reader roles accepted on state and websocket endpoints.
const (
	RoleAdmin     = "admin"
	RolePlayer    = "player"
	RoleSpectator = "spectator"
)

// StateProvider interface defines methods for retrieving game state
type StateProvider interface {
	GetGameState(ctx context.Context, role string) (*GameStateResponse, error)
}

// GameStateResponse represents the complete visible state of the session
type GameStateResponse struct {
	Room    RoomInfo     `json:"room"`
	Players []PlayerInfo `json:"players"`
	Bids    []BidInfo    `json:"bids"`
}

// RoomInfo represents the session room
type RoomInfo struct {
	RoomID            string    `json:"room_id"`
	Status            string    `json:"status"`
	CurrentRound      int       `json:"current_round"`
	TotalRounds       int       `json:"total_rounds"`
	InitialTimeBudget float64   `json:"initial_time_budget"`
	FoldThreshold     float64   `json:"fold_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PlayerInfo represents one roster entry in canonical ranking order
type PlayerInfo struct {
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	TimeLeft   float64 `json:"time_left"`
	Tokens     int     `json:"tokens"`
	Eliminated bool    `json:"eliminated"`
}

// BidInfo represents one current-round bid. While the round is open,
// non-admin readers see only that the bid exists; duration and fold stay
// nil until reveal.
type BidInfo struct {
	PlayerID        string   `json:"player_id"`
	HasBid          bool     `json:"has_bid"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	IsFold          *bool    `json:"is_fold,omitempty"`
}

// StateHandler handles HTTP requests for game state
type StateHandler struct {
	stateProvider StateProvider
}

// NewStateHandler creates a new state handler
func NewStateHandler(provider StateProvider) *StateHandler {
	return &StateHandler{
		stateProvider: provider,
	}
}

// HandleGetState handles GET /api/state?role=player|admin|spectator
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	role := r.URL.Query().Get("role")
	switch role {
	case RoleAdmin, RolePlayer, RoleSpectator:
	case "":
		role = RoleSpectator
	default:
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	state, err := h.stateProvider.GetGameState(r.Context(), role)
	if err != nil {
		log.Error().Err(err).Str("role", role).Msg("failed to get game state")
		http.Error(w, "Failed to get game state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Error().Err(err).Msg("failed to encode game state response")
	}
}

// RegisterRoutes registers state routes with an HTTP mux
func (h *StateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", h.HandleGetState)
}
