package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/bid"
	"github.com/mcdev12/timeauction/go/internal/player"
	"github.com/rs/zerolog/log"
)

// Waker nudges the round monitor after a successful bid so in-process
// settlement does not wait for the database notification round trip.
type Waker interface {
	Wake()
}

// GameHandler handles the player-facing join and bid endpoints
type GameHandler struct {
	players *player.App
	bids    *bid.App
	waker   Waker
}

// NewGameHandler creates a new game handler
func NewGameHandler(players *player.App, bids *bid.App, waker Waker) *GameHandler {
	return &GameHandler{
		players: players,
		bids:    bids,
		waker:   waker,
	}
}

type joinRequest struct {
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name"`
}

type bidRequest struct {
	PlayerID        string  `json:"player_id"`
	RoundNumber     int     `json:"round_number"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// HandleJoin handles POST /api/join. Joining is idempotent: resubmitting
// the same player_id returns the existing ledger entry with balances
// intact. Omitting player_id mints a fresh identity.
func (h *GameHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	playerID := uuid.New()
	if req.PlayerID != "" {
		parsed, err := uuid.Parse(req.PlayerID)
		if err != nil {
			http.Error(w, "Invalid player_id format", http.StatusBadRequest)
			return
		}
		playerID = parsed
	}

	p, err := h.players.Join(r.Context(), playerID, req.Name)
	if err != nil {
		if errors.Is(err, player.ErrEmptyName) {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("failed to join player")
		http.Error(w, "Failed to join", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleBid handles POST /api/bid.
func (h *GameHandler) HandleBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req bidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		http.Error(w, "Invalid player_id format", http.StatusBadRequest)
		return
	}

	b, err := h.bids.Submit(r.Context(), playerID, req.RoundNumber, req.DurationSeconds)
	if err != nil {
		switch {
		case errors.Is(err, bid.ErrDuplicateBid):
			http.Error(w, "Bid already placed for this round", http.StatusConflict)
		case errors.Is(err, bid.ErrRoundNotOpen):
			http.Error(w, "Round is not open for bidding", http.StatusConflict)
		case errors.Is(err, bid.ErrPlayerEliminated):
			http.Error(w, "Player is eliminated", http.StatusConflict)
		case errors.Is(err, bid.ErrInvalidDuration):
			http.Error(w, "Duration must be non-negative", http.StatusBadRequest)
		case errors.Is(err, bid.ErrExceedsTimeLeft):
			http.Error(w, "Duration exceeds remaining time", http.StatusBadRequest)
		case errors.Is(err, player.ErrPlayerNotFound):
			http.Error(w, "Player not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Str("player_id", req.PlayerID).Msg("failed to submit bid")
			http.Error(w, "Failed to submit bid", http.StatusInternalServerError)
		}
		return
	}

	if h.waker != nil {
		h.waker.Wake()
	}

	// The accepted bid goes back only to its owner, so echoing the
	// duration here leaks nothing.
	writeJSON(w, http.StatusOK, b)
}

// RegisterRoutes registers game routes with an HTTP mux
func (h *GameHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/join", h.HandleJoin)
	mux.HandleFunc("/api/bid", h.HandleBid)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
