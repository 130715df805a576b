package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid is one player's sealed offer for one round. Bids are immutable once
// written; IsFold is derived against the fold threshold at submission time and
// stored, never recomputed.
type Bid struct {
	ID              uuid.UUID `json:"id"`
	PlayerID        uuid.UUID `json:"player_id"`
	RoundNumber     int       `json:"round_number"`
	DurationSeconds float64   `json:"duration_seconds"`
	IsFold          bool      `json:"is_fold"`
	CreatedAt       time.Time `json:"created_at"`
}
