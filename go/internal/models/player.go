package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is the authoritative per-player ledger entry.
type Player struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TimeLeft   float64   `json:"time_left"`
	Tokens     int       `json:"tokens"`
	Eliminated bool      `json:"eliminated"`
	JoinedAt   time.Time `json:"joined_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
