package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus defines the lifecycle state of the auction room.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusBidding  RoomStatus = "bidding"
	RoomStatusRevealed RoomStatus = "revealed"
	RoomStatusEnded    RoomStatus = "ended"
)

// GameSettings holds the configurable parameters of a game session.
type GameSettings struct {
	TotalRounds       int     `json:"total_rounds" yaml:"total_rounds"`
	InitialTimeBudget float64 `json:"initial_time_budget" yaml:"initial_time_budget"`
	FoldThreshold     float64 `json:"fold_threshold" yaml:"fold_threshold"`
}

// DefaultGameSettings returns the standard session configuration.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		TotalRounds:       19,
		InitialTimeBudget: 600.0,
		FoldThreshold:     5.0,
	}
}

// Room represents the single shared game-session record.
type Room struct {
	ID                uuid.UUID  `json:"id"`
	CurrentRound      int        `json:"current_round"`
	Status            RoomStatus `json:"status"`
	TotalRounds       int        `json:"total_rounds"`
	InitialTimeBudget float64    `json:"initial_time_budget"`
	FoldThreshold     float64    `json:"fold_threshold"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Settings extracts the configurable parameters from the room record.
func (r *Room) Settings() GameSettings {
	return GameSettings{
		TotalRounds:       r.TotalRounds,
		InitialTimeBudget: r.InitialTimeBudget,
		FoldThreshold:     r.FoldThreshold,
	}
}
