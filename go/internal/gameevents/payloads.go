package gameevents

import (
	"time"
)

// Event payload types shared between the engine, controller and gateway.

// Event type names as stored in the outbox and carried on the bus.
const (
	TypeRoundOpened  = "RoundOpened"
	TypeBidPlaced    = "BidPlaced"
	TypeRoundSettled = "RoundSettled"
	TypeGameEnded    = "GameEnded"
	TypeGameReset    = "GameReset"
)

// RoundOpenedPayload is the payload for a RoundOpened event
type RoundOpenedPayload struct {
	Round       int       `json:"round"`
	TotalRounds int       `json:"total_rounds"`
	OpenedAt    time.Time `json:"opened_at"`
}

// BidPlacedPayload is the payload for a BidPlaced event. It deliberately
// carries no duration: while a round is open only bid existence is public.
type BidPlacedPayload struct {
	PlayerID string    `json:"player_id"`
	Round    int       `json:"round"`
	PlacedAt time.Time `json:"placed_at"`
}

// ChargeInfo describes one bidder's deduction in a settled round.
type ChargeInfo struct {
	PlayerID   string  `json:"player_id"`
	Seconds    float64 `json:"seconds"`
	TimeLeft   float64 `json:"time_left"`
	Eliminated bool    `json:"eliminated"`
}

// RoundSettledPayload is the payload for a RoundSettled event
type RoundSettledPayload struct {
	Round       int          `json:"round"`
	WinnerID    *string      `json:"winner_id,omitempty"`
	Tie         bool         `json:"tie"`
	MaxDuration float64      `json:"max_duration"`
	Charges     []ChargeInfo `json:"charges"`
	SettledAt   time.Time    `json:"settled_at"`
}

// GameEndedPayload is the payload for a GameEnded event
type GameEndedPayload struct {
	Round   int       `json:"round"`
	Reason  string    `json:"reason"`
	EndedAt time.Time `json:"ended_at"`
}

// End reasons carried on GameEnded.
const (
	EndReasonRoundsExhausted = "rounds_exhausted"
	EndReasonAllEliminated   = "all_eliminated"
)

// GameResetPayload is the payload for a GameReset event
type GameResetPayload struct {
	TotalRounds       int       `json:"total_rounds"`
	InitialTimeBudget float64   `json:"initial_time_budget"`
	ResetAt           time.Time `json:"reset_at"`
}
