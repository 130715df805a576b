package settlement

import (
	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
)

// Charge is one bidder's time deduction for a round.
type Charge struct {
	PlayerID uuid.UUID
	Seconds  float64
}

// Outcome is the pure result of resolving one round's bids.
type Outcome struct {
	Round       int
	WinnerID    *uuid.UUID
	Tie         bool
	MaxDuration float64
	Charges     []Charge
}

// ComputeOutcome resolves a round from its full bid set. It is a pure
// max/tie computation: submission order never affects the result.
//
// Rules:
//   - Only non-fold bids compete. The single strict maximum wins; an exact
//     tie at the maximum forfeits the token entirely.
//   - Every bid with a positive duration is charged, fold or not. Folding
//     only disqualifies a bid from winning; it does not waive the cost.
//   - Players with no bid for the round are ignored: not charged, not
//     eligible.
func ComputeOutcome(round int, bids []models.Bid) Outcome {
	out := Outcome{Round: round}

	for _, b := range bids {
		if b.DurationSeconds > 0 {
			out.Charges = append(out.Charges, Charge{
				PlayerID: b.PlayerID,
				Seconds:  b.DurationSeconds,
			})
		}
	}

	var winners []uuid.UUID
	for _, b := range bids {
		if b.IsFold {
			continue
		}
		switch {
		case b.DurationSeconds > out.MaxDuration:
			out.MaxDuration = b.DurationSeconds
			winners = winners[:0]
			winners = append(winners, b.PlayerID)
		case b.DurationSeconds == out.MaxDuration && len(winners) > 0:
			winners = append(winners, b.PlayerID)
		}
	}

	switch len(winners) {
	case 0:
		// All folded (or no bids at all): no winner, charges still apply.
	case 1:
		id := winners[0]
		out.WinnerID = &id
	default:
		out.Tie = true
	}
	return out
}
