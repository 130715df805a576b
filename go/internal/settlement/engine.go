package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/gameevents"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrRaceLost is internal: a concurrent settler already advanced the room
// past bidding. Callers of Settle never see it; the round was settled, just
// by someone else.
var ErrRaceLost = errors.New("settlement race lost")

// Store is the transaction-scoped view the engine settles through. Every
// method call within one Settle invocation runs against the same tx, so a
// failure anywhere rolls back the whole round.
type Store interface {
	// ClaimRound performs the conditional bidding -> revealed transition and
	// returns the claimed room. ErrRaceLost when the room is not bidding.
	ClaimRound(ctx context.Context) (*models.Room, error)
	ListRoundBids(ctx context.Context, round int) ([]models.Bid, error)
	// ApplyCharge deducts seconds from the player, flipping eliminated when
	// the balance reaches zero or below.
	ApplyCharge(ctx context.Context, playerID uuid.UUID, seconds float64) (*models.Player, error)
	AwardToken(ctx context.Context, playerID uuid.UUID) (*models.Player, error)
	CountActivePlayers(ctx context.Context) (int, error)
	MarkEnded(ctx context.Context) (*models.Room, error)
	InsertEvent(ctx context.Context, eventType string, payload interface{}) error
}

// TxRunner runs fn inside a single settlement transaction.
type TxRunner interface {
	InSettlementTx(ctx context.Context, fn func(Store) error) error
}

// Engine applies round outcomes to the ledger and the room state machine.
//
// Settle is safe under concurrent invocation for the same round: the claim
// in step one is a conditional state transition, and a caller that loses
// that race performs no mutation at all.
type Engine struct {
	tx TxRunner
}

// NewEngine creates a settlement engine on top of a transaction runner.
func NewEngine(tx TxRunner) *Engine {
	return &Engine{tx: tx}
}

// Settle resolves the room's current round: claim the round, compute the
// outcome from the full bid set, charge every bidder with a positive
// duration, award the token to a unique winner, and record the settlement
// event, all in one transaction.
//
// A lost claim race returns nil: the round was settled by a concurrent
// caller and re-applying anything would double-charge.
func (e *Engine) Settle(ctx context.Context) error {
	err := e.tx.InSettlementTx(ctx, func(s Store) error {
		room, err := s.ClaimRound(ctx)
		if err != nil {
			return err
		}

		bids, err := s.ListRoundBids(ctx, room.CurrentRound)
		if err != nil {
			return err
		}

		out := ComputeOutcome(room.CurrentRound, bids)

		payload := gameevents.RoundSettledPayload{
			Round:       out.Round,
			Tie:         out.Tie,
			MaxDuration: out.MaxDuration,
			SettledAt:   time.Now().UTC(),
		}

		for _, c := range out.Charges {
			p, err := s.ApplyCharge(ctx, c.PlayerID, c.Seconds)
			if err != nil {
				return err
			}
			payload.Charges = append(payload.Charges, gameevents.ChargeInfo{
				PlayerID:   c.PlayerID.String(),
				Seconds:    c.Seconds,
				TimeLeft:   p.TimeLeft,
				Eliminated: p.Eliminated,
			})
		}

		if out.WinnerID != nil {
			if _, err := s.AwardToken(ctx, *out.WinnerID); err != nil {
				return err
			}
			id := out.WinnerID.String()
			payload.WinnerID = &id
		}

		if err := s.InsertEvent(ctx, gameevents.TypeRoundSettled, payload); err != nil {
			return err
		}

		active, err := s.CountActivePlayers(ctx)
		if err != nil {
			return err
		}
		if active == 0 {
			if _, err := s.MarkEnded(ctx); err != nil {
				return err
			}
			if err := s.InsertEvent(ctx, gameevents.TypeGameEnded, gameevents.GameEndedPayload{
				Round:   out.Round,
				Reason:  gameevents.EndReasonAllEliminated,
				EndedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
		}

		log.Info().
			Int("round", out.Round).
			Bool("tie", out.Tie).
			Bool("has_winner", out.WinnerID != nil).
			Int("charges", len(out.Charges)).
			Msg("round settled")
		return nil
	})
	if errors.Is(err, ErrRaceLost) {
		log.Debug().Msg("settlement race lost, round already settled")
		return nil
	}
	return err
}
