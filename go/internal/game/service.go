package game

import (
	"context"
	"errors"
	"time"

	"github.com/mcdev12/timeauction/go/internal/gameevents"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/room"
	"github.com/rs/zerolog/log"
)

// Settler resolves the current round on demand.
type Settler interface {
	Settle(ctx context.Context) error
}

// Service carries the operator-facing session commands. Round transitions
// and their announcement events commit in the same transaction so a crash
// between the two can never leave a round open but unannounced.
type Service struct {
	runner   TxRunner
	settler  Settler
	settings models.GameSettings
}

// NewService creates the session command service.
func NewService(runner TxRunner, settler Settler, settings models.GameSettings) *Service {
	return &Service{
		runner:   runner,
		settler:  settler,
		settings: settings,
	}
}

// Bootstrap makes sure the singleton session room exists.
func (s *Service) Bootstrap(ctx context.Context) (*models.Room, error) {
	var r *models.Room
	err := s.runner.InGameTx(ctx, func(store Store) error {
		var err error
		r, err = store.EnsureRoom(ctx, s.settings)
		return err
	})
	return r, err
}

// OpenRound advances the room into its next bidding phase and records a
// RoundOpened event. When the round counter is exhausted the room moves to
// ended, a GameEnded event is recorded instead, and
// room.ErrRoundLimitReached is returned with the final room state.
func (s *Service) OpenRound(ctx context.Context) (*models.Room, error) {
	var opened *models.Room
	var limitHit bool

	err := s.runner.InGameTx(ctx, func(store Store) error {
		before, err := store.GetRoom(ctx)
		if err != nil {
			return err
		}

		r, err := store.OpenRound(ctx)
		if errors.Is(err, room.ErrRoundLimitReached) {
			opened = r
			limitHit = true
			if before.Status != models.RoomStatusEnded {
				// this call is the one that ended the game
				return store.InsertEvent(ctx, r.ID, gameevents.TypeGameEnded, gameevents.GameEndedPayload{
					Round:   r.CurrentRound,
					Reason:  gameevents.EndReasonRoundsExhausted,
					EndedAt: time.Now().UTC(),
				})
			}
			return nil
		}
		if err != nil {
			return err
		}
		opened = r

		if before.Status != models.RoomStatusBidding && r.Status == models.RoomStatusBidding {
			return store.InsertEvent(ctx, r.ID, gameevents.TypeRoundOpened, gameevents.RoundOpenedPayload{
				Round:       r.CurrentRound,
				TotalRounds: r.TotalRounds,
				OpenedAt:    time.Now().UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return opened, err
	}
	if limitHit {
		return opened, room.ErrRoundLimitReached
	}
	return opened, nil
}

// ForceSettle resolves the current round immediately with whatever bids are
// on record. Players who never bid are simply absent from the outcome.
func (s *Service) ForceSettle(ctx context.Context) error {
	return s.settler.Settle(ctx)
}

// Reset wipes the session back to a fresh waiting room with the given
// settings. The roster and all bids are destroyed; pending outbox events
// from the old session are dropped with them. A previously known identity
// that rejoins afterwards starts over at the new initial budget.
func (s *Service) Reset(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	var fresh *models.Room

	err := s.runner.InGameTx(ctx, func(store Store) error {
		if err := store.DeleteAllBids(ctx); err != nil {
			return err
		}
		if err := store.DeleteAllPlayers(ctx); err != nil {
			return err
		}
		if err := store.DeleteAllEvents(ctx); err != nil {
			return err
		}

		var err error
		fresh, err = store.ResetRoom(ctx, settings)
		if err != nil {
			return err
		}

		return store.InsertEvent(ctx, fresh.ID, gameevents.TypeGameReset, gameevents.GameResetPayload{
			TotalRounds:       settings.TotalRounds,
			InitialTimeBudget: settings.InitialTimeBudget,
			ResetAt:           time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("total_rounds", fresh.TotalRounds).
		Float64("initial_time_budget", fresh.InitialTimeBudget).
		Msg("session reset")
	return fresh, nil
}
