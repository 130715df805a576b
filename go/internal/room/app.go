package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// RoomRepository defines what the room app layer needs from the repository
type RoomRepository interface {
	GetRoom(ctx context.Context) (*models.Room, error)
	CreateRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error)
	OpenFirstRound(ctx context.Context, id uuid.UUID) (*models.Room, error)
	OpenNextRound(ctx context.Context, id uuid.UUID) (*models.Room, error)
	MarkEnded(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ResetRoom(ctx context.Context, id uuid.UUID, settings models.GameSettings) (*models.Room, error)
}

// App handles room lifecycle business logic
type App struct {
	repo RoomRepository
}

// NewApp creates a new room App
func NewApp(repo RoomRepository) *App {
	return &App{
		repo: repo,
	}
}

// EnsureRoom returns the session room, creating it with the given settings if
// the session has never been initialized.
func (a *App) EnsureRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	room, err := a.repo.GetRoom(ctx)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	room, err = a.repo.CreateRoom(ctx, settings)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("room_id", room.ID.String()).
		Int("total_rounds", room.TotalRounds).
		Float64("initial_time_budget", room.InitialTimeBudget).
		Msg("created session room")
	return room, nil
}

// GetRoom returns the current room record.
func (a *App) GetRoom(ctx context.Context) (*models.Room, error) {
	return a.repo.GetRoom(ctx)
}

// OpenRound advances the state machine to the next bidding phase:
// waiting -> bidding (round 1) or revealed -> bidding (round+1).
//
// Calling it while already bidding is a no-op returning the current room.
// Once the round counter is exhausted the room is moved to ended and
// ErrRoundLimitReached is returned; further calls keep returning it.
func (a *App) OpenRound(ctx context.Context) (*models.Room, error) {
	room, err := a.repo.GetRoom(ctx)
	if err != nil {
		return nil, err
	}

	switch room.Status {
	case models.RoomStatusWaiting:
		opened, err := a.repo.OpenFirstRound(ctx, room.ID)
		if errors.Is(err, ErrWrongStatus) {
			// Someone else opened it first.
			return a.repo.GetRoom(ctx)
		}
		if err != nil {
			return nil, err
		}
		log.Info().Int("round", opened.CurrentRound).Msg("opened first round")
		return opened, nil

	case models.RoomStatusBidding:
		return room, nil

	case models.RoomStatusRevealed:
		if room.CurrentRound >= room.TotalRounds {
			ended, err := a.repo.MarkEnded(ctx, room.ID)
			if errors.Is(err, ErrWrongStatus) {
				ended, err = a.repo.GetRoom(ctx)
			}
			if err != nil {
				return nil, err
			}
			log.Info().Int("round", ended.CurrentRound).Msg("round limit reached, game over")
			return ended, ErrRoundLimitReached
		}
		opened, err := a.repo.OpenNextRound(ctx, room.ID)
		if errors.Is(err, ErrWrongStatus) {
			// Lost a race against another operator, or the guard caught a
			// stale round counter. Re-read and report accordingly.
			current, gerr := a.repo.GetRoom(ctx)
			if gerr != nil {
				return nil, gerr
			}
			if current.Status == models.RoomStatusEnded {
				return current, ErrRoundLimitReached
			}
			return current, nil
		}
		if err != nil {
			return nil, err
		}
		log.Info().Int("round", opened.CurrentRound).Msg("opened next round")
		return opened, nil

	case models.RoomStatusEnded:
		return room, ErrRoundLimitReached

	default:
		return nil, fmt.Errorf("unknown room status %q", room.Status)
	}
}
