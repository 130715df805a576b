package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/gameevents"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// BidRepository defines what the bid app layer needs from the repository
type BidRepository interface {
	Insert(ctx context.Context, playerID uuid.UUID, round int, duration float64, isFold bool) (*models.Bid, error)
	GetByPlayerRound(ctx context.Context, playerID uuid.UUID, round int) (*models.Bid, error)
	ListByRound(ctx context.Context, round int) ([]models.Bid, error)
	CountActiveByRound(ctx context.Context, round int) (int, error)
}

// RoomSource provides the current room state for submission validation.
type RoomSource interface {
	GetRoom(ctx context.Context) (*models.Room, error)
}

// PlayerSource provides ledger reads for submission validation.
type PlayerSource interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// EventSink records the public announcement of an accepted bid.
type EventSink interface {
	InsertBidPlaced(ctx context.Context, roomID uuid.UUID, payload gameevents.BidPlacedPayload) error
}

// App handles bid store business logic
type App struct {
	repo    BidRepository
	rooms   RoomSource
	players PlayerSource
	events  EventSink
}

// NewApp creates a new bid App
func NewApp(repo BidRepository, rooms RoomSource, players PlayerSource, events EventSink) *App {
	return &App{
		repo:    repo,
		rooms:   rooms,
		players: players,
		events:  events,
	}
}

// Submit validates and records a bid for the room's current round.
//
// The fold flag is derived here, once, against the room's fold threshold and
// stored with the bid; it is never recomputed on read. Duplicate submissions
// surface as ErrDuplicateBid and leave the original bid untouched.
//
// The status check below is a fast pre-check; the insert itself re-verifies
// the round against the room, so a round settling between check and insert
// comes back as ErrRoundNotOpen instead of an accepted late bid.
func (a *App) Submit(ctx context.Context, playerID uuid.UUID, round int, duration float64) (*models.Bid, error) {
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	room, err := a.rooms.GetRoom(ctx)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusBidding || round != room.CurrentRound {
		return nil, ErrRoundNotOpen
	}

	p, err := a.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.Eliminated {
		return nil, ErrPlayerEliminated
	}
	// The client clamps the hold duration before submitting; distrust it
	// anyway.
	if duration > p.TimeLeft {
		return nil, ErrExceedsTimeLeft
	}

	isFold := duration < room.FoldThreshold
	b, err := a.repo.Insert(ctx, playerID, round, duration, isFold)
	if err != nil {
		return nil, err
	}

	if a.events != nil {
		// Announces existence only; durations stay sealed until settlement.
		err := a.events.InsertBidPlaced(ctx, room.ID, gameevents.BidPlacedPayload{
			PlayerID: playerID.String(),
			Round:    round,
			PlacedAt: b.CreatedAt,
		})
		if err != nil {
			log.Warn().Err(err).Str("player_id", playerID.String()).Msg("failed to record BidPlaced event")
		}
	}

	log.Info().
		Str("player_id", playerID.String()).
		Int("round", round).
		Bool("is_fold", isFold).
		Msg("bid accepted")
	return b, nil
}

// GetByPlayerRound returns a player's existing bid for a round, or nil.
func (a *App) GetByPlayerRound(ctx context.Context, playerID uuid.UUID, round int) (*models.Bid, error) {
	return a.repo.GetByPlayerRound(ctx, playerID, round)
}

// ListByRound returns the full (unordered) bid set for a round.
func (a *App) ListByRound(ctx context.Context, round int) ([]models.Bid, error) {
	return a.repo.ListByRound(ctx, round)
}

// CountActiveByRound counts current-round bids from non-eliminated players.
func (a *App) CountActiveByRound(ctx context.Context, round int) (int, error) {
	return a.repo.CountActiveByRound(ctx, round)
}
