package player

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// PlayerRepository defines what the player app layer needs from the repository
type PlayerRepository interface {
	Upsert(ctx context.Context, id uuid.UUID, name string, initialTime float64, refreshName bool) (*models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListRanked(ctx context.Context) ([]models.Player, error)
	ListActive(ctx context.Context) ([]models.Player, error)
	CountActive(ctx context.Context) (int, error)
	ApplyTimeDelta(ctx context.Context, id uuid.UUID, delta, minTimeLeft float64) (*models.Player, error)
	AwardToken(ctx context.Context, id uuid.UUID) (*models.Player, error)
	DeleteAll(ctx context.Context) error
}

// RoomSource provides the session room settings the ledger needs at join time.
type RoomSource interface {
	GetRoom(ctx context.Context) (*models.Room, error)
}

// App handles player ledger business logic
type App struct {
	repo  PlayerRepository
	rooms RoomSource

	// refreshNameOnRejoin controls whether a rejoin with the same identity
	// may update the display name. Balances are preserved regardless.
	refreshNameOnRejoin bool
}

// NewApp creates a new player App
func NewApp(repo PlayerRepository, rooms RoomSource, refreshNameOnRejoin bool) *App {
	return &App{
		repo:                repo,
		rooms:               rooms,
		refreshNameOnRejoin: refreshNameOnRejoin,
	}
}

// Join registers a player, keyed by identity. Joining is an idempotent
// upsert: a rejoin returns the existing ledger entry with balances intact.
// New players start with the room's configured initial time budget.
func (a *App) Join(ctx context.Context, id uuid.UUID, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	room, err := a.rooms.GetRoom(ctx)
	if err != nil {
		return nil, err
	}

	p, err := a.repo.Upsert(ctx, id, name, room.InitialTimeBudget, a.refreshNameOnRejoin)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("player_id", p.ID.String()).
		Str("name", p.Name).
		Float64("time_left", p.TimeLeft).
		Msg("player joined")
	return p, nil
}

// GetPlayer retrieves a single ledger entry.
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

// ListRanked returns the canonical ranking (tokens desc, time left asc).
func (a *App) ListRanked(ctx context.Context) ([]models.Player, error) {
	return a.repo.ListRanked(ctx)
}

// ListActive returns the non-eliminated roster.
func (a *App) ListActive(ctx context.Context) ([]models.Player, error) {
	return a.repo.ListActive(ctx)
}

// CountActive returns the size of the non-eliminated roster.
func (a *App) CountActive(ctx context.Context) (int, error) {
	return a.repo.CountActive(ctx)
}

// AdjustTime applies a signed time change to a player. Settlement always
// passes non-positive deltas; elimination fires as a side effect when the
// balance reaches zero or below.
func (a *App) AdjustTime(ctx context.Context, id uuid.UUID, delta float64) (*models.Player, error) {
	p, err := a.repo.ApplyTimeDelta(ctx, id, delta, 0)
	if err != nil {
		return nil, err
	}
	if p.Eliminated {
		log.Info().Str("player_id", p.ID.String()).Msg("player eliminated")
	}
	return p, nil
}

// AwardToken increments the player's token count by one.
func (a *App) AwardToken(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.AwardToken(ctx, id)
}
