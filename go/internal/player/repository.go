package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/player/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertPlayer(ctx context.Context, arg db.UpsertPlayerParams) (db.Player, error)
	UpsertPlayerRefreshName(ctx context.Context, arg db.UpsertPlayerRefreshNameParams) (db.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (db.Player, error)
	ListPlayersRanked(ctx context.Context) ([]db.Player, error)
	ListActivePlayers(ctx context.Context) ([]db.Player, error)
	CountActivePlayers(ctx context.Context) (int64, error)
	ApplyTimeDelta(ctx context.Context, arg db.ApplyTimeDeltaParams) (db.Player, error)
	AwardToken(ctx context.Context, id uuid.UUID) (db.Player, error)
	DeleteAllPlayers(ctx context.Context) error
}

// Repository implements player ledger data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new player repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// Upsert inserts the player or returns the existing row unchanged. When
// refreshName is set the display name is updated on rejoin; balances are
// never touched either way.
func (r *Repository) Upsert(ctx context.Context, id uuid.UUID, name string, initialTime float64, refreshName bool) (*models.Player, error) {
	var (
		row db.Player
		err error
	)
	if refreshName {
		row, err = r.queries.UpsertPlayerRefreshName(ctx, db.UpsertPlayerRefreshNameParams{
			ID:       id,
			Name:     name,
			TimeLeft: initialTime,
		})
	} else {
		row, err = r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
			ID:       id,
			Name:     name,
			TimeLeft: initialTime,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}
	return dbPlayerToModel(row), nil
}

// GetPlayer retrieves a player by ID.
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return dbPlayerToModel(row), nil
}

// ListRanked returns the full roster in canonical ranking order:
// tokens descending, then time left ascending.
func (r *Repository) ListRanked(ctx context.Context) ([]models.Player, error) {
	rows, err := r.queries.ListPlayersRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return dbPlayersToModels(rows), nil
}

// ListActive returns all non-eliminated players.
func (r *Repository) ListActive(ctx context.Context) ([]models.Player, error) {
	rows, err := r.queries.ListActivePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active players: %w", err)
	}
	return dbPlayersToModels(rows), nil
}

// CountActive returns the number of non-eliminated players.
func (r *Repository) CountActive(ctx context.Context) (int, error) {
	count, err := r.queries.CountActivePlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active players: %w", err)
	}
	return int(count), nil
}

// ApplyTimeDelta adjusts the player's remaining time by delta (negative for
// charges). The same statement flips eliminated when the balance crosses
// minTimeLeft; the flag is sticky.
func (r *Repository) ApplyTimeDelta(ctx context.Context, id uuid.UUID, delta, minTimeLeft float64) (*models.Player, error) {
	row, err := r.queries.ApplyTimeDelta(ctx, db.ApplyTimeDeltaParams{
		ID:          id,
		Delta:       delta,
		MinTimeLeft: minTimeLeft,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to apply time delta: %w", err)
	}
	return dbPlayerToModel(row), nil
}

// AwardToken increments the player's token count by exactly one.
func (r *Repository) AwardToken(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row, err := r.queries.AwardToken(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to award token: %w", err)
	}
	return dbPlayerToModel(row), nil
}

// DeleteAll clears the roster. Bids reference players with ON DELETE CASCADE
// so no orphaned bids survive.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.queries.DeleteAllPlayers(ctx); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

// Helper function to convert DB player to model
func dbPlayerToModel(dbPlayer db.Player) *models.Player {
	return &models.Player{
		ID:         dbPlayer.ID,
		Name:       dbPlayer.Name,
		TimeLeft:   dbPlayer.TimeLeft,
		Tokens:     int(dbPlayer.Tokens),
		Eliminated: dbPlayer.Eliminated,
		JoinedAt:   dbPlayer.JoinedAt,
		UpdatedAt:  dbPlayer.UpdatedAt,
	}
}

func dbPlayersToModels(rows []db.Player) []models.Player {
	result := make([]models.Player, len(rows))
	for i, row := range rows {
		result[i] = *dbPlayerToModel(row)
	}
	return result
}
