package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/room/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetRoom(ctx context.Context) (db.Room, error)
	CreateRoom(ctx context.Context, arg db.CreateRoomParams) (db.Room, error)
	OpenFirstRound(ctx context.Context, id uuid.UUID) (db.Room, error)
	OpenNextRound(ctx context.Context, id uuid.UUID) (db.Room, error)
	MarkRevealed(ctx context.Context, id uuid.UUID) (db.Room, error)
	MarkEnded(ctx context.Context, id uuid.UUID) (db.Room, error)
	ResetRoom(ctx context.Context, arg db.ResetRoomParams) (db.Room, error)
}

// Repository implements room data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new room repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetRoom returns the session's singleton room record.
func (r *Repository) GetRoom(ctx context.Context) (*models.Room, error) {
	room, err := r.queries.GetRoom(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return dbRoomToModel(room), nil
}

// CreateRoom creates the singleton room record with the given settings.
func (r *Repository) CreateRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	room, err := r.queries.CreateRoom(ctx, db.CreateRoomParams{
		TotalRounds:       int32(settings.TotalRounds),
		InitialTimeBudget: settings.InitialTimeBudget,
		FoldThreshold:     settings.FoldThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return dbRoomToModel(room), nil
}

// OpenFirstRound transitions waiting -> bidding with round 1. Returns
// ErrWrongStatus when the room is not waiting.
func (r *Repository) OpenFirstRound(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.OpenFirstRound(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrongStatus
		}
		return nil, fmt.Errorf("failed to open first round: %w", err)
	}
	return dbRoomToModel(room), nil
}

// OpenNextRound transitions revealed -> bidding with the round counter
// incremented. Returns ErrWrongStatus when the room is not revealed or the
// round limit would be exceeded; the caller disambiguates.
func (r *Repository) OpenNextRound(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.OpenNextRound(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrongStatus
		}
		return nil, fmt.Errorf("failed to open next round: %w", err)
	}
	return dbRoomToModel(room), nil
}

// MarkRevealed transitions bidding -> revealed. Returns ErrWrongStatus when
// the room is not bidding, which a concurrent settler treats as a lost race.
func (r *Repository) MarkRevealed(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.MarkRevealed(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrongStatus
		}
		return nil, fmt.Errorf("failed to mark room revealed: %w", err)
	}
	return dbRoomToModel(room), nil
}

// MarkEnded moves the room to its terminal status.
func (r *Repository) MarkEnded(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.MarkEnded(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrongStatus
		}
		return nil, fmt.Errorf("failed to mark room ended: %w", err)
	}
	return dbRoomToModel(room), nil
}

// ResetRoom reinitializes the room to waiting with new settings.
func (r *Repository) ResetRoom(ctx context.Context, id uuid.UUID, settings models.GameSettings) (*models.Room, error) {
	room, err := r.queries.ResetRoom(ctx, db.ResetRoomParams{
		ID:                id,
		TotalRounds:       int32(settings.TotalRounds),
		InitialTimeBudget: settings.InitialTimeBudget,
		FoldThreshold:     settings.FoldThreshold,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to reset room: %w", err)
	}
	return dbRoomToModel(room), nil
}

// Helper function to convert DB room to model
func dbRoomToModel(dbRoom db.Room) *models.Room {
	return &models.Room{
		ID:                dbRoom.ID,
		CurrentRound:      int(dbRoom.CurrentRound),
		Status:            models.RoomStatus(dbRoom.Status),
		TotalRounds:       int(dbRoom.TotalRounds),
		InitialTimeBudget: dbRoom.InitialTimeBudget,
		FoldThreshold:     dbRoom.FoldThreshold,
		CreatedAt:         dbRoom.CreatedAt,
		UpdatedAt:         dbRoom.UpdatedAt,
	}
}
