package bid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/timeauction/go/internal/bid/db"
	"github.com/mcdev12/timeauction/go/internal/models"
)

// Postgres unique_violation; the (player_id, round_number) constraint is the
// one-bid-per-round rule.
const uniqueViolationCode = "23505"

// Querier defines what the repository needs from the database layer
type Querier interface {
	InsertBid(ctx context.Context, arg db.InsertBidParams) (db.Bid, error)
	GetBidByPlayerRound(ctx context.Context, arg db.GetBidByPlayerRoundParams) (db.Bid, error)
	ListBidsByRound(ctx context.Context, roundNumber int32) ([]db.Bid, error)
	CountActiveBidsByRound(ctx context.Context, roundNumber int32) (int64, error)
	DeleteAllBids(ctx context.Context) error
}

// Repository implements bid store data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new bid repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// Insert appends a bid. The insert is conditional on the room still holding
// the given round open: its share lock on the rooms row orders the insert
// against a concurrent settlement claim, so once settlement has flipped the
// status no late bid can slip into the round it just read. Zero rows means
// the round closed under us and maps to ErrRoundNotOpen. A second bid for
// the same (player, round) comes back as ErrDuplicateBid; the stored row is
// never mutated.
func (r *Repository) Insert(ctx context.Context, playerID uuid.UUID, round int, duration float64, isFold bool) (*models.Bid, error) {
	row, err := r.queries.InsertBid(ctx, db.InsertBidParams{
		ID:              uuid.New(),
		PlayerID:        playerID,
		RoundNumber:     int32(round),
		DurationSeconds: duration,
		IsFold:          isFold,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotOpen
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateBid
		}
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	return dbBidToModel(row), nil
}

// GetByPlayerRound returns the player's bid for a round, if any.
func (r *Repository) GetByPlayerRound(ctx context.Context, playerID uuid.UUID, round int) (*models.Bid, error) {
	row, err := r.queries.GetBidByPlayerRound(ctx, db.GetBidByPlayerRoundParams{
		PlayerID:    playerID,
		RoundNumber: int32(round),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return dbBidToModel(row), nil
}

// ListByRound returns all bids for a round. The set is unordered; consumers
// must not rely on arrival order.
func (r *Repository) ListByRound(ctx context.Context, round int) ([]models.Bid, error) {
	rows, err := r.queries.ListBidsByRound(ctx, int32(round))
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	result := make([]models.Bid, len(rows))
	for i, row := range rows {
		result[i] = *dbBidToModel(row)
	}
	return result, nil
}

// CountActiveByRound counts bids for a round submitted by players who are
// still in the game. Stale bids from eliminated players do not count toward
// coverage.
func (r *Repository) CountActiveByRound(ctx context.Context, round int) (int, error) {
	count, err := r.queries.CountActiveBidsByRound(ctx, int32(round))
	if err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", err)
	}
	return int(count), nil
}

// DeleteAll clears the bid log (full reset only).
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.queries.DeleteAllBids(ctx); err != nil {
		return fmt.Errorf("failed to delete bids: %w", err)
	}
	return nil
}

// Helper function to convert DB bid to model
func dbBidToModel(dbBid db.Bid) *models.Bid {
	return &models.Bid{
		ID:              dbBid.ID,
		PlayerID:        dbBid.PlayerID,
		RoundNumber:     int(dbBid.RoundNumber),
		DurationSeconds: dbBid.DurationSeconds,
		IsFold:          dbBid.IsFold,
		CreatedAt:       dbBid.CreatedAt,
	}
}
