package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/bid"
	biddb "github.com/mcdev12/timeauction/go/internal/bid/db"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/outbox"
	outboxdb "github.com/mcdev12/timeauction/go/internal/outbox/db"
	"github.com/mcdev12/timeauction/go/internal/player"
	playerdb "github.com/mcdev12/timeauction/go/internal/player/db"
	"github.com/mcdev12/timeauction/go/internal/room"
	roomdb "github.com/mcdev12/timeauction/go/internal/room/db"
	"github.com/mcdev12/timeauction/go/internal/sqlutil"
)

// SQLRunner opens one transaction per settlement and hands the engine a
// Store whose repositories are all bound to that transaction.
type SQLRunner struct {
	db *sql.DB
}

func NewSQLRunner(db *sql.DB) *SQLRunner {
	return &SQLRunner{db: db}
}

func (r *SQLRunner) InSettlementTx(ctx context.Context, fn func(Store) error) error {
	return sqlutil.RunTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&sqlStore{
			rooms:   room.NewRepository(roomdb.New(tx)),
			players: player.NewRepository(playerdb.New(tx)),
			bids:    bid.NewRepository(biddb.New(tx)),
			events:  outbox.NewRepository(outboxdb.New(tx)),
		})
	})
}

type sqlStore struct {
	rooms   *room.Repository
	players *player.Repository
	bids    *bid.Repository
	events  *outbox.Repository

	roomID uuid.UUID
}

func (s *sqlStore) ClaimRound(ctx context.Context) (*models.Room, error) {
	current, err := s.rooms.GetRoom(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load room for settlement: %w", err)
	}
	claimed, err := s.rooms.MarkRevealed(ctx, current.ID)
	if err != nil {
		if errors.Is(err, room.ErrWrongStatus) {
			return nil, ErrRaceLost
		}
		return nil, err
	}
	s.roomID = claimed.ID
	return claimed, nil
}

func (s *sqlStore) ListRoundBids(ctx context.Context, round int) ([]models.Bid, error) {
	return s.bids.ListByRound(ctx, round)
}

func (s *sqlStore) ApplyCharge(ctx context.Context, playerID uuid.UUID, seconds float64) (*models.Player, error) {
	return s.players.ApplyTimeDelta(ctx, playerID, -seconds, 0)
}

func (s *sqlStore) AwardToken(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	return s.players.AwardToken(ctx, playerID)
}

func (s *sqlStore) CountActivePlayers(ctx context.Context) (int, error) {
	return s.players.CountActive(ctx)
}

func (s *sqlStore) MarkEnded(ctx context.Context) (*models.Room, error) {
	return s.rooms.MarkEnded(ctx, s.roomID)
}

func (s *sqlStore) InsertEvent(ctx context.Context, eventType string, payload interface{}) error {
	_, err := s.events.InsertEvent(ctx, s.roomID, eventType, payload)
	return err
}
