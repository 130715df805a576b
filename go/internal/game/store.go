package game

import (
	"context"
	"database/sql"
	"errors"

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

// Store is the transactional view of the session a command works against.
type Store interface {
	EnsureRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error)
	GetRoom(ctx context.Context) (*models.Room, error)
	OpenRound(ctx context.Context) (*models.Room, error)
	ResetRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error)
	DeleteAllBids(ctx context.Context) error
	DeleteAllPlayers(ctx context.Context) error
	DeleteAllEvents(ctx context.Context) error
	InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload interface{}) error
}

// TxRunner runs a session command inside one transaction.
type TxRunner interface {
	InGameTx(ctx context.Context, fn func(Store) error) error
}

// SQLRunner opens one transaction per command and hands it a Store whose
// repositories are all bound to that transaction.
type SQLRunner struct {
	db *sql.DB
}

func NewSQLRunner(db *sql.DB) *SQLRunner {
	return &SQLRunner{db: db}
}

func (r *SQLRunner) InGameTx(ctx context.Context, fn func(Store) error) error {
	return sqlutil.RunTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&sqlStore{
			rooms:   room.NewApp(room.NewRepository(roomdb.New(tx))),
			repo:    room.NewRepository(roomdb.New(tx)),
			players: player.NewRepository(playerdb.New(tx)),
			bids:    bid.NewRepository(biddb.New(tx)),
			events:  outbox.NewRepository(outboxdb.New(tx)),
		})
	})
}

type sqlStore struct {
	rooms   *room.App
	repo    *room.Repository
	players *player.Repository
	bids    *bid.Repository
	events  *outbox.Repository
}

func (s *sqlStore) EnsureRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	return s.rooms.EnsureRoom(ctx, settings)
}

func (s *sqlStore) GetRoom(ctx context.Context) (*models.Room, error) {
	return s.rooms.GetRoom(ctx)
}

func (s *sqlStore) OpenRound(ctx context.Context) (*models.Room, error) {
	return s.rooms.OpenRound(ctx)
}

// ResetRoom puts the singleton room back to waiting with the new settings,
// creating it if it has never existed.
func (s *sqlStore) ResetRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	current, err := s.rooms.GetRoom(ctx)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return s.repo.CreateRoom(ctx, settings)
		}
		return nil, err
	}
	return s.repo.ResetRoom(ctx, current.ID, settings)
}

func (s *sqlStore) DeleteAllBids(ctx context.Context) error {
	return s.bids.DeleteAll(ctx)
}

func (s *sqlStore) DeleteAllPlayers(ctx context.Context) error {
	return s.players.DeleteAll(ctx)
}

func (s *sqlStore) DeleteAllEvents(ctx context.Context) error {
	return s.events.DeleteAll(ctx)
}

func (s *sqlStore) InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload interface{}) error {
	_, err := s.events.InsertEvent(ctx, roomID, eventType, payload)
	return err
}
