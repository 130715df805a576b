package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/outbox/db"
	"github.com/sqlc-dev/pqtype"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	InsertOutboxEvent(ctx context.Context, arg db.InsertOutboxEventParams) (db.GameOutbox, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (db.GameOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]db.GameOutbox, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
	DeleteAllOutbox(ctx context.Context) error
}

// Repository implements outbox data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new outbox repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// InsertEvent marshals payload and writes the event row. The row insert
// fires a pg_notify so the listener picks it up without polling.
func (r *Repository) InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload interface{}) (*OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	row, err := r.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		RoomID:    roomID,
		EventType: eventType,
		Payload:   pqtype.NullRawMessage{RawMessage: raw, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return dbOutboxToModel(row), nil
}

// FetchByID returns a single outbox event.
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("outbox event %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	return dbOutboxToModel(row), nil
}

// FetchUnsent returns up to limit events that have not been published yet,
// oldest first.
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	events := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = *dbOutboxToModel(row)
	}
	return events, nil
}

// MarkSent stamps the event as published.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

// DeleteAll clears the outbox, used on full game reset.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.queries.DeleteAllOutbox(ctx); err != nil {
		return fmt.Errorf("failed to delete outbox events: %w", err)
	}
	return nil
}

func dbOutboxToModel(row db.GameOutbox) *OutboxEvent {
	e := &OutboxEvent{
		ID:        row.ID,
		RoomID:    row.RoomID,
		EventType: row.EventType,
		CreatedAt: row.CreatedAt,
	}
	if row.Payload.Valid {
		e.Payload = row.Payload.RawMessage
	}
	if row.SentAt.Valid {
		t := row.SentAt.Time
		e.SentAt = &t
	}
	return e
}
