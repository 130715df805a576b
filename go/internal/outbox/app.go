package outbox

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/gameevents"
)

// App exposes typed insert methods over the outbox repository so callers
// never touch event type strings directly.
type App struct {
	repo *Repository
}

// NewApp creates a new outbox App
func NewApp(repo *Repository) *App {
	return &App{
		repo: repo,
	}
}

func (a *App) InsertRoundOpened(ctx context.Context, roomID uuid.UUID, payload gameevents.RoundOpenedPayload) error {
	_, err := a.repo.InsertEvent(ctx, roomID, gameevents.TypeRoundOpened, payload)
	return err
}

func (a *App) InsertBidPlaced(ctx context.Context, roomID uuid.UUID, payload gameevents.BidPlacedPayload) error {
	_, err := a.repo.InsertEvent(ctx, roomID, gameevents.TypeBidPlaced, payload)
	return err
}

func (a *App) InsertRoundSettled(ctx context.Context, roomID uuid.UUID, payload gameevents.RoundSettledPayload) error {
	_, err := a.repo.InsertEvent(ctx, roomID, gameevents.TypeRoundSettled, payload)
	return err
}

func (a *App) InsertGameEnded(ctx context.Context, roomID uuid.UUID, payload gameevents.GameEndedPayload) error {
	_, err := a.repo.InsertEvent(ctx, roomID, gameevents.TypeGameEnded, payload)
	return err
}

func (a *App) InsertGameReset(ctx context.Context, roomID uuid.UUID, payload gameevents.GameResetPayload) error {
	_, err := a.repo.InsertEvent(ctx, roomID, gameevents.TypeGameReset, payload)
	return err
}
