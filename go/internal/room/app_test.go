package room

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo mimics the conditional-transition semantics of the SQL layer.
type fakeRepo struct {
	room *models.Room
}

func (f *fakeRepo) GetRoom(ctx context.Context) (*models.Room, error) {
	if f.room == nil {
		return nil, ErrNotFound
	}
	r := *f.room
	return &r, nil
}

func (f *fakeRepo) CreateRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	f.room = &models.Room{
		ID:                uuid.New(),
		CurrentRound:      1,
		Status:            models.RoomStatusWaiting,
		TotalRounds:       settings.TotalRounds,
		InitialTimeBudget: settings.InitialTimeBudget,
		FoldThreshold:     settings.FoldThreshold,
	}
	r := *f.room
	return &r, nil
}

func (f *fakeRepo) OpenFirstRound(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if f.room == nil || f.room.Status != models.RoomStatusWaiting {
		return nil, ErrWrongStatus
	}
	f.room.Status = models.RoomStatusBidding
	f.room.CurrentRound = 1
	r := *f.room
	return &r, nil
}

func (f *fakeRepo) OpenNextRound(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if f.room == nil || f.room.Status != models.RoomStatusRevealed || f.room.CurrentRound >= f.room.TotalRounds {
		return nil, ErrWrongStatus
	}
	f.room.Status = models.RoomStatusBidding
	f.room.CurrentRound++
	r := *f.room
	return &r, nil
}

func (f *fakeRepo) MarkEnded(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if f.room == nil || (f.room.Status != models.RoomStatusBidding && f.room.Status != models.RoomStatusRevealed) {
		return nil, ErrWrongStatus
	}
	f.room.Status = models.RoomStatusEnded
	r := *f.room
	return &r, nil
}

func (f *fakeRepo) ResetRoom(ctx context.Context, id uuid.UUID, settings models.GameSettings) (*models.Room, error) {
	if f.room == nil {
		return nil, ErrNotFound
	}
	f.room.Status = models.RoomStatusWaiting
	f.room.CurrentRound = 1
	f.room.TotalRounds = settings.TotalRounds
	f.room.InitialTimeBudget = settings.InitialTimeBudget
	f.room.FoldThreshold = settings.FoldThreshold
	r := *f.room
	return &r, nil
}

func settle(f *fakeRepo) {
	f.room.Status = models.RoomStatusRevealed
}

func TestEnsureRoomCreatesOnce(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)
	ctx := context.Background()

	first, err := app.EnsureRoom(ctx, models.DefaultGameSettings())
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusWaiting, first.Status)
	assert.Equal(t, 19, first.TotalRounds)

	second, err := app.EnsureRoom(ctx, models.DefaultGameSettings())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestOpenRoundFullLifecycle(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)
	ctx := context.Background()

	settings := models.DefaultGameSettings()
	settings.TotalRounds = 3
	_, err := app.EnsureRoom(ctx, settings)
	require.NoError(t, err)

	// waiting -> bidding round 1
	r, err := app.OpenRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusBidding, r.Status)
	assert.Equal(t, 1, r.CurrentRound)

	// already bidding: no-op
	r, err = app.OpenRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CurrentRound)

	for round := 2; round <= 3; round++ {
		settle(repo)
		r, err = app.OpenRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusBidding, r.Status)
		assert.Equal(t, round, r.CurrentRound)
	}

	// round counter exhausted: ends the game
	settle(repo)
	r, err = app.OpenRound(ctx)
	require.ErrorIs(t, err, ErrRoundLimitReached)
	assert.Equal(t, models.RoomStatusEnded, r.Status)

	// further attempts keep reporting the limit
	_, err = app.OpenRound(ctx)
	assert.ErrorIs(t, err, ErrRoundLimitReached)
}

func TestOpenRoundAfterReset(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)
	ctx := context.Background()

	settings := models.DefaultGameSettings()
	settings.TotalRounds = 1
	_, err := app.EnsureRoom(ctx, settings)
	require.NoError(t, err)

	_, err = app.OpenRound(ctx)
	require.NoError(t, err)
	settle(repo)
	_, err = app.OpenRound(ctx)
	require.ErrorIs(t, err, ErrRoundLimitReached)

	fresh := models.DefaultGameSettings()
	fresh.TotalRounds = 5
	_, err = repo.ResetRoom(ctx, repo.room.ID, fresh)
	require.NoError(t, err)

	r, err := app.OpenRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusBidding, r.Status)
	assert.Equal(t, 1, r.CurrentRound)
	assert.Equal(t, 5, r.TotalRounds)
}
