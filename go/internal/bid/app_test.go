package bid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/gameevents"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bidKey struct {
	player uuid.UUID
	round  int
}

type fakeBidRepo struct {
	bids map[bidKey]*models.Bid

	// roundClosed makes Insert behave as if settlement claimed the round
	// after the caller's status check: the conditional insert finds no open
	// room row and stores nothing.
	roundClosed bool
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[bidKey]*models.Bid)}
}

func (f *fakeBidRepo) Insert(ctx context.Context, playerID uuid.UUID, round int, duration float64, isFold bool) (*models.Bid, error) {
	if f.roundClosed {
		return nil, ErrRoundNotOpen
	}
	key := bidKey{playerID, round}
	if _, ok := f.bids[key]; ok {
		return nil, ErrDuplicateBid
	}
	b := &models.Bid{
		ID:              uuid.New(),
		PlayerID:        playerID,
		RoundNumber:     round,
		DurationSeconds: duration,
		IsFold:          isFold,
	}
	f.bids[key] = b
	cp := *b
	return &cp, nil
}

func (f *fakeBidRepo) GetByPlayerRound(ctx context.Context, playerID uuid.UUID, round int) (*models.Bid, error) {
	b, ok := f.bids[bidKey{playerID, round}]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBidRepo) ListByRound(ctx context.Context, round int) ([]models.Bid, error) {
	var out []models.Bid
	for key, b := range f.bids {
		if key.round == round {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBidRepo) CountActiveByRound(ctx context.Context, round int) (int, error) {
	n := 0
	for key := range f.bids {
		if key.round == round {
			n++
		}
	}
	return n, nil
}

type fakeRoomSource struct {
	room models.Room
}

func (f *fakeRoomSource) GetRoom(ctx context.Context) (*models.Room, error) {
	r := f.room
	return &r, nil
}

type fakePlayerSource struct {
	players map[uuid.UUID]*models.Player
}

func (f *fakePlayerSource) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p := f.players[id]
	cp := *p
	return &cp, nil
}

type captureSink struct {
	placed []gameevents.BidPlacedPayload
}

func (c *captureSink) InsertBidPlaced(ctx context.Context, roomID uuid.UUID, payload gameevents.BidPlacedPayload) error {
	c.placed = append(c.placed, payload)
	return nil
}

func newBidTestApp(status models.RoomStatus, round int) (*App, *fakePlayerSource, *captureSink) {
	rooms := &fakeRoomSource{room: models.Room{
		ID:            uuid.New(),
		Status:        status,
		CurrentRound:  round,
		TotalRounds:   19,
		FoldThreshold: 5.0,
	}}
	players := &fakePlayerSource{players: make(map[uuid.UUID]*models.Player)}
	sink := &captureSink{}
	return NewApp(newFakeBidRepo(), rooms, players, sink), players, sink
}

func addPlayer(players *fakePlayerSource, timeLeft float64, eliminated bool) uuid.UUID {
	id := uuid.New()
	players.players[id] = &models.Player{ID: id, TimeLeft: timeLeft, Eliminated: eliminated}
	return id
}

func TestSubmitAcceptsAndAnnounces(t *testing.T) {
	app, players, sink := newBidTestApp(models.RoomStatusBidding, 2)
	id := addPlayer(players, 100, false)

	b, err := app.Submit(context.Background(), id, 2, 30.0)
	require.NoError(t, err)
	assert.Equal(t, 30.0, b.DurationSeconds)
	assert.False(t, b.IsFold)

	require.Len(t, sink.placed, 1)
	assert.Equal(t, id.String(), sink.placed[0].PlayerID)
	assert.Equal(t, 2, sink.placed[0].Round)
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusBidding, 1)
	id := addPlayer(players, 100, false)
	ctx := context.Background()

	_, err := app.Submit(ctx, id, 1, 10.0)
	require.NoError(t, err)

	_, err = app.Submit(ctx, id, 1, 20.0)
	assert.ErrorIs(t, err, ErrDuplicateBid)

	// The original bid is untouched.
	b, err := app.GetByPlayerRound(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, b.DurationSeconds)
}

func TestSubmitRejectsClosedRound(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusRevealed, 1)
	id := addPlayer(players, 100, false)

	_, err := app.Submit(context.Background(), id, 1, 10.0)
	assert.ErrorIs(t, err, ErrRoundNotOpen)
}

func TestSubmitRejectsStaleRoundNumber(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusBidding, 3)
	id := addPlayer(players, 100, false)

	_, err := app.Submit(context.Background(), id, 2, 10.0)
	assert.ErrorIs(t, err, ErrRoundNotOpen)
}

func TestSubmitRejectsEliminated(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusBidding, 1)
	id := addPlayer(players, 50, true)

	_, err := app.Submit(context.Background(), id, 1, 10.0)
	assert.ErrorIs(t, err, ErrPlayerEliminated)
}

func TestSubmitRejectsOverBudget(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusBidding, 1)
	id := addPlayer(players, 25, false)

	_, err := app.Submit(context.Background(), id, 1, 25.1)
	assert.ErrorIs(t, err, ErrExceedsTimeLeft)
}

func TestSubmitRejectsNegativeDuration(t *testing.T) {
	app, players, _ := newBidTestApp(models.RoomStatusBidding, 1)
	id := addPlayer(players, 100, false)

	_, err := app.Submit(context.Background(), id, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSubmitRejectsRoundClaimedMidFlight(t *testing.T) {
	// The room still reads as bidding, but by the time the insert lands the
	// round has been claimed for settlement. The conditional insert rejects
	// the bid; nothing is stored or announced.
	rooms := &fakeRoomSource{room: models.Room{
		ID:            uuid.New(),
		Status:        models.RoomStatusBidding,
		CurrentRound:  1,
		TotalRounds:   19,
		FoldThreshold: 5.0,
	}}
	players := &fakePlayerSource{players: make(map[uuid.UUID]*models.Player)}
	sink := &captureSink{}
	repo := newFakeBidRepo()
	repo.roundClosed = true
	app := NewApp(repo, rooms, players, sink)

	id := addPlayer(players, 100, false)
	_, err := app.Submit(context.Background(), id, 1, 30.0)
	assert.ErrorIs(t, err, ErrRoundNotOpen)
	assert.Empty(t, repo.bids)
	assert.Empty(t, sink.placed)
}

func TestSubmitFoldDerivation(t *testing.T) {
	// Fold threshold is 5.0: strictly below folds, at or above competes.
	tests := []struct {
		name     string
		duration float64
		wantFold bool
	}{
		{"zero", 0, true},
		{"just under", 4.999, true},
		{"exactly threshold", 5.0, false},
		{"above", 5.001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, players, _ := newBidTestApp(models.RoomStatusBidding, 1)
			id := addPlayer(players, 100, false)

			b, err := app.Submit(context.Background(), id, 1, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFold, b.IsFold)
		})
	}
}
