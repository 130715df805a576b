package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/player"
	"github.com/mcdev12/timeauction/go/internal/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionState is the shared in-memory session a test's fakes operate on.
type sessionState struct {
	room    *models.Room
	players map[uuid.UUID]*models.Player
	bids    map[uuid.UUID]int
	events  []string
}

func newSessionState() *sessionState {
	return &sessionState{
		players: make(map[uuid.UUID]*models.Player),
		bids:    make(map[uuid.UUID]int),
	}
}

type fakeGameStore struct {
	state *sessionState
}

func (f *fakeGameStore) EnsureRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	if f.state.room == nil {
		f.state.room = roomFromSettings(settings)
	}
	r := *f.state.room
	return &r, nil
}

func (f *fakeGameStore) GetRoom(ctx context.Context) (*models.Room, error) {
	if f.state.room == nil {
		return nil, room.ErrNotFound
	}
	r := *f.state.room
	return &r, nil
}

func (f *fakeGameStore) OpenRound(ctx context.Context) (*models.Room, error) {
	r := f.state.room
	switch r.Status {
	case models.RoomStatusWaiting:
		r.Status = models.RoomStatusBidding
		r.CurrentRound = 1
	case models.RoomStatusBidding:
		// no-op
	case models.RoomStatusRevealed:
		if r.CurrentRound >= r.TotalRounds {
			r.Status = models.RoomStatusEnded
			cp := *r
			return &cp, room.ErrRoundLimitReached
		}
		r.Status = models.RoomStatusBidding
		r.CurrentRound++
	case models.RoomStatusEnded:
		cp := *r
		return &cp, room.ErrRoundLimitReached
	}
	cp := *r
	return &cp, nil
}

func (f *fakeGameStore) ResetRoom(ctx context.Context, settings models.GameSettings) (*models.Room, error) {
	f.state.room = roomFromSettings(settings)
	r := *f.state.room
	return &r, nil
}

func (f *fakeGameStore) DeleteAllBids(ctx context.Context) error {
	f.state.bids = make(map[uuid.UUID]int)
	return nil
}

func (f *fakeGameStore) DeleteAllPlayers(ctx context.Context) error {
	f.state.players = make(map[uuid.UUID]*models.Player)
	return nil
}

func (f *fakeGameStore) DeleteAllEvents(ctx context.Context) error {
	f.state.events = nil
	return nil
}

func (f *fakeGameStore) InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload interface{}) error {
	f.state.events = append(f.state.events, eventType)
	return nil
}

func roomFromSettings(settings models.GameSettings) *models.Room {
	return &models.Room{
		ID:                uuid.New(),
		Status:            models.RoomStatusWaiting,
		CurrentRound:      1,
		TotalRounds:       settings.TotalRounds,
		InitialTimeBudget: settings.InitialTimeBudget,
		FoldThreshold:     settings.FoldThreshold,
	}
}

type fakeGameRunner struct {
	state *sessionState
}

func (r *fakeGameRunner) InGameTx(ctx context.Context, fn func(Store) error) error {
	return fn(&fakeGameStore{state: r.state})
}

type noopSettler struct{}

func (noopSettler) Settle(ctx context.Context) error { return nil }

// ledgerOverState implements the player repository over the shared session
// state so a rejoin after Reset sees exactly what Reset left behind.
type ledgerOverState struct {
	state *sessionState
}

func (l *ledgerOverState) Upsert(ctx context.Context, id uuid.UUID, name string, initialTime float64, refreshName bool) (*models.Player, error) {
	if p, ok := l.state.players[id]; ok {
		if refreshName {
			p.Name = name
		}
		cp := *p
		return &cp, nil
	}
	p := &models.Player{ID: id, Name: name, TimeLeft: initialTime}
	l.state.players[id] = p
	cp := *p
	return &cp, nil
}

func (l *ledgerOverState) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := l.state.players[id]
	if !ok {
		return nil, player.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (l *ledgerOverState) ListRanked(ctx context.Context) ([]models.Player, error) {
	var out []models.Player
	for _, p := range l.state.players {
		out = append(out, *p)
	}
	return out, nil
}

func (l *ledgerOverState) ListActive(ctx context.Context) ([]models.Player, error) {
	return l.ListRanked(ctx)
}

func (l *ledgerOverState) CountActive(ctx context.Context) (int, error) {
	return len(l.state.players), nil
}

func (l *ledgerOverState) ApplyTimeDelta(ctx context.Context, id uuid.UUID, delta, minTimeLeft float64) (*models.Player, error) {
	return l.GetPlayer(ctx, id)
}

func (l *ledgerOverState) AwardToken(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return l.GetPlayer(ctx, id)
}

func (l *ledgerOverState) DeleteAll(ctx context.Context) error {
	l.state.players = make(map[uuid.UUID]*models.Player)
	return nil
}

func newTestService(state *sessionState) *Service {
	return NewService(&fakeGameRunner{state: state}, noopSettler{}, models.DefaultGameSettings())
}

func TestResetClearsSessionAndRejoinStartsFresh(t *testing.T) {
	ctx := context.Background()
	state := newSessionState()

	// A session mid-game: round 2 open, one player with standing balances,
	// a recorded bid and a pending event.
	state.room = roomFromSettings(models.DefaultGameSettings())
	state.room.Status = models.RoomStatusBidding
	state.room.CurrentRound = 2
	known := uuid.New()
	state.players[known] = &models.Player{ID: known, Name: "alice", TimeLeft: 123.4, Tokens: 2}
	state.bids[known] = 2
	state.events = []string{"RoundSettled"}

	svc := newTestService(state)
	fresh, err := svc.Reset(ctx, models.GameSettings{TotalRounds: 3, InitialTimeBudget: 60, FoldThreshold: 5.0})
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusWaiting, fresh.Status)
	assert.Equal(t, 1, fresh.CurrentRound)
	assert.Equal(t, 3, fresh.TotalRounds)
	assert.Equal(t, 60.0, fresh.InitialTimeBudget)

	assert.Empty(t, state.players)
	assert.Empty(t, state.bids)
	assert.Equal(t, []string{"GameReset"}, state.events)

	// The previously known identity rejoins and starts over at the new
	// budget, tokens gone.
	ledger := player.NewApp(&ledgerOverState{state: state}, &fakeGameStore{state: state}, false)
	p, err := ledger.Join(ctx, known, "alice")
	require.NoError(t, err)
	assert.Equal(t, 60.0, p.TimeLeft)
	assert.Equal(t, 0, p.Tokens)
	assert.False(t, p.Eliminated)
}

func TestResetCreatesRoomWhenMissing(t *testing.T) {
	state := newSessionState()
	svc := newTestService(state)

	fresh, err := svc.Reset(context.Background(), models.DefaultGameSettings())
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusWaiting, fresh.Status)
	assert.Equal(t, []string{"GameReset"}, state.events)
}

func TestOpenRoundEmitsOnce(t *testing.T) {
	ctx := context.Background()
	state := newSessionState()
	state.room = roomFromSettings(models.DefaultGameSettings())

	svc := newTestService(state)
	r, err := svc.OpenRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusBidding, r.Status)
	assert.Equal(t, []string{"RoundOpened"}, state.events)

	// Re-opening an already open round is a no-op and announces nothing.
	_, err = svc.OpenRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"RoundOpened"}, state.events)
}

func TestOpenRoundExhaustionEndsGame(t *testing.T) {
	ctx := context.Background()
	state := newSessionState()
	state.room = roomFromSettings(models.GameSettings{TotalRounds: 3, InitialTimeBudget: 60, FoldThreshold: 5.0})
	state.room.Status = models.RoomStatusRevealed
	state.room.CurrentRound = 3

	svc := newTestService(state)
	r, err := svc.OpenRound(ctx)
	assert.ErrorIs(t, err, room.ErrRoundLimitReached)
	assert.Equal(t, models.RoomStatusEnded, r.Status)
	assert.Equal(t, []string{"GameEnded"}, state.events)

	// Repeat calls keep reporting the limit without re-announcing the end.
	_, err = svc.OpenRound(ctx)
	assert.ErrorIs(t, err, room.ErrRoundLimitReached)
	assert.Equal(t, []string{"GameEnded"}, state.events)
}
