package player

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayerRepo struct {
	players map[uuid.UUID]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[uuid.UUID]*models.Player)}
}

func (f *fakePlayerRepo) Upsert(ctx context.Context, id uuid.UUID, name string, initialTime float64, refreshName bool) (*models.Player, error) {
	if existing, ok := f.players[id]; ok {
		if refreshName {
			existing.Name = name
		}
		cp := *existing
		return &cp, nil
	}
	f.players[id] = &models.Player{ID: id, Name: name, TimeLeft: initialTime}
	cp := *f.players[id]
	return &cp, nil
}

func (f *fakePlayerRepo) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayerRepo) ListRanked(ctx context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tokens != out[j].Tokens {
			return out[i].Tokens > out[j].Tokens
		}
		return out[i].TimeLeft < out[j].TimeLeft
	})
	return out, nil
}

func (f *fakePlayerRepo) ListActive(ctx context.Context) ([]models.Player, error) {
	var out []models.Player
	for _, p := range f.players {
		if !p.Eliminated {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, p := range f.players {
		if !p.Eliminated {
			n++
		}
	}
	return n, nil
}

func (f *fakePlayerRepo) ApplyTimeDelta(ctx context.Context, id uuid.UUID, delta, minTimeLeft float64) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	p.TimeLeft += delta
	if p.TimeLeft <= minTimeLeft {
		p.Eliminated = true
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayerRepo) AwardToken(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	p.Tokens++
	cp := *p
	return &cp, nil
}

func (f *fakePlayerRepo) DeleteAll(ctx context.Context) error {
	f.players = make(map[uuid.UUID]*models.Player)
	return nil
}

type fakeRoomSource struct {
	room models.Room
}

func (f *fakeRoomSource) GetRoom(ctx context.Context) (*models.Room, error) {
	r := f.room
	return &r, nil
}

func newTestApp(refreshName bool) (*App, *fakePlayerRepo) {
	repo := newFakePlayerRepo()
	rooms := &fakeRoomSource{room: models.Room{
		ID:                uuid.New(),
		Status:            models.RoomStatusWaiting,
		TotalRounds:       19,
		InitialTimeBudget: 600.0,
		FoldThreshold:     5.0,
	}}
	return NewApp(repo, rooms, refreshName), repo
}

func TestJoinIsIdempotent(t *testing.T) {
	app, _ := newTestApp(false)
	ctx := context.Background()
	id := uuid.New()

	p, err := app.Join(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, 600.0, p.TimeLeft)
	assert.Equal(t, 0, p.Tokens)

	// Drain some time, then rejoin: balances must survive.
	_, err = app.AdjustTime(ctx, id, -100)
	require.NoError(t, err)

	again, err := app.Join(ctx, id, "alice2")
	require.NoError(t, err)
	assert.Equal(t, 500.0, again.TimeLeft)
	assert.Equal(t, "alice", again.Name, "rejoin must not rename when refresh is off")
}

func TestJoinRefreshNameOnRejoin(t *testing.T) {
	app, _ := newTestApp(true)
	ctx := context.Background()
	id := uuid.New()

	_, err := app.Join(ctx, id, "alice")
	require.NoError(t, err)

	again, err := app.Join(ctx, id, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", again.Name)
}

func TestJoinRejectsEmptyName(t *testing.T) {
	app, _ := newTestApp(false)

	_, err := app.Join(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAdjustTimeEliminatesAtZero(t *testing.T) {
	app, _ := newTestApp(false)
	ctx := context.Background()
	id := uuid.New()

	_, err := app.Join(ctx, id, "bob")
	require.NoError(t, err)

	p, err := app.AdjustTime(ctx, id, -599.9)
	require.NoError(t, err)
	assert.False(t, p.Eliminated)

	// Exactly zero eliminates.
	p, err = app.AdjustTime(ctx, id, -0.1)
	require.NoError(t, err)
	assert.True(t, p.Eliminated)
	assert.InDelta(t, 0.0, p.TimeLeft, 1e-9)
}

func TestEliminationIsSticky(t *testing.T) {
	app, _ := newTestApp(false)
	ctx := context.Background()
	id := uuid.New()

	_, err := app.Join(ctx, id, "carol")
	require.NoError(t, err)

	_, err = app.AdjustTime(ctx, id, -600)
	require.NoError(t, err)

	// A later positive adjustment does not resurrect the player.
	p, err := app.AdjustTime(ctx, id, 50)
	require.NoError(t, err)
	assert.True(t, p.Eliminated)
}

func TestListRankedOrder(t *testing.T) {
	app, repo := newTestApp(false)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	for id, name := range map[uuid.UUID]string{a: "a", b: "b", c: "c"} {
		_, err := app.Join(ctx, id, name)
		require.NoError(t, err)
	}

	repo.players[a].Tokens = 2
	repo.players[a].TimeLeft = 300
	repo.players[b].Tokens = 2
	repo.players[b].TimeLeft = 100
	repo.players[c].Tokens = 5

	ranked, err := app.ListRanked(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Tokens descending, then time left ascending (scarcer time ranks higher).
	assert.Equal(t, c, ranked[0].ID)
	assert.Equal(t, b, ranked[1].ID)
	assert.Equal(t, a, ranked[2].ID)
}
