package trigger

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRooms struct {
	room models.Room
}

func (s *stubRooms) GetRoom(ctx context.Context) (*models.Room, error) {
	r := s.room
	return &r, nil
}

type stubBids struct {
	count int
}

func (s *stubBids) CountActiveByRound(ctx context.Context, round int) (int, error) {
	return s.count, nil
}

type stubPlayers struct {
	active int
}

func (s *stubPlayers) CountActive(ctx context.Context) (int, error) {
	return s.active, nil
}

type countingSettler struct {
	calls  atomic.Int32
	signal chan struct{}
}

func (s *countingSettler) Settle(ctx context.Context) error {
	s.calls.Add(1)
	if s.signal != nil {
		select {
		case s.signal <- struct{}{}:
		default:
		}
	}
	return nil
}

func newTestMonitor(status models.RoomStatus, round, active, bids int) (*Monitor, *countingSettler) {
	rooms := &stubRooms{room: models.Room{
		ID:           uuid.New(),
		Status:       status,
		CurrentRound: round,
		TotalRounds:  19,
	}}
	settler := &countingSettler{}
	m := NewMonitor(rooms, &stubBids{count: bids}, &stubPlayers{active: active}, settler, DefaultMonitorConfig())
	return m, settler
}

func TestCheckSettlesWhenCovered(t *testing.T) {
	m, settler := newTestMonitor(models.RoomStatusBidding, 1, 3, 3)
	m.checkAndSettle(context.Background())
	assert.Equal(t, int32(1), settler.calls.Load())
}

func TestCheckWaitsForMissingBids(t *testing.T) {
	m, settler := newTestMonitor(models.RoomStatusBidding, 1, 3, 2)
	m.checkAndSettle(context.Background())
	assert.Equal(t, int32(0), settler.calls.Load())
}

func TestCheckIgnoresClosedRoom(t *testing.T) {
	for _, status := range []models.RoomStatus{models.RoomStatusWaiting, models.RoomStatusRevealed, models.RoomStatusEnded} {
		m, settler := newTestMonitor(status, 1, 3, 3)
		m.checkAndSettle(context.Background())
		assert.Equal(t, int32(0), settler.calls.Load(), "status %s", status)
	}
}

func TestCheckIgnoresEmptyRoster(t *testing.T) {
	m, settler := newTestMonitor(models.RoomStatusBidding, 1, 0, 0)
	m.checkAndSettle(context.Background())
	assert.Equal(t, int32(0), settler.calls.Load())
}

func TestCheckRepeatsDeferToSettler(t *testing.T) {
	// Duplicate wakes call the settler again; making that a no-op is the
	// settlement claim's job, not the monitor's.
	m, settler := newTestMonitor(models.RoomStatusBidding, 1, 2, 2)
	ctx := context.Background()
	m.checkAndSettle(ctx)
	m.checkAndSettle(ctx)
	assert.Equal(t, int32(2), settler.calls.Load())
}

func TestRunWakesOnDemand(t *testing.T) {
	m, settler := newTestMonitor(models.RoomStatusBidding, 1, 2, 2)
	settler.signal = make(chan struct{}, 1)
	m.WithClock(clockwork.NewFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	m.Wake()
	select {
	case <-settler.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor never reacted to wake")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not shut down")
	}
}
