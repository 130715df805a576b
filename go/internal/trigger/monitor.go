package trigger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) clockwork.Timer
}

// RoomSource reads the current room state.
type RoomSource interface {
	GetRoom(ctx context.Context) (*models.Room, error)
}

// BidCounts reads bid coverage for the open round.
type BidCounts interface {
	CountActiveByRound(ctx context.Context, round int) (int, error)
}

// PlayerCounts reads the active roster size.
type PlayerCounts interface {
	CountActive(ctx context.Context) (int, error)
}

// Settler resolves the current round when coverage is complete.
type Settler interface {
	Settle(ctx context.Context) error
}

type MonitorConfig struct {
	DatabaseURL   string        // Postgres DSN for LISTEN/NOTIFY, empty disables it
	NotifyChannel string        // Channel the bid insert trigger notifies on
	PollInterval  time.Duration // Fallback check cadence
	PingInterval  time.Duration
}

func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		DatabaseURL:   "",
		NotifyChannel: "bid_events",
		PollInterval:  5 * time.Second,
		PingInterval:  90 * time.Second,
	}
}

// Monitor watches the open round and fires settlement the moment every
// active player has a bid on record. It reacts to bid insert notifications
// and falls back to polling so a dropped notification only delays the
// round, never strands it.
//
// The check and the settlement claim are separate steps on purpose: two
// monitors may both decide a round is complete, and the engine's
// conditional claim makes the second one a no-op.
type Monitor struct {
	rooms      RoomSource
	bids       BidCounts
	players    PlayerCounts
	settler    Settler
	clock      Clock
	wakeCh     chan struct{}
	listener   *pq.Listener
	cfg        MonitorConfig
	instanceID string // short ID for logging
}

// NewMonitor creates a round completion monitor.
func NewMonitor(rooms RoomSource, bids BidCounts, players PlayerCounts, settler Settler, cfg MonitorConfig) *Monitor {
	return &Monitor{
		rooms:      rooms,
		bids:       bids,
		players:    players,
		settler:    settler,
		clock:      clockwork.NewRealClock(),
		wakeCh:     make(chan struct{}, 1),
		cfg:        cfg,
		instanceID: uuid.New().String()[:8],
	}
}

// WithClock swaps the clock, for tests.
func (m *Monitor) WithClock(clock Clock) *Monitor {
	m.clock = clock
	return m
}

// Wake nudges the monitor to re-check coverage now instead of waiting for
// the next poll tick. Safe to call from any goroutine; a pending wake is
// never stacked.
func (m *Monitor) Wake() {
	select {
	case m.wakeCh <- struct{}{}:
	default:
	}
}

// Run loops until ctx is cancelled, checking coverage on every wake source.
func (m *Monitor) Run(ctx context.Context) error {
	log.Info().
		Str("instance", m.instanceID).
		Dur("poll_interval", m.cfg.PollInterval).
		Msg("round monitor started")

	var notifyCh <-chan *pq.Notification
	if m.cfg.DatabaseURL != "" {
		l := pq.NewListener(
			m.cfg.DatabaseURL,
			10*time.Second,
			time.Minute,
			func(ev pq.ListenerEventType, err error) {
				if err != nil {
					log.Error().Err(err).Msg("monitor listener event")
				}
			},
		)
		if err := l.Listen(m.cfg.NotifyChannel); err != nil {
			return err
		}
		m.listener = l
		notifyCh = l.Notify
		defer l.Close()

		log.Info().
			Str("channel", m.cfg.NotifyChannel).
			Str("instance", m.instanceID).
			Msg("listening for bid notifications")
	}

	timer := m.clock.NewTimer(m.cfg.PollInterval)
	defer timer.Stop()

	pingTicker := time.NewTicker(m.cfg.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("instance", m.instanceID).Msg("round monitor shutting down")
			return nil
		case note := <-notifyCh:
			if note == nil {
				// connection was lost, the listener reconnects itself
				continue
			}
			m.checkAndSettle(ctx)
		case <-m.wakeCh:
			log.Debug().Str("instance", m.instanceID).Msg("woken for coverage check")
			m.checkAndSettle(ctx)
		case <-timer.Chan():
			m.checkAndSettle(ctx)
		case <-pingTicker.C:
			if m.listener != nil {
				if err := m.listener.Ping(); err != nil {
					log.Error().Err(err).Msg("failed to ping monitor listener")
				}
			}
		}
		timer.Reset(m.cfg.PollInterval)
	}
}

// checkAndSettle settles the open round when every active player has bid.
// Errors are logged, not returned; the next wake retries.
func (m *Monitor) checkAndSettle(ctx context.Context) {
	room, err := m.rooms.GetRoom(ctx)
	if err != nil {
		log.Error().Err(err).Str("instance", m.instanceID).Msg("failed to load room")
		return
	}
	if room.Status != models.RoomStatusBidding {
		return
	}

	active, err := m.players.CountActive(ctx)
	if err != nil {
		log.Error().Err(err).Str("instance", m.instanceID).Msg("failed to count active players")
		return
	}
	if active == 0 {
		// nobody left to wait for but also nobody to settle over
		return
	}

	bids, err := m.bids.CountActiveByRound(ctx, room.CurrentRound)
	if err != nil {
		log.Error().Err(err).Str("instance", m.instanceID).Msg("failed to count round bids")
		return
	}
	if bids < active {
		log.Debug().
			Int("round", room.CurrentRound).
			Int("bids", bids).
			Int("active", active).
			Str("instance", m.instanceID).
			Msg("round not yet covered")
		return
	}

	log.Info().
		Int("round", room.CurrentRound).
		Int("bids", bids).
		Int("active", active).
		Str("instance", m.instanceID).
		Msg("round covered, settling")

	if err := m.settler.Settle(ctx); err != nil {
		log.Error().Err(err).Int("round", room.CurrentRound).Str("instance", m.instanceID).Msg("settlement failed")
	}
}
