package main

import (
	"database/sql"

	"github.com/mcdev12/timeauction/go/internal/bid"
	biddb "github.com/mcdev12/timeauction/go/internal/bid/db"
	"github.com/mcdev12/timeauction/go/internal/game"
	"github.com/mcdev12/timeauction/go/internal/gateway"
	"github.com/mcdev12/timeauction/go/internal/outbox"
	outboxdb "github.com/mcdev12/timeauction/go/internal/outbox/db"
	"github.com/mcdev12/timeauction/go/internal/player"
	playerdb "github.com/mcdev12/timeauction/go/internal/player/db"
	"github.com/mcdev12/timeauction/go/internal/room"
	roomdb "github.com/mcdev12/timeauction/go/internal/room/db"
	"github.com/mcdev12/timeauction/go/internal/settlement"
	"github.com/mcdev12/timeauction/go/internal/trigger"
)

type Services struct {
	Rooms   *room.App
	Players *player.App
	Bids    *bid.App
	Outbox  *outbox.Repository
	Engine  *settlement.Engine
	Game    *game.Service
	Monitor *trigger.Monitor
}

func setupServices(database *sql.DB, dsn string, cfg *Config) *Services {
	// Database layer → Repository layer → App layer

	// Room
	roomQueries := roomdb.New(database)
	roomRepo := room.NewRepository(roomQueries)
	roomApp := room.NewApp(roomRepo)

	// Player
	playerQueries := playerdb.New(database)
	playerRepo := player.NewRepository(playerQueries)
	playerApp := player.NewApp(playerRepo, roomApp, cfg.Game.RefreshNameOnRejoin)

	// Outbox
	outboxQueries := outboxdb.New(database)
	outboxRepo := outbox.NewRepository(outboxQueries)
	outboxApp := outbox.NewApp(outboxRepo)

	// Bid
	bidQueries := biddb.New(database)
	bidRepo := bid.NewRepository(bidQueries)
	bidApp := bid.NewApp(bidRepo, roomApp, playerApp, outboxApp)

	// Settlement
	engine := settlement.NewEngine(settlement.NewSQLRunner(database))

	// Session commands
	gameService := game.NewService(game.NewSQLRunner(database), engine, cfg.gameSettings())

	// Round monitor
	monitorCfg := trigger.DefaultMonitorConfig()
	monitorCfg.DatabaseURL = dsn
	if cfg.Monitor.PollInterval > 0 {
		monitorCfg.PollInterval = cfg.Monitor.PollInterval
	}
	monitor := trigger.NewMonitor(roomApp, bidApp, playerApp, engine, monitorCfg)

	return &Services{
		Rooms:   roomApp,
		Players: playerApp,
		Bids:    bidApp,
		Outbox:  outboxRepo,
		Engine:  engine,
		Game:    gameService,
		Monitor: monitor,
	}
}

func setupGateway(services *Services, cfg *Config) (*gateway.Service, error) {
	stateProvider := gateway.NewGameStateProvider(services.Rooms, services.Players, services.Bids)
	stateHandler := gateway.NewStateHandler(stateProvider)
	gameHandler := gateway.NewGameHandler(services.Players, services.Bids, services.Monitor)
	adminHandler := gateway.NewAdminHandler(services.Game)

	gwCfg := gateway.DefaultConfig()
	if cfg.NATS.URL != "" {
		gwCfg.JetStreamConfig.URL = cfg.NATS.URL
	}

	return gateway.NewService(gwCfg, stateHandler, gameHandler, adminHandler)
}
