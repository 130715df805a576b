package main

import (
	"database/sql"
	"fmt"

	// pgx stdlib driver for the pool; pq.Listener dials its own connections
	// from the same DSN.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mcdev12/timeauction/go/internal/dbconfig"
	"github.com/rs/zerolog/log"
)

func setupDatabase() (*sql.DB, string, error) {
	cfg := dbconfig.NewConfigFromEnv()
	dsn := cfg.DSN()

	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to database")
	return database, dsn, nil
}
