package player

import "errors"

var (
	// ErrPlayerNotFound means a ledger mutation referenced an unknown player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrEmptyName rejects a join with a blank display name.
	ErrEmptyName = errors.New("display name must not be empty")
)
