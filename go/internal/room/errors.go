package room

import "errors"

var (
	// ErrNotFound means no room record exists yet.
	ErrNotFound = errors.New("room not found")

	// ErrRoundLimitReached means the configured round count is exhausted and
	// no further round can be opened.
	ErrRoundLimitReached = errors.New("round limit reached")

	// ErrWrongStatus means a conditional transition found the room in a
	// different lifecycle status than the one it requires.
	ErrWrongStatus = errors.New("room is not in the required status")
)
