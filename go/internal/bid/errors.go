package bid

import "errors"

var (
	// ErrDuplicateBid means the player already has a bid for this round. The
	// original bid stands; a duplicate never overwrites it.
	ErrDuplicateBid = errors.New("player already bid this round")

	// ErrRoundNotOpen means the room is not accepting bids, or the submitted
	// round number is not the room's current round.
	ErrRoundNotOpen = errors.New("round is not open for bidding")

	// ErrPlayerEliminated rejects bids from eliminated players.
	ErrPlayerEliminated = errors.New("player is eliminated")

	// ErrInvalidDuration rejects negative durations.
	ErrInvalidDuration = errors.New("bid duration must be non-negative")

	// ErrExceedsTimeLeft rejects a bid larger than the player's remaining
	// budget at submission time.
	ErrExceedsTimeLeft = errors.New("bid duration exceeds remaining time")
)
