package gateway

import (
	"encoding/json"
	"time"

	"github.com/mcdev12/timeauction/go/internal/gameevents"
)

// GameEvent represents the base structure for all game events pushed to
// websocket clients
type GameEvent struct {
	ID        string          `json:"id"`        // Event UUID
	RoomID    string          `json:"room_id"`   // Room UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of game event
type EventType string

const (
	EventTypeRoundOpened  EventType = "RoundOpened"
	EventTypeBidPlaced    EventType = "BidPlaced"
	EventTypeRoundSettled EventType = "RoundSettled"
	EventTypeGameEnded    EventType = "GameEnded"
	EventTypeGameReset    EventType = "GameReset"
)

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *GameEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeRoundOpened:
		var payload gameevents.RoundOpenedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeBidPlaced:
		var payload gameevents.BidPlacedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeRoundSettled:
		var payload gameevents.RoundSettledPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeGameEnded:
		var payload gameevents.GameEndedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeGameReset:
		var payload gameevents.GameResetPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}
