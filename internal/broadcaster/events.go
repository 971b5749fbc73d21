package broadcaster

import (
	"encoding/json"
	"fmt"
)

// Event types delivered on room channels. These are the wire names clients
// see; every process subscribed to a room relays them to its local
// connections.
const (
	EventRoomJoined         = "room_joined"
	EventRoomFull           = "room_full"
	EventRoomPlayers        = "room_players"
	EventPlayerStatusUpdate = "player_status_update"
	EventUserJoined         = "user_joined"
	EventGameUpdate         = "game_update"
	EventGameStart          = "game_start"
	EventGameReset          = "game_reset"
	EventGameRestart        = "game_restart"
	EventRoomClosed         = "room_closed"
	EventChatMessage        = "chat_message"
	EventChatHistory        = "chat_history"
	EventPlayerKicked       = "player_kicked"
	EventPlayerBanned       = "player_banned"
)

// Event is the envelope published to a room channel
type Event struct {
	// Type is one of the Event* constants
	Type string `json:"type"`

	// Payload is the event-specific body, absent for signal-only events
	// such as room_closed
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an event envelope, marshaling the payload. A nil payload
// produces a signal-only event.
func NewEvent(eventType string, payload any) (*Event, error) {
	if payload == nil {
		return &Event{Type: eventType}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return &Event{Type: eventType, Payload: body}, nil
}

// UserJoinedPayload announces a new connection to the rest of a room
type UserJoinedPayload struct {
	ConnID     string `json:"connId"`
	PlayerName string `json:"playerName"`
}

// PlayerRemovedPayload carries the connection removed by a kick or ban
type PlayerRemovedPayload struct {
	ConnID string `json:"connId"`
}
