package room

import (
	"time"

	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/common/clock"
	"github.com/pigparty/server/internal/models"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// Config holds configuration for the room service
type Config struct {
	// Maximum number of players per room
	MaxPlayers int

	// GracePeriod is how long a disconnected player is kept in membership
	// before the deferred finalize may remove them
	GracePeriod time.Duration

	// ChatHistoryLimit caps a room's stored chat history
	ChatHistoryLimit int64

	// Repository dependencies
	RoomRepo      roomRepo.Repository
	GameStateRepo gamestateRepo.Repository

	// Service dependencies
	Broadcaster broadcaster.Broadcaster
	Scheduler   Scheduler
	Clock       clock.Clock
}

// JoinInput contains parameters for admitting a connection into a room
type JoinInput struct {
	// RoomID is the room being joined
	RoomID string

	// ConnID is the connection ID assigned to this connection
	ConnID string

	// PlayerName is the display name the player joins with. A member with
	// the same name already in the room is treated as this player
	// reconnecting under a new connection ID.
	PlayerName string

	// GameID identifies which game the room is playing
	GameID string
}

// JoinOutput contains the result of a join
type JoinOutput struct {
	// Reconnected indicates the join replaced a stale entry for the same
	// display name instead of adding a new member
	Reconnected bool

	// GameID is the game the room plays, resolved from the input or the
	// room's stored game
	GameID string

	// Members is the room membership after the join, connID -> name
	Members map[string]string

	// Statuses is the presence snapshot after the join
	Statuses []*models.PlayerStatus

	// ChatHistory is the room's chat backlog, for delivery to the joining
	// connection only
	ChatHistory []*models.ChatMessage
}

// ChatInput contains parameters for a chat message
type ChatInput struct {
	RoomID  string
	ConnID  string
	Message string
}

// ChatOutput contains the result of a chat message
type ChatOutput struct {
	// Dropped indicates the message was empty or whitespace-only and was
	// silently discarded
	Dropped bool

	// Message is the stored entry when not dropped
	Message *models.ChatMessage
}

// DisconnectInput contains parameters for a connection disconnect
type DisconnectInput struct {
	// ConnID is the disconnecting connection
	ConnID string

	// RoomIDs are the rooms the connection had joined
	RoomIDs []string
}

// DisconnectOutput contains the result of a disconnect
type DisconnectOutput struct {
	// ClosedRooms lists rooms that were torn down immediately because
	// their membership was already empty
	ClosedRooms []string
}

// FinalizeDisconnectInput contains parameters for the deferred finalize
type FinalizeDisconnectInput struct {
	RoomID string
	ConnID string
}

// FinalizeDisconnectOutput contains the result of the deferred finalize
type FinalizeDisconnectOutput struct {
	// Removed indicates the player was permanently removed from the room
	Removed bool

	// RoomClosed indicates the removal emptied the room and it was torn down
	RoomClosed bool
}

// RemoveInput contains parameters for an immediate removal (kick or ban)
type RemoveInput struct {
	RoomID string

	// ConnID is the connection being removed
	ConnID string
}

// RemoveOutput contains the result of an immediate removal
type RemoveOutput struct {
	// RoomClosed indicates the removal emptied the room and it was torn down
	RoomClosed bool
}

// HasPlayersInput contains parameters for the room existence check
type HasPlayersInput struct {
	RoomID string
}
