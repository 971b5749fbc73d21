package room

import (
	"time"

	"github.com/pigparty/server/internal/models"
)

// SaveMemberInput contains parameters for registering a room member
type SaveMemberInput struct {
	// RoomID is the room being joined
	RoomID string

	// ConnID is the connection ID of the joining player
	ConnID string

	// PlayerName is the display name of the joining player
	PlayerName string

	// JoinedAt orders members for leader election
	JoinedAt time.Time
}

// GetMemberInput contains parameters for a single membership lookup
type GetMemberInput struct {
	RoomID string
	ConnID string
}

// GetMemberOutput contains the result of a single membership lookup
type GetMemberOutput struct {
	// PlayerName is the display name the connection joined with
	PlayerName string
}

// GetMembersInput contains parameters for reading a room's membership
type GetMembersInput struct {
	RoomID string
}

// RemoveMemberInput contains parameters for removing a room member
type RemoveMemberInput struct {
	RoomID string
	ConnID string
}

// MembersInJoinOrderInput contains parameters for reading ordered membership
type MembersInJoinOrderInput struct {
	RoomID string
}

// HasMembersInput contains parameters for the room existence check
type HasMembersInput struct {
	RoomID string
}

// SaveStatusInput contains parameters for upserting a presence record
type SaveStatusInput struct {
	RoomID string
	ConnID string

	// Status is the presence record to store
	Status *models.PlayerStatus
}

// GetStatusInput contains parameters for reading a presence record
type GetStatusInput struct {
	RoomID string
	ConnID string
}

// GetStatusesInput contains parameters for reading a room's presence records
type GetStatusesInput struct {
	RoomID string
}

// RemoveStatusInput contains parameters for deleting a presence record
type RemoveStatusInput struct {
	RoomID string
	ConnID string
}

// AppendChatInput contains parameters for appending a chat message
type AppendChatInput struct {
	RoomID string

	// Message is the entry to append
	Message *models.ChatMessage

	// Limit caps the history length, oldest entries trimmed first
	Limit int64
}

// GetChatInput contains parameters for reading chat history
type GetChatInput struct {
	RoomID string
}

// SetGameIDInput contains parameters for recording a room's game
type SetGameIDInput struct {
	RoomID string
	GameID string
}

// GetGameIDInput contains parameters for reading a room's game
type GetGameIDInput struct {
	RoomID string
}

// DeleteRoomInput contains parameters for tearing down a room's keys
type DeleteRoomInput struct {
	RoomID string
}
