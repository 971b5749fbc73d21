package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pigparty/server/internal/repositories/room Repository

import (
	"context"

	"github.com/pigparty/server/internal/models"
)

// Repository defines the interface for room membership, presence and chat
// persistence. Absent keys are reported as empty values, not errors, except
// for single-entry lookups which return the package's not-found errors.
type Repository interface {
	// SaveMember registers a connection in a room's membership
	SaveMember(ctx context.Context, input *SaveMemberInput) error

	// GetMember retrieves the display name a connection joined with
	GetMember(ctx context.Context, input *GetMemberInput) (*GetMemberOutput, error)

	// GetMembers retrieves a room's full membership as connID -> name
	GetMembers(ctx context.Context, input *GetMembersInput) (map[string]string, error)

	// RemoveMember removes a connection from a room's membership
	RemoveMember(ctx context.Context, input *RemoveMemberInput) error

	// MembersInJoinOrder returns the connection IDs still in membership,
	// ordered by when they joined
	MembersInJoinOrder(ctx context.Context, input *MembersInJoinOrderInput) ([]string, error)

	// HasMembers reports whether a room has at least one member
	HasMembers(ctx context.Context, input *HasMembersInput) (bool, error)

	// SaveStatus upserts a connection's presence record
	SaveStatus(ctx context.Context, input *SaveStatusInput) error

	// GetStatus retrieves a single connection's presence record
	GetStatus(ctx context.Context, input *GetStatusInput) (*models.PlayerStatus, error)

	// GetStatuses retrieves every presence record in a room
	GetStatuses(ctx context.Context, input *GetStatusesInput) ([]*models.PlayerStatus, error)

	// RemoveStatus deletes a connection's presence record
	RemoveStatus(ctx context.Context, input *RemoveStatusInput) error

	// AppendChat appends a message to a room's chat history and trims the
	// history to the given limit
	AppendChat(ctx context.Context, input *AppendChatInput) error

	// GetChat retrieves a room's chat history, oldest first
	GetChat(ctx context.Context, input *GetChatInput) ([]*models.ChatMessage, error)

	// SetGameID records which game a room is playing
	SetGameID(ctx context.Context, input *SetGameIDInput) error

	// GetGameID retrieves which game a room is playing, empty if unset
	GetGameID(ctx context.Context, input *GetGameIDInput) (string, error)

	// DeleteRoom removes every key belonging to a room
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error
}
