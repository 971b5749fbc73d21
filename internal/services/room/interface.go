package room

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pigparty/server/internal/services/room Service
//go:generate mockgen -package=room -destination=mock_scheduler_test.go github.com/pigparty/server/internal/services/room Scheduler

import (
	"context"
	"time"
)

// Service defines the interface for room session operations
type Service interface {
	// Join admits a connection into a room, handling reconnection by
	// display name and the room capacity cap
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Chat appends a message to the room's capped history and fans it out
	Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error)

	// Disconnect marks a connection offline in every room it belonged to
	// and schedules its grace-period finalize
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// FinalizeDisconnect is the deferred grace-period callback: it
	// re-reads presence and removes the player only if they are still
	// offline past the grace period
	FinalizeDisconnect(ctx context.Context, input *FinalizeDisconnectInput) (*FinalizeDisconnectOutput, error)

	// Kick removes a member immediately, with no grace period
	Kick(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// Ban removes a member immediately, with no grace period
	Ban(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// HasPlayers reports whether a room has at least one member. Exposed
	// for external collaborators that need an existence check without
	// joining.
	HasPlayers(ctx context.Context, input *HasPlayersInput) (bool, error)
}

// Scheduler schedules the deferred presence finalize for a disconnected
// connection. Implementations need not support cancellation: the finalize
// re-validates state at fire time, so stale tasks are harmless no-ops.
type Scheduler interface {
	ScheduleFinalize(ctx context.Context, roomID, connID string, delay time.Duration) error
}
