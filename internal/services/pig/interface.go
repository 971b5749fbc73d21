package pig

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pigparty/server/internal/services/pig Service

import "context"

// Service defines the interface for the pig game state machine
type Service interface {
	// Join adds a player to a room's game, creating the game on first join
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Roll performs a die roll for the active player
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// Bank moves the active player's pending score into their frozen score
	Bank(ctx context.Context, input *BankInput) (*BankOutput, error)

	// SetBannedNumber draws a new banned die value for the room
	SetBannedNumber(ctx context.Context, input *SetBannedNumberInput) (*SetBannedNumberOutput, error)

	// Leave removes a player from the game, invoked on disconnect or removal
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// Reset replaces the game state with an empty, not-started state
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// Restart replaces the game state like Reset but announces a restart
	Restart(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// GetState retrieves the current game state, nil if absent
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
}
