package gamestate

import (
	"github.com/pigparty/server/internal/models"
)

// GetInput contains parameters for reading a room's game state
type GetInput struct {
	RoomID string
}

// SaveInput contains parameters for an unconditional save
type SaveInput struct {
	RoomID string

	// State is the blob to persist
	State *models.PigState
}

// CompareAndSaveInput contains parameters for an optimistic save
type CompareAndSaveInput struct {
	RoomID string

	// State is the blob to persist. Its Version field is overwritten with
	// ExpectedVersion+1 on success.
	State *models.PigState

	// ExpectedVersion is the version the caller read before mutating
	ExpectedVersion int64
}

// DeleteInput contains parameters for removing a room's game state
type DeleteInput struct {
	RoomID string
}
