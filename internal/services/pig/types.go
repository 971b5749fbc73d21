package pig

import (
	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/dice"
	"github.com/pigparty/server/internal/models"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// GameID is the identifier rooms use to select this game
const GameID = "pig"

// Config holds configuration for the pig game service
type Config struct {
	// WinningScore is the frozen score a player must reach to win
	WinningScore int

	// DieSides is the number of sides on the die
	DieSides int

	// MaxSaveRetries bounds the optimistic read-modify-write loop
	MaxSaveRetries int

	// Repository dependencies
	GameStateRepo gamestateRepo.Repository
	RoomRepo      roomRepo.Repository

	// Service dependencies
	Broadcaster broadcaster.Broadcaster
	DiceRoller  dice.Roller
}

// JoinInput contains parameters for joining a room's game
type JoinInput struct {
	RoomID string

	// ConnID is the connection ID of the joining player
	ConnID string

	// PlayerName is the display name of the joining player
	PlayerName string
}

// JoinOutput contains the result of joining a game
type JoinOutput struct {
	// State is the game state after the join
	State *models.PigState
}

// RollInput contains parameters for a die roll
type RollInput struct {
	RoomID string
	ConnID string
}

// RollOutput contains the result of a die roll
type RollOutput struct {
	// Applied indicates the roll was accepted; false when the game is
	// absent, already won, or it was not the caller's turn
	Applied bool

	// Value is the rolled die value
	Value int

	// Busted indicates the roll matched the banned value
	Busted bool

	// State is the game state after the roll
	State *models.PigState
}

// BankInput contains parameters for banking the pending score
type BankInput struct {
	RoomID string
	ConnID string
}

// BankOutput contains the result of banking
type BankOutput struct {
	// Applied indicates the bank was accepted
	Applied bool

	// Winner is set when the bank reached the winning score
	Winner *string

	// State is the game state after the bank
	State *models.PigState
}

// SetBannedNumberInput contains parameters for drawing a new banned value
type SetBannedNumberInput struct {
	RoomID string
	ConnID string
}

// SetBannedNumberOutput contains the result of drawing a new banned value
type SetBannedNumberOutput struct {
	// Applied indicates the game existed and the value was drawn
	Applied bool

	// Value is the new banned value
	Value int

	// State is the game state after the draw
	State *models.PigState
}

// LeaveInput contains parameters for removing a player from the game
type LeaveInput struct {
	RoomID string
	ConnID string
}

// LeaveOutput contains the result of removing a player
type LeaveOutput struct {
	// Removed indicates the player was in the game and is now gone
	Removed bool

	// RoomClosed indicates the last player left and the room was torn down
	RoomClosed bool

	// State is the game state after the removal, nil when the room closed
	State *models.PigState
}

// ResetInput contains parameters for resetting a room's game
type ResetInput struct {
	RoomID string
}

// ResetOutput contains the result of a reset
type ResetOutput struct {
	// State is the fresh game state
	State *models.PigState
}

// GetStateInput contains parameters for reading a room's game state
type GetStateInput struct {
	RoomID string
}

// GetStateOutput contains the result of reading game state
type GetStateOutput struct {
	// State is the current game state, nil if the room has none
	State *models.PigState
}
