package room

import "errors"

// Define errors
var (
	// ErrRoomFull is returned when a join would exceed the room's player cap
	ErrRoomFull = errors.New("room is at maximum capacity")

	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilRoomRepo      = errors.New("room repository cannot be nil")
	ErrNilGameStateRepo = errors.New("game state repository cannot be nil")
	ErrNilBroadcaster   = errors.New("broadcaster cannot be nil")
	ErrNilScheduler     = errors.New("scheduler cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
)
