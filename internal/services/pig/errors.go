package pig

import "errors"

// Define errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilGameStateRepo = errors.New("game state repository cannot be nil")
	ErrNilRoomRepo      = errors.New("room repository cannot be nil")
	ErrNilBroadcaster   = errors.New("broadcaster cannot be nil")
	ErrNilDiceRoller    = errors.New("dice roller cannot be nil")

	// ErrConcurrentUpdate is returned when repeated optimistic saves keep
	// losing to concurrent writers
	ErrConcurrentUpdate = errors.New("game state kept changing concurrently")
)
