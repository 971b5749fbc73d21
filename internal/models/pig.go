package models

// PigPlayer is a single participant in a pig game
type PigPlayer struct {
	// ID is the connection ID of the player
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// FrozenScore is the banked, permanent score
	FrozenScore int `json:"frozenScore"`

	// TempScore is the pending score accumulated since the last bank or bust
	TempScore int `json:"tempScore"`
}

// PigState is the full state of a room's pig game
type PigState struct {
	// Players in join order
	Players []*PigPlayer `json:"players"`

	// ActivePlayerIndex is the index of the player whose turn it is
	ActivePlayerIndex int `json:"activePlayerIndex"`

	// DieValue is the most recently rolled value
	DieValue int `json:"dieValue"`

	// BannedValue is the value that busts the active player's turn
	BannedValue int `json:"bannedValue"`

	// Winner is the display name of the winning player, nil while the
	// game is still in progress
	Winner *string `json:"winner"`

	// Started reports whether the game has begun accepting rolls
	Started bool `json:"started"`

	// LeaderID is the connection ID of the room leader
	LeaderID string `json:"leaderId"`

	// Version is a monotonic stamp used for optimistic concurrency on
	// read-modify-write cycles. Managed by the repository.
	Version int64 `json:"version"`
}

// NewPigState returns the initial state a room's game starts from
func NewPigState() *PigState {
	return &PigState{
		Players:           []*PigPlayer{},
		ActivePlayerIndex: 0,
		DieValue:          1,
		BannedValue:       1,
		Winner:            nil,
		Started:           false,
	}
}

// ActivePlayer returns the player whose turn it is, or nil if there are
// no players
func (s *PigState) ActivePlayer() *PigPlayer {
	if len(s.Players) == 0 {
		return nil
	}

	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}

	return s.Players[s.ActivePlayerIndex]
}

// FindPlayer returns the player with the given connection ID, or nil
func (s *PigState) FindPlayer(connID string) *PigPlayer {
	for _, p := range s.Players {
		if p.ID == connID {
			return p
		}
	}

	return nil
}

// AdvanceTurn moves the active player index forward by one position,
// wrapping around the player list
func (s *PigState) AdvanceTurn() {
	if len(s.Players) == 0 {
		s.ActivePlayerIndex = 0
		return
	}

	s.ActivePlayerIndex = (s.ActivePlayerIndex + 1) % len(s.Players)
}
