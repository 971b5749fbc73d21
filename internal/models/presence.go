package models

// PlayerStatus tracks a player's online/offline state within a room
type PlayerStatus struct {
	// ID is the connection ID the status belongs to. It is the hash field
	// the status is stored under and is filled in on reads, not persisted.
	ID string `json:"id,omitempty"`

	// Name is the display name the player joined with
	Name string `json:"name"`

	// LastSeen is the last activity timestamp in Unix milliseconds
	LastSeen int64 `json:"lastSeen"`

	// IsOnline reports whether the connection is currently attached
	IsOnline bool `json:"isOnline"`
}
