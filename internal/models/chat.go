package models

import (
	"time"
)

// ChatMessage is a single chat entry in a room's capped history
type ChatMessage struct {
	// PlayerName is the display name of the author
	PlayerName string `json:"playerName"`

	// Message is the chat text
	Message string `json:"message"`

	// Timestamp is when the message was accepted
	Timestamp time.Time `json:"timestamp"`
}
