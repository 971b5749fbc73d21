package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType identifies a client-to-server command
type CommandType string

const (
	CommandJoinRoom        CommandType = "join_room"
	CommandChatMessage     CommandType = "chat_message"
	CommandRollDie         CommandType = "roll_die"
	CommandBankScore       CommandType = "bank_score"
	CommandSetBannedNumber CommandType = "set_banned_number"
	CommandStartGame       CommandType = "start_game"
	CommandResetGame       CommandType = "reset_game"
	CommandRestartGame     CommandType = "restart_game"
	CommandKickPlayer      CommandType = "kick_player"
	CommandBanPlayer       CommandType = "ban_player"
)

// ErrEmptyCommand is returned when a frame has no command type
var ErrEmptyCommand = errors.New("command type cannot be empty")

// Command is a single client-to-server frame
type Command struct {
	Type CommandType `json:"type"`

	// RoomID is the room the command applies to
	RoomID string `json:"roomId,omitempty"`

	// PlayerName is the display name, set on join
	PlayerName string `json:"playerName,omitempty"`

	// GameID selects the game a room plays, set on join
	GameID string `json:"gameId,omitempty"`

	// Message is the chat text for chat commands
	Message string `json:"message,omitempty"`

	// TargetConnID is the connection a kick or ban applies to
	TargetConnID string `json:"targetId,omitempty"`
}

// ParseCommand decodes a raw client frame
func ParseCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}

	if cmd.Type == "" {
		return nil, ErrEmptyCommand
	}

	return &cmd, nil
}
