package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected *Command
		wantErr  bool
	}{
		{
			name: "join command",
			raw:  `{"type":"join_room","roomId":"room-1","playerName":"Alice","gameId":"pig"}`,
			expected: &Command{
				Type:       CommandJoinRoom,
				RoomID:     "room-1",
				PlayerName: "Alice",
				GameID:     "pig",
			},
		},
		{
			name: "chat command",
			raw:  `{"type":"chat_message","roomId":"room-1","message":"hello"}`,
			expected: &Command{
				Type:    CommandChatMessage,
				RoomID:  "room-1",
				Message: "hello",
			},
		},
		{
			name: "kick command",
			raw:  `{"type":"kick_player","roomId":"room-1","targetId":"conn-2"}`,
			expected: &Command{
				Type:         CommandKickPlayer,
				RoomID:       "room-1",
				TargetConnID: "conn-2",
			},
		},
		{
			name:    "not json",
			raw:     "roll the die",
			wantErr: true,
		},
		{
			name:    "missing type",
			raw:     `{"roomId":"room-1"}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := ParseCommand([]byte(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}
