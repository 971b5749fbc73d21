package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names, shared between the enqueueing side and the worker
const (
	// TypePresenceFinalize is the deferred removal of a disconnected player
	// after the grace period
	TypePresenceFinalize = "presence:finalize"
)

// PresenceFinalizePayload identifies the player a finalize task applies to
type PresenceFinalizePayload struct {
	RoomID string `json:"room_id"`
	ConnID string `json:"conn_id"`
}

// NewPresenceFinalizeTask builds a presence finalize task. The task is never
// retried: the handler re-validates presence at fire time, and a failed run
// leaves the player in the room rather than risking a double removal.
func NewPresenceFinalizeTask(roomID, connID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PresenceFinalizePayload{
		RoomID: roomID,
		ConnID: connID,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypePresenceFinalize, payload, asynq.MaxRetry(0)), nil
}
