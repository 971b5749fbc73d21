package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/pigparty/server/internal/services/room"
	"github.com/pigparty/server/internal/tasks"
)

// PresenceFinalizeHandler runs the deferred removal of a disconnected
// player once the grace period elapses
type PresenceFinalizeHandler struct {
	roomService room.Service
	log         *logrus.Entry
}

// NewPresenceFinalizeHandler creates a handler for presence finalize tasks
func NewPresenceFinalizeHandler(roomService room.Service, logger *logrus.Logger) (*PresenceFinalizeHandler, error) {
	if roomService == nil {
		return nil, ErrNilRoomService
	}

	if logger == nil {
		return nil, ErrNilLogger
	}

	return &PresenceFinalizeHandler{
		roomService: roomService,
		log:         logger.WithField("component", "presence_finalize"),
	}, nil
}

// ProcessTask implements asynq.Handler. The removal decision is made from
// the presence record as it is now, not as it was at disconnect time: a
// player who reconnected in the meantime is left alone.
func (h *PresenceFinalizeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.PresenceFinalizePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log := h.log.WithFields(logrus.Fields{
		"room_id": payload.RoomID,
		"conn_id": payload.ConnID,
	})

	output, err := h.roomService.FinalizeDisconnect(ctx, &room.FinalizeDisconnectInput{
		RoomID: payload.RoomID,
		ConnID: payload.ConnID,
	})
	if err != nil {
		log.WithError(err).Error("failed to finalize disconnect")
		return err
	}

	if output.Removed {
		log.WithField("room_closed", output.RoomClosed).Info("removed disconnected player")
	}

	return nil
}
