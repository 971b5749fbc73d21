package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// ErrNilClient is returned when the scheduler is created without a client
var ErrNilClient = errors.New("asynq client cannot be nil")

// Scheduler enqueues delayed tasks through Redis so they fire even if the
// process that scheduled them is gone. It satisfies the room service's
// Scheduler dependency.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler creates a scheduler backed by an asynq client
func NewScheduler(client *asynq.Client) (*Scheduler, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	return &Scheduler{client: client}, nil
}

// ScheduleFinalize enqueues a presence finalize task to fire after delay
func (s *Scheduler) ScheduleFinalize(ctx context.Context, roomID, connID string, delay time.Duration) error {
	task, err := NewPresenceFinalizeTask(roomID, connID)
	if err != nil {
		return err
	}

	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return fmt.Errorf("failed to enqueue presence finalize task: %w", err)
	}

	return nil
}
