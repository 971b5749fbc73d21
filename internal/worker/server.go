package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/pigparty/server/internal/services/room"
	"github.com/pigparty/server/internal/tasks"
)

var (
	// ErrNilConfig is returned when the server is created with a nil config
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilRoomService is returned when the room service is nil
	ErrNilRoomService = errors.New("room service cannot be nil")

	// ErrNilLogger is returned when the logger is nil
	ErrNilLogger = errors.New("logger cannot be nil")
)

// Config holds configuration for the task worker server
type Config struct {
	// RedisOpt connects the worker to the same Redis the scheduler
	// enqueues into
	RedisOpt asynq.RedisClientOpt

	// Concurrency is the number of tasks processed in parallel
	Concurrency int

	// Service dependencies
	RoomService room.Service
	Logger      *logrus.Logger
}

// Server consumes deferred tasks from Redis. Any instance may pick up a task
// enqueued by any other instance.
type Server struct {
	server      *asynq.Server
	log         *logrus.Entry
	roomService room.Service
	logger      *logrus.Logger
}

// NewServer creates a new task worker server
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomService == nil {
		return nil, ErrNilRoomService
	}

	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}

	log := cfg.Logger.WithField("component", "worker")

	server := asynq.NewServer(
		cfg.RedisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.WithFields(logrus.Fields{
					"task_type": task.Type(),
				}).WithError(err).Error("task failed")
			}),
		},
	)

	return &Server{
		server:      server,
		log:         log,
		roomService: cfg.RoomService,
		logger:      cfg.Logger,
	}, nil
}

// Start registers the task handlers and runs the worker loop. It blocks
// until Shutdown is called.
func (s *Server) Start() error {
	mux := asynq.NewServeMux()

	finalizeHandler, err := NewPresenceFinalizeHandler(s.roomService, s.logger)
	if err != nil {
		return err
	}
	mux.HandleFunc(tasks.TypePresenceFinalize, finalizeHandler.ProcessTask)

	s.log.Info("worker server starting")

	if err := s.server.Run(mux); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops the worker, waiting for in-flight tasks to finish
func (s *Server) Shutdown() {
	s.log.Info("worker server shutting down")
	s.server.Shutdown()
}
