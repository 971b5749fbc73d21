package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/common/clock"
	"github.com/pigparty/server/internal/dice"
	"github.com/pigparty/server/internal/handlers/ws"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
	pigService "github.com/pigparty/server/internal/services/pig"
	roomService "github.com/pigparty/server/internal/services/room"
	"github.com/pigparty/server/internal/tasks"
	"github.com/pigparty/server/internal/worker"
)

func main() {
	// A missing .env file is fine, the environment may be set directly
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	// Initialize repositories
	rooms, err := roomRepo.NewRedis(&roomRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create room repository")
	}

	gameStates, err := gamestateRepo.NewRedis(&gamestateRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create game state repository")
	}

	// Initialize the cross-instance event fanout
	fanout, err := broadcaster.NewRedis(&broadcaster.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create broadcaster")
	}

	// Initialize the deferred task scheduler
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	scheduler, err := tasks.NewScheduler(asynqClient)
	if err != nil {
		logger.WithError(err).Fatal("failed to create scheduler")
	}

	// Initialize services
	roomSvc, err := roomService.NewService(&roomService.Config{
		MaxPlayers:       getEnvInt("MAX_PLAYERS", 6),
		GracePeriod:      getEnvDuration("DISCONNECT_GRACE_PERIOD", 2*time.Minute),
		ChatHistoryLimit: int64(getEnvInt("CHAT_HISTORY_LIMIT", 100)),
		RoomRepo:         rooms,
		GameStateRepo:    gameStates,
		Broadcaster:      fanout,
		Scheduler:        scheduler,
		Clock:            &clock.DefaultClock{},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create room service")
	}

	pigSvc, err := pigService.NewService(&pigService.Config{
		WinningScore:  getEnvInt("WINNING_SCORE", 50),
		DieSides:      getEnvInt("DIE_SIDES", 6),
		GameStateRepo: gameStates,
		RoomRepo:      rooms,
		Broadcaster:   fanout,
		DiceRoller:    dice.New(&dice.Config{}),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create pig service")
	}

	// Initialize the websocket gateway
	hub, err := ws.NewHub(fanout, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create hub")
	}

	wsHandler, err := ws.NewHandler(&ws.Config{
		RoomService: roomSvc,
		PigService:  pigSvc,
		Broadcaster: fanout,
		Hub:         hub,
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create websocket handler")
	}

	// Start the task worker; it consumes the grace-period finalize tasks
	// this and every other instance enqueues
	workerSrv, err := worker.NewServer(&worker.Config{
		RedisOpt:    redisOpt,
		RoomService: roomSvc,
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create worker server")
	}

	go func() {
		if err := workerSrv.Start(); err != nil {
			logger.WithError(err).Fatal("worker server failed")
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", wsHandler)
	mux.HandleFunc("/rooms/", roomProbe(roomSvc))

	httpSrv := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: mux,
	}

	go func() {
		logger.WithField("addr", httpSrv.Addr).Info("server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("failed to shut down http server")
	}

	workerSrv.Shutdown()

	logger.Info("server has been shut down")
}

// roomProbe reports whether a room currently has members, so clients can
// validate a room code before opening a websocket
func roomProbe(svc roomService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		roomID := strings.TrimPrefix(r.URL.Path, "/rooms/")
		if roomID == "" || strings.Contains(roomID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		exists, err := svc.HasPlayers(r.Context(), &roomService.HasPlayersInput{RoomID: roomID})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration gets a duration environment variable or returns a default
// value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
