package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pigparty/server/internal/models"
)

// ErrStateNotFound is returned when a room has no game state
var ErrStateNotFound = errors.New("game state not found")

// ErrVersionMismatch is returned when CompareAndSave loses a race: the
// stored version no longer matches what the caller read
var ErrVersionMismatch = errors.New("game state version mismatch")

// Config holds configuration for the Redis game state repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game state repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func stateKey(roomID string) string {
	return fmt.Sprintf("game:state:%s", roomID)
}

// Get retrieves a room's game state
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.PigState, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	stateJSON, err := r.client.Get(ctx, stateKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	var state models.PigState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return &state, nil
}

// Save persists a room's game state unconditionally (last write wins)
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil || input.RoomID == "" || input.State == nil {
		return errors.New("input, room ID and state cannot be empty")
	}

	stateJSON, err := json.Marshal(input.State)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	if err := r.client.Set(ctx, stateKey(input.RoomID), stateJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}

	return nil
}

// CompareAndSave persists a room's game state only if the stored version
// still matches ExpectedVersion. An absent key counts as version 0. The
// check-and-set runs under WATCH so a concurrent writer aborts the
// transaction instead of being silently overwritten.
func (r *redisRepository) CompareAndSave(ctx context.Context, input *CompareAndSaveInput) error {
	if input == nil || input.RoomID == "" || input.State == nil {
		return errors.New("input, room ID and state cannot be empty")
	}

	key := stateKey(input.RoomID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		var storedVersion int64

		stateJSON, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			storedVersion = 0
		case err != nil:
			return fmt.Errorf("failed to get game state: %w", err)
		default:
			var stored models.PigState
			if unmarshalErr := json.Unmarshal([]byte(stateJSON), &stored); unmarshalErr == nil {
				storedVersion = stored.Version
			}
		}

		if storedVersion != input.ExpectedVersion {
			return ErrVersionMismatch
		}

		input.State.Version = input.ExpectedVersion + 1

		newJSON, err := json.Marshal(input.State)
		if err != nil {
			return fmt.Errorf("failed to marshal game state: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newJSON, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrVersionMismatch
	}

	return err
}

// Delete removes a room's game state. Deleting absent state is not an error.
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	if err := r.client.Del(ctx, stateKey(input.RoomID)).Err(); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}

	return nil
}
