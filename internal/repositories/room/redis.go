package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pigparty/server/internal/models"
)

// ErrMemberNotFound is returned when a connection is not in a room's membership
var ErrMemberNotFound = errors.New("member not found")

// ErrStatusNotFound is returned when a connection has no presence record
var ErrStatusNotFound = errors.New("status not found")

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
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

func playersKey(roomID string) string {
	return fmt.Sprintf("room:%s:players", roomID)
}

func joinedKey(roomID string) string {
	return fmt.Sprintf("room:%s:joined", roomID)
}

func statusKey(roomID string) string {
	return fmt.Sprintf("room:%s:status", roomID)
}

func chatKey(roomID string) string {
	return fmt.Sprintf("room:%s:chat", roomID)
}

func gameKey(roomID string) string {
	return fmt.Sprintf("room:%s:game", roomID)
}

// SaveMember registers a connection in a room's membership and records its
// join order for leader election
func (r *redisRepository) SaveMember(ctx context.Context, input *SaveMemberInput) error {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return errors.New("input, room ID and connection ID cannot be empty")
	}

	pipe := r.client.Pipeline()

	pipe.HSet(ctx, playersKey(input.RoomID), input.ConnID, input.PlayerName)
	pipe.ZAdd(ctx, joinedKey(input.RoomID), redis.Z{
		Score:  float64(input.JoinedAt.UnixNano()),
		Member: input.ConnID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}

	return nil
}

// GetMember retrieves the display name a connection joined with
func (r *redisRepository) GetMember(ctx context.Context, input *GetMemberInput) (*GetMemberOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	name, err := r.client.HGet(ctx, playersKey(input.RoomID), input.ConnID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &GetMemberOutput{PlayerName: name}, nil
}

// GetMembers retrieves a room's full membership
func (r *redisRepository) GetMembers(ctx context.Context, input *GetMembersInput) (map[string]string, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	members, err := r.client.HGetAll(ctx, playersKey(input.RoomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	return members, nil
}

// RemoveMember removes a connection from membership and the join-order index
func (r *redisRepository) RemoveMember(ctx context.Context, input *RemoveMemberInput) error {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return errors.New("input, room ID and connection ID cannot be empty")
	}

	pipe := r.client.Pipeline()

	pipe.HDel(ctx, playersKey(input.RoomID), input.ConnID)
	pipe.ZRem(ctx, joinedKey(input.RoomID), input.ConnID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// MembersInJoinOrder returns connection IDs ordered by join time. Entries in
// the index whose membership was removed out of band are filtered out.
func (r *redisRepository) MembersInJoinOrder(ctx context.Context, input *MembersInJoinOrderInput) ([]string, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	ordered, err := r.client.ZRange(ctx, joinedKey(input.RoomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get join order: %w", err)
	}

	if len(ordered) == 0 {
		return []string{}, nil
	}

	members, err := r.client.HGetAll(ctx, playersKey(input.RoomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	current := make([]string, 0, len(ordered))
	for _, connID := range ordered {
		if _, ok := members[connID]; ok {
			current = append(current, connID)
		}
	}

	return current, nil
}

// HasMembers reports whether a room has at least one member
func (r *redisRepository) HasMembers(ctx context.Context, input *HasMembersInput) (bool, error) {
	if input == nil || input.RoomID == "" {
		return false, errors.New("input and room ID cannot be empty")
	}

	count, err := r.client.HLen(ctx, playersKey(input.RoomID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count members: %w", err)
	}

	return count > 0, nil
}

// SaveStatus upserts a connection's presence record
func (r *redisRepository) SaveStatus(ctx context.Context, input *SaveStatusInput) error {
	if input == nil || input.RoomID == "" || input.ConnID == "" || input.Status == nil {
		return errors.New("input, room ID, connection ID and status cannot be empty")
	}

	statusJSON, err := json.Marshal(input.Status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	if err := r.client.HSet(ctx, statusKey(input.RoomID), input.ConnID, statusJSON).Err(); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}

	return nil
}

// GetStatus retrieves a single connection's presence record
func (r *redisRepository) GetStatus(ctx context.Context, input *GetStatusInput) (*models.PlayerStatus, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	statusJSON, err := r.client.HGet(ctx, statusKey(input.RoomID), input.ConnID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	var status models.PlayerStatus
	if err := json.Unmarshal([]byte(statusJSON), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	status.ID = input.ConnID

	return &status, nil
}

// GetStatuses retrieves every presence record in a room. Records that fail
// to parse degrade to an offline entry with an unknown name rather than
// failing the read.
func (r *redisRepository) GetStatuses(ctx context.Context, input *GetStatusesInput) ([]*models.PlayerStatus, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	entries, err := r.client.HGetAll(ctx, statusKey(input.RoomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get statuses: %w", err)
	}

	statuses := make([]*models.PlayerStatus, 0, len(entries))
	for connID, statusJSON := range entries {
		var status models.PlayerStatus
		if err := json.Unmarshal([]byte(statusJSON), &status); err != nil {
			statuses = append(statuses, &models.PlayerStatus{
				ID:   connID,
				Name: "Unknown",
			})
			continue
		}

		status.ID = connID
		statuses = append(statuses, &status)
	}

	return statuses, nil
}

// RemoveStatus deletes a connection's presence record
func (r *redisRepository) RemoveStatus(ctx context.Context, input *RemoveStatusInput) error {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return errors.New("input, room ID and connection ID cannot be empty")
	}

	if err := r.client.HDel(ctx, statusKey(input.RoomID), input.ConnID).Err(); err != nil {
		return fmt.Errorf("failed to remove status: %w", err)
	}

	return nil
}

// AppendChat appends a message and trims the history to the given limit
func (r *redisRepository) AppendChat(ctx context.Context, input *AppendChatInput) error {
	if input == nil || input.RoomID == "" || input.Message == nil {
		return errors.New("input, room ID and message cannot be empty")
	}

	if input.Limit <= 0 {
		return errors.New("chat history limit must be positive")
	}

	messageJSON, err := json.Marshal(input.Message)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.RPush(ctx, chatKey(input.RoomID), messageJSON)
	pipe.LTrim(ctx, chatKey(input.RoomID), -input.Limit, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	return nil
}

// GetChat retrieves a room's chat history, oldest first. Malformed entries
// are skipped.
func (r *redisRepository) GetChat(ctx context.Context, input *GetChatInput) ([]*models.ChatMessage, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	entries, err := r.client.LRange(ctx, chatKey(input.RoomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	messages := make([]*models.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		var message models.ChatMessage
		if err := json.Unmarshal([]byte(entry), &message); err != nil {
			continue
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

// SetGameID records which game the room is playing
func (r *redisRepository) SetGameID(ctx context.Context, input *SetGameIDInput) error {
	if input == nil || input.RoomID == "" || input.GameID == "" {
		return errors.New("input, room ID and game ID cannot be empty")
	}

	if err := r.client.Set(ctx, gameKey(input.RoomID), input.GameID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game ID: %w", err)
	}

	return nil
}

// GetGameID retrieves which game the room is playing, empty if unset
func (r *redisRepository) GetGameID(ctx context.Context, input *GetGameIDInput) (string, error) {
	if input == nil || input.RoomID == "" {
		return "", errors.New("input and room ID cannot be empty")
	}

	gameID, err := r.client.Get(ctx, gameKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to get game ID: %w", err)
	}

	return gameID, nil
}

// DeleteRoom removes every room-scoped key
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	pipe := r.client.Pipeline()

	pipe.Del(ctx, playersKey(input.RoomID))
	pipe.Del(ctx, joinedKey(input.RoomID))
	pipe.Del(ctx, statusKey(input.RoomID))
	pipe.Del(ctx, chatKey(input.RoomID))
	pipe.Del(ctx, gameKey(input.RoomID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}
