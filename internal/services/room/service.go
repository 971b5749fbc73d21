package room

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/common/clock"
	"github.com/pigparty/server/internal/models"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	config        *Config
	roomRepo      roomRepo.Repository
	gameStateRepo gamestateRepo.Repository
	broadcaster   broadcaster.Broadcaster
	scheduler     Scheduler
	clock         clock.Clock
}

// NewService creates a new room service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	if cfg.GameStateRepo == nil {
		return nil, ErrNilGameStateRepo
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	// Set default values if not provided
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = 6
	}

	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 2 * time.Minute
	}

	if cfg.ChatHistoryLimit <= 0 {
		cfg.ChatHistoryLimit = 100
	}

	return &service{
		config:        cfg,
		roomRepo:      cfg.RoomRepo,
		gameStateRepo: cfg.GameStateRepo,
		broadcaster:   cfg.Broadcaster,
		scheduler:     cfg.Scheduler,
		clock:         cfg.Clock,
	}, nil
}

// publish marshals a payload and fans it out on the room's channel
func (s *service) publish(ctx context.Context, roomID, eventType string, payload any) error {
	event, err := broadcaster.NewEvent(eventType, payload)
	if err != nil {
		return err
	}

	return s.broadcaster.Publish(ctx, roomID, event)
}

// Join admits a connection into a room
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" || input.PlayerName == "" {
		return nil, errors.New("input, room ID, connection ID and player name cannot be empty")
	}

	// Resolve which game the room plays: the first joiner names it, later
	// joiners inherit it
	gameID := input.GameID
	if gameID != "" {
		err := s.roomRepo.SetGameID(ctx, &roomRepo.SetGameIDInput{
			RoomID: input.RoomID,
			GameID: gameID,
		})
		if err != nil {
			return nil, err
		}
	} else {
		stored, err := s.roomRepo.GetGameID(ctx, &roomRepo.GetGameIDInput{RoomID: input.RoomID})
		if err != nil {
			return nil, err
		}
		gameID = stored
	}

	members, err := s.roomRepo.GetMembers(ctx, &roomRepo.GetMembersInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	// A member with the same display name under a different connection ID
	// is this player reconnecting; drop the stale entry
	reconnected := false
	for connID, name := range members {
		if name == input.PlayerName && connID != input.ConnID {
			err = s.roomRepo.RemoveMember(ctx, &roomRepo.RemoveMemberInput{
				RoomID: input.RoomID,
				ConnID: connID,
			})
			if err != nil {
				return nil, err
			}

			err = s.roomRepo.RemoveStatus(ctx, &roomRepo.RemoveStatusInput{
				RoomID: input.RoomID,
				ConnID: connID,
			})
			if err != nil {
				return nil, err
			}

			delete(members, connID)
			reconnected = true
		}
	}

	if _, ok := members[input.ConnID]; ok {
		reconnected = true
	}

	// Reconnections never count against capacity
	if !reconnected && len(members) >= s.config.MaxPlayers {
		return nil, ErrRoomFull
	}

	now := s.clock.Now()

	err = s.roomRepo.SaveStatus(ctx, &roomRepo.SaveStatusInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
		Status: &models.PlayerStatus{
			Name:     input.PlayerName,
			LastSeen: now.UnixMilli(),
			IsOnline: true,
		},
	})
	if err != nil {
		return nil, err
	}

	err = s.roomRepo.SaveMember(ctx, &roomRepo.SaveMemberInput{
		RoomID:     input.RoomID,
		ConnID:     input.ConnID,
		PlayerName: input.PlayerName,
		JoinedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	members[input.ConnID] = input.PlayerName

	chatHistory, err := s.roomRepo.GetChat(ctx, &roomRepo.GetChatInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	statuses, err := s.roomRepo.GetStatuses(ctx, &roomRepo.GetStatusesInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventPlayerStatusUpdate, statuses); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventRoomPlayers, members); err != nil {
		return nil, err
	}

	err = s.publish(ctx, input.RoomID, broadcaster.EventUserJoined, &broadcaster.UserJoinedPayload{
		ConnID:     input.ConnID,
		PlayerName: input.PlayerName,
	})
	if err != nil {
		return nil, err
	}

	// A reconnection may have removed the stale leader entry
	if err := s.reelectLeader(ctx, input.RoomID); err != nil {
		return nil, err
	}

	return &JoinOutput{
		Reconnected: reconnected,
		GameID:      gameID,
		Members:     members,
		Statuses:    statuses,
		ChatHistory: chatHistory,
	}, nil
}

// Chat appends a message to the room's history and fans it out. Empty or
// whitespace-only messages, and messages from connections that are not
// members, are dropped without an error.
func (s *service) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	if strings.TrimSpace(input.Message) == "" {
		return &ChatOutput{Dropped: true}, nil
	}

	// The sender's name comes from membership, not the frame
	member, err := s.roomRepo.GetMember(ctx, &roomRepo.GetMemberInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrMemberNotFound) {
			return &ChatOutput{Dropped: true}, nil
		}
		return nil, err
	}

	message := &models.ChatMessage{
		PlayerName: member.PlayerName,
		Message:    input.Message,
		Timestamp:  s.clock.Now(),
	}

	err = s.roomRepo.AppendChat(ctx, &roomRepo.AppendChatInput{
		RoomID:  input.RoomID,
		Message: message,
		Limit:   s.config.ChatHistoryLimit,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventChatMessage, message); err != nil {
		return nil, err
	}

	return &ChatOutput{Message: message}, nil
}

// Disconnect marks a connection offline in each of its rooms and schedules
// the grace-period finalize. A room whose membership is already empty is
// torn down immediately.
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
	if input == nil || input.ConnID == "" {
		return nil, errors.New("input and connection ID cannot be empty")
	}

	output := &DisconnectOutput{}

	for _, roomID := range input.RoomIDs {
		members, err := s.roomRepo.GetMembers(ctx, &roomRepo.GetMembersInput{RoomID: roomID})
		if err != nil {
			return nil, err
		}

		if len(members) == 0 {
			if err := s.teardown(ctx, roomID); err != nil {
				return nil, err
			}
			output.ClosedRooms = append(output.ClosedRooms, roomID)
			continue
		}

		err = s.roomRepo.SaveStatus(ctx, &roomRepo.SaveStatusInput{
			RoomID: roomID,
			ConnID: input.ConnID,
			Status: &models.PlayerStatus{
				Name:     members[input.ConnID],
				LastSeen: s.clock.Now().UnixMilli(),
				IsOnline: false,
			},
		})
		if err != nil {
			return nil, err
		}

		statuses, err := s.roomRepo.GetStatuses(ctx, &roomRepo.GetStatusesInput{RoomID: roomID})
		if err != nil {
			return nil, err
		}

		if err := s.publish(ctx, roomID, broadcaster.EventPlayerStatusUpdate, statuses); err != nil {
			return nil, err
		}

		err = s.scheduler.ScheduleFinalize(ctx, roomID, input.ConnID, s.config.GracePeriod)
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// FinalizeDisconnect runs after the grace period. It re-reads the presence
// record and only removes the player if they are still offline past the
// grace period; a reconnection makes the task a no-op.
func (s *service) FinalizeDisconnect(ctx context.Context, input *FinalizeDisconnectInput) (*FinalizeDisconnectOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	status, err := s.roomRepo.GetStatus(ctx, &roomRepo.GetStatusInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrStatusNotFound) {
			// Already cleaned up, or reconnected under a new connection ID
			return &FinalizeDisconnectOutput{}, nil
		}
		return nil, err
	}

	if status.IsOnline {
		return &FinalizeDisconnectOutput{}, nil
	}

	elapsed := s.clock.Now().UnixMilli() - status.LastSeen
	if elapsed < s.config.GracePeriod.Milliseconds() {
		return &FinalizeDisconnectOutput{}, nil
	}

	err = s.roomRepo.RemoveMember(ctx, &roomRepo.RemoveMemberInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		return nil, err
	}

	err = s.roomRepo.RemoveStatus(ctx, &roomRepo.RemoveStatusInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		return nil, err
	}

	members, err := s.roomRepo.GetMembers(ctx, &roomRepo.GetMembersInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		if err := s.teardown(ctx, input.RoomID); err != nil {
			return nil, err
		}
		return &FinalizeDisconnectOutput{Removed: true, RoomClosed: true}, nil
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventRoomPlayers, members); err != nil {
		return nil, err
	}

	if err := s.reelectLeader(ctx, input.RoomID); err != nil {
		return nil, err
	}

	return &FinalizeDisconnectOutput{Removed: true}, nil
}

// Kick removes a member immediately, with no grace period
func (s *service) Kick(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	return s.removeNow(ctx, input, broadcaster.EventPlayerKicked)
}

// Ban removes a member immediately, with no grace period
func (s *service) Ban(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	return s.removeNow(ctx, input, broadcaster.EventPlayerBanned)
}

func (s *service) removeNow(ctx context.Context, input *RemoveInput, eventType string) (*RemoveOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	err := s.roomRepo.RemoveMember(ctx, &roomRepo.RemoveMemberInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		return nil, err
	}

	err = s.roomRepo.RemoveStatus(ctx, &roomRepo.RemoveStatusInput{
		RoomID: input.RoomID,
		ConnID: input.ConnID,
	})
	if err != nil {
		return nil, err
	}

	err = s.publish(ctx, input.RoomID, eventType, &broadcaster.PlayerRemovedPayload{
		ConnID: input.ConnID,
	})
	if err != nil {
		return nil, err
	}

	members, err := s.roomRepo.GetMembers(ctx, &roomRepo.GetMembersInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		if err := s.teardown(ctx, input.RoomID); err != nil {
			return nil, err
		}
		return &RemoveOutput{RoomClosed: true}, nil
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventRoomPlayers, members); err != nil {
		return nil, err
	}

	if err := s.reelectLeader(ctx, input.RoomID); err != nil {
		return nil, err
	}

	return &RemoveOutput{}, nil
}

// HasPlayers reports whether a room has at least one member
func (s *service) HasPlayers(ctx context.Context, input *HasPlayersInput) (bool, error) {
	if input == nil || input.RoomID == "" {
		return false, errors.New("input and room ID cannot be empty")
	}

	return s.roomRepo.HasMembers(ctx, &roomRepo.HasMembersInput{RoomID: input.RoomID})
}

// teardown deletes every key belonging to a room and broadcasts that the
// room is closed
func (s *service) teardown(ctx context.Context, roomID string) error {
	err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomID: roomID})
	if err != nil {
		return err
	}

	err = s.gameStateRepo.Delete(ctx, &gamestateRepo.DeleteInput{RoomID: roomID})
	if err != nil {
		return err
	}

	return s.publish(ctx, roomID, broadcaster.EventRoomClosed, nil)
}
