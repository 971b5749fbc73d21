package pig

import (
	"context"
	"errors"

	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/dice"
	"github.com/pigparty/server/internal/models"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	config        *Config
	gameStateRepo gamestateRepo.Repository
	roomRepo      roomRepo.Repository
	broadcaster   broadcaster.Broadcaster
	diceRoller    dice.Roller
}

// NewService creates a new pig game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameStateRepo == nil {
		return nil, ErrNilGameStateRepo
	}

	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	// Set default values if not provided
	if cfg.WinningScore <= 0 {
		cfg.WinningScore = 50
	}

	if cfg.DieSides <= 0 {
		cfg.DieSides = 6
	}

	if cfg.MaxSaveRetries <= 0 {
		cfg.MaxSaveRetries = 3
	}

	return &service{
		config:        cfg,
		gameStateRepo: cfg.GameStateRepo,
		roomRepo:      cfg.RoomRepo,
		broadcaster:   cfg.Broadcaster,
		diceRoller:    cfg.DiceRoller,
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

// mutate runs a read-modify-write cycle under optimistic concurrency: it
// re-reads the state and re-applies fn until the versioned save succeeds.
// fn returns false to reject the mutation (a policy no-op, not an error).
// When the state is absent and createIfAbsent is false, mutate reports a
// rejected mutation with a nil state.
func (s *service) mutate(ctx context.Context, roomID string, createIfAbsent bool, fn func(state *models.PigState) bool) (*models.PigState, bool, error) {
	for attempt := 0; attempt < s.config.MaxSaveRetries; attempt++ {
		state, err := s.gameStateRepo.Get(ctx, &gamestateRepo.GetInput{RoomID: roomID})
		if err != nil {
			if !errors.Is(err, gamestateRepo.ErrStateNotFound) {
				return nil, false, err
			}
			if !createIfAbsent {
				return nil, false, nil
			}
			state = models.NewPigState()
		}

		if !fn(state) {
			return state, false, nil
		}

		err = s.gameStateRepo.CompareAndSave(ctx, &gamestateRepo.CompareAndSaveInput{
			RoomID:          roomID,
			State:           state,
			ExpectedVersion: state.Version,
		})
		if err == nil {
			return state, true, nil
		}
		if !errors.Is(err, gamestateRepo.ErrVersionMismatch) {
			return nil, false, err
		}
	}

	return nil, false, ErrConcurrentUpdate
}

// Join adds a player to a room's game, creating the game on first join.
// The game starts accepting rolls as soon as one player is present.
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	name := input.PlayerName
	if name == "" {
		name = "Player"
	}

	state, _, err := s.mutate(ctx, input.RoomID, true, func(state *models.PigState) bool {
		if state.FindPlayer(input.ConnID) == nil {
			state.Players = append(state.Players, &models.PigPlayer{
				ID:   input.ConnID,
				Name: name,
			})
		}

		if state.LeaderID == "" {
			state.LeaderID = input.ConnID
		}

		if !state.Started && len(state.Players) >= 1 {
			state.Started = true
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventGameUpdate, state); err != nil {
		return nil, err
	}

	return &JoinOutput{State: state}, nil
}

// Roll performs a die roll for the active player. Rolling the banned value
// busts: the pending score resets and the turn advances.
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	// The die is drawn once the guards pass, and only once: if the save
	// races, the retry re-applies the same value
	value := 0
	rolled := false
	busted := false

	state, applied, err := s.mutate(ctx, input.RoomID, false, func(state *models.PigState) bool {
		if state.Winner != nil {
			return false
		}

		active := state.ActivePlayer()
		if active == nil || active.ID != input.ConnID {
			return false
		}

		if !rolled {
			value = s.diceRoller.Roll(s.config.DieSides)
			rolled = true
		}

		state.DieValue = value

		if value == state.BannedValue {
			active.TempScore = 0
			state.AdvanceTurn()
			busted = true
		} else {
			active.TempScore += value
			busted = false
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		return &RollOutput{State: state}, nil
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventGameUpdate, state); err != nil {
		return nil, err
	}

	return &RollOutput{
		Applied: true,
		Value:   value,
		Busted:  busted,
		State:   state,
	}, nil
}

// Bank moves the active player's pending score into their frozen score.
// Reaching the winning score sets the winner and freezes the machine: no
// later roll or bank mutates the state again.
func (s *service) Bank(ctx context.Context, input *BankInput) (*BankOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	state, applied, err := s.mutate(ctx, input.RoomID, false, func(state *models.PigState) bool {
		if state.Winner != nil {
			return false
		}

		active := state.ActivePlayer()
		if active == nil || active.ID != input.ConnID {
			return false
		}

		active.FrozenScore += active.TempScore
		active.TempScore = 0

		if active.FrozenScore >= s.config.WinningScore {
			winner := active.Name
			state.Winner = &winner
		} else {
			state.AdvanceTurn()
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		return &BankOutput{State: state}, nil
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventGameUpdate, state); err != nil {
		return nil, err
	}

	return &BankOutput{
		Applied: true,
		Winner:  state.Winner,
		State:   state,
	}, nil
}

// SetBannedNumber draws a new banned value. Any player may trigger this,
// regardless of whose turn it is.
func (s *service) SetBannedNumber(ctx context.Context, input *SetBannedNumberInput) (*SetBannedNumberOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	value := s.diceRoller.Roll(s.config.DieSides)

	state, applied, err := s.mutate(ctx, input.RoomID, false, func(state *models.PigState) bool {
		state.BannedValue = value
		return true
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		return &SetBannedNumberOutput{State: state}, nil
	}

	if err := s.publish(ctx, input.RoomID, broadcaster.EventGameUpdate, state); err != nil {
		return nil, err
	}

	return &SetBannedNumberOutput{
		Applied: true,
		Value:   value,
		State:   state,
	}, nil
}

// Leave removes a player from the game. Removing the active player clamps
// the turn back to the first position; removing the leader passes the role
// to the first remaining player; removing the last player tears the room
// down.
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || input.RoomID == "" || input.ConnID == "" {
		return nil, errors.New("input, room ID and connection ID cannot be empty")
	}

	for attempt := 0; attempt < s.config.MaxSaveRetries; attempt++ {
		state, err := s.gameStateRepo.Get(ctx, &gamestateRepo.GetInput{RoomID: input.RoomID})
		if err != nil {
			if errors.Is(err, gamestateRepo.ErrStateNotFound) {
				return &LeaveOutput{}, nil
			}
			return nil, err
		}

		if state.FindPlayer(input.ConnID) == nil {
			return &LeaveOutput{State: state}, nil
		}

		wasLeader := state.LeaderID == input.ConnID

		remaining := make([]*models.PigPlayer, 0, len(state.Players))
		for _, p := range state.Players {
			if p.ID != input.ConnID {
				remaining = append(remaining, p)
			}
		}
		state.Players = remaining

		if state.ActivePlayerIndex >= len(state.Players) {
			state.ActivePlayerIndex = 0
		}

		if wasLeader && len(state.Players) > 0 {
			state.LeaderID = state.Players[0].ID
		}

		if len(state.Players) == 0 {
			if err := s.teardown(ctx, input.RoomID); err != nil {
				return nil, err
			}
			return &LeaveOutput{Removed: true, RoomClosed: true}, nil
		}

		err = s.gameStateRepo.CompareAndSave(ctx, &gamestateRepo.CompareAndSaveInput{
			RoomID:          input.RoomID,
			State:           state,
			ExpectedVersion: state.Version,
		})
		if err == nil {
			if err := s.publish(ctx, input.RoomID, broadcaster.EventGameUpdate, state); err != nil {
				return nil, err
			}
			return &LeaveOutput{Removed: true, State: state}, nil
		}
		if !errors.Is(err, gamestateRepo.ErrVersionMismatch) {
			return nil, err
		}
	}

	return nil, ErrConcurrentUpdate
}

// Reset replaces the game state with an empty, not-started state
func (s *service) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	return s.reset(ctx, input, broadcaster.EventGameReset)
}

// Restart replaces the game state like Reset but announces a restart
func (s *service) Restart(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	return s.reset(ctx, input, broadcaster.EventGameRestart)
}

func (s *service) reset(ctx context.Context, input *ResetInput, eventType string) (*ResetOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	state := models.NewPigState()

	err := s.gameStateRepo.Save(ctx, &gamestateRepo.SaveInput{
		RoomID: input.RoomID,
		State:  state,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, input.RoomID, eventType, nil); err != nil {
		return nil, err
	}

	return &ResetOutput{State: state}, nil
}

// GetState retrieves the current game state, nil if the room has none
func (s *service) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	state, err := s.gameStateRepo.Get(ctx, &gamestateRepo.GetInput{RoomID: input.RoomID})
	if err != nil {
		if errors.Is(err, gamestateRepo.ErrStateNotFound) {
			return &GetStateOutput{}, nil
		}
		return nil, err
	}

	return &GetStateOutput{State: state}, nil
}

// teardown deletes every key belonging to the room and broadcasts that the
// room is closed instead of a state update
func (s *service) teardown(ctx context.Context, roomID string) error {
	err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomID: roomID})
	if err != nil {
		return err
	}

	err = s.gameStateRepo.Delete(ctx, &gamestateRepo.DeleteInput{RoomID: roomID})
	if err != nil {
		return err
	}

	event, err := broadcaster.NewEvent(broadcaster.EventRoomClosed, nil)
	if err != nil {
		return err
	}

	return s.broadcaster.Publish(ctx, roomID, event)
}
