package room

import (
	"context"
	"errors"
	"sort"

	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// maxElectRetries bounds the optimistic-save loop when writing a new leader
const maxElectRetries = 3

// ElectLeader derives the room leader from membership. The current leader
// keeps the role while still a member; otherwise leadership passes to the
// earliest joiner still present. An empty membership has no leader.
func ElectLeader(currentLeader string, members map[string]string, joinOrder []string) string {
	if len(members) == 0 {
		return ""
	}

	if currentLeader != "" {
		if _, ok := members[currentLeader]; ok {
			return currentLeader
		}
	}

	for _, connID := range joinOrder {
		if _, ok := members[connID]; ok {
			return connID
		}
	}

	// Join order is missing entries, fall back to the smallest connection
	// ID so the result is still deterministic across processes
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids[0]
}

// reelectLeader rewrites the game state's leader if the current one is no
// longer a member. Rooms without game state have no leader to maintain.
func (s *service) reelectLeader(ctx context.Context, roomID string) error {
	members, err := s.roomRepo.GetMembers(ctx, &roomRepo.GetMembersInput{RoomID: roomID})
	if err != nil {
		return err
	}

	joinOrder, err := s.roomRepo.MembersInJoinOrder(ctx, &roomRepo.MembersInJoinOrderInput{RoomID: roomID})
	if err != nil {
		return err
	}

	for attempt := 0; attempt < maxElectRetries; attempt++ {
		state, err := s.gameStateRepo.Get(ctx, &gamestateRepo.GetInput{RoomID: roomID})
		if err != nil {
			if errors.Is(err, gamestateRepo.ErrStateNotFound) {
				return nil
			}
			return err
		}

		newLeader := ElectLeader(state.LeaderID, members, joinOrder)
		if newLeader == state.LeaderID {
			return nil
		}

		state.LeaderID = newLeader

		err = s.gameStateRepo.CompareAndSave(ctx, &gamestateRepo.CompareAndSaveInput{
			RoomID:          roomID,
			State:           state,
			ExpectedVersion: state.Version,
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gamestateRepo.ErrVersionMismatch) {
			return err
		}
	}

	// A concurrent writer kept winning; their state already reflects
	// current membership closely enough, accept last write wins
	return nil
}
