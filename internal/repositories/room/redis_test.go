package room

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pigparty/server/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetMembers() {
	ctx := context.Background()

	err := s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-a",
		PlayerName: "Alice",
		JoinedAt:   s.testNow,
	})
	s.Require().NoError(err)

	err = s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-b",
		PlayerName: "Bob",
		JoinedAt:   s.testNow.Add(time.Second),
	})
	s.Require().NoError(err)

	members, err := s.repo.GetMembers(ctx, &GetMembersInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Equal(map[string]string{
		"conn-a": "Alice",
		"conn-b": "Bob",
	}, members)

	member, err := s.repo.GetMember(ctx, &GetMemberInput{RoomID: "r1", ConnID: "conn-a"})
	s.Require().NoError(err)
	s.Equal("Alice", member.PlayerName)
}

func (s *RedisRepositoryTestSuite) TestGetMemberNotFound() {
	_, err := s.repo.GetMember(context.Background(), &GetMemberInput{
		RoomID: "r1",
		ConnID: "missing",
	})
	s.Require().ErrorIs(err, ErrMemberNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetMembersEmptyRoom() {
	members, err := s.repo.GetMembers(context.Background(), &GetMembersInput{RoomID: "empty"})
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *RedisRepositoryTestSuite) TestMembersInJoinOrder() {
	ctx := context.Background()

	// Join out of alphabetical order to prove ordering comes from join time
	err := s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-z",
		PlayerName: "Zed",
		JoinedAt:   s.testNow,
	})
	s.Require().NoError(err)

	err = s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-a",
		PlayerName: "Alice",
		JoinedAt:   s.testNow.Add(time.Second),
	})
	s.Require().NoError(err)

	ordered, err := s.repo.MembersInJoinOrder(ctx, &MembersInJoinOrderInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Equal([]string{"conn-z", "conn-a"}, ordered)

	// Removing a member drops it from the ordered view too
	err = s.repo.RemoveMember(ctx, &RemoveMemberInput{RoomID: "r1", ConnID: "conn-z"})
	s.Require().NoError(err)

	ordered, err = s.repo.MembersInJoinOrder(ctx, &MembersInJoinOrderInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Equal([]string{"conn-a"}, ordered)
}

func (s *RedisRepositoryTestSuite) TestHasMembers() {
	ctx := context.Background()

	has, err := s.repo.HasMembers(ctx, &HasMembersInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.False(has)

	err = s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-a",
		PlayerName: "Alice",
		JoinedAt:   s.testNow,
	})
	s.Require().NoError(err)

	has, err = s.repo.HasMembers(ctx, &HasMembersInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.True(has)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetStatus() {
	ctx := context.Background()

	status := &models.PlayerStatus{
		Name:     "Alice",
		LastSeen: s.testNow.UnixMilli(),
		IsOnline: true,
	}

	err := s.repo.SaveStatus(ctx, &SaveStatusInput{
		RoomID: "r1",
		ConnID: "conn-a",
		Status: status,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetStatus(ctx, &GetStatusInput{RoomID: "r1", ConnID: "conn-a"})
	s.Require().NoError(err)
	s.Equal("conn-a", retrieved.ID)
	s.Equal("Alice", retrieved.Name)
	s.Equal(s.testNow.UnixMilli(), retrieved.LastSeen)
	s.True(retrieved.IsOnline)
}

func (s *RedisRepositoryTestSuite) TestGetStatusNotFound() {
	_, err := s.repo.GetStatus(context.Background(), &GetStatusInput{
		RoomID: "r1",
		ConnID: "missing",
	})
	s.Require().ErrorIs(err, ErrStatusNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetStatusesDegradesMalformedEntries() {
	ctx := context.Background()

	err := s.repo.SaveStatus(ctx, &SaveStatusInput{
		RoomID: "r1",
		ConnID: "conn-a",
		Status: &models.PlayerStatus{
			Name:     "Alice",
			LastSeen: s.testNow.UnixMilli(),
			IsOnline: true,
		},
	})
	s.Require().NoError(err)

	// Corrupt a second entry directly in the store
	s.mr.HSet("room:r1:status", "conn-b", "{not json")

	statuses, err := s.repo.GetStatuses(ctx, &GetStatusesInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Len(statuses, 2)

	byID := make(map[string]*models.PlayerStatus)
	for _, st := range statuses {
		byID[st.ID] = st
	}

	s.Equal("Alice", byID["conn-a"].Name)
	s.Equal("Unknown", byID["conn-b"].Name)
	s.False(byID["conn-b"].IsOnline)
}

func (s *RedisRepositoryTestSuite) TestRemoveStatus() {
	ctx := context.Background()

	err := s.repo.SaveStatus(ctx, &SaveStatusInput{
		RoomID: "r1",
		ConnID: "conn-a",
		Status: &models.PlayerStatus{Name: "Alice", IsOnline: true},
	})
	s.Require().NoError(err)

	err = s.repo.RemoveStatus(ctx, &RemoveStatusInput{RoomID: "r1", ConnID: "conn-a"})
	s.Require().NoError(err)

	_, err = s.repo.GetStatus(ctx, &GetStatusInput{RoomID: "r1", ConnID: "conn-a"})
	s.Require().ErrorIs(err, ErrStatusNotFound)
}

func (s *RedisRepositoryTestSuite) TestAppendChatTrimsToLimit() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := s.repo.AppendChat(ctx, &AppendChatInput{
			RoomID: "r1",
			Message: &models.ChatMessage{
				PlayerName: "Alice",
				Message:    string(rune('a' + i)),
				Timestamp:  s.testNow.Add(time.Duration(i) * time.Second),
			},
			Limit: 3,
		})
		s.Require().NoError(err)
	}

	messages, err := s.repo.GetChat(ctx, &GetChatInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Require().Len(messages, 3)

	// Oldest entries were trimmed
	s.Equal("c", messages[0].Message)
	s.Equal("d", messages[1].Message)
	s.Equal("e", messages[2].Message)
}

func (s *RedisRepositoryTestSuite) TestGetChatSkipsMalformedEntries() {
	ctx := context.Background()

	err := s.repo.AppendChat(ctx, &AppendChatInput{
		RoomID: "r1",
		Message: &models.ChatMessage{
			PlayerName: "Alice",
			Message:    "hello",
			Timestamp:  s.testNow,
		},
		Limit: 100,
	})
	s.Require().NoError(err)

	s.mr.Lpush("room:r1:chat", "{not json")

	messages, err := s.repo.GetChat(ctx, &GetChatInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal("hello", messages[0].Message)
}

func (s *RedisRepositoryTestSuite) TestSetAndGetGameID() {
	ctx := context.Background()

	gameID, err := s.repo.GetGameID(ctx, &GetGameIDInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Empty(gameID)

	err = s.repo.SetGameID(ctx, &SetGameIDInput{RoomID: "r1", GameID: "pig"})
	s.Require().NoError(err)

	gameID, err = s.repo.GetGameID(ctx, &GetGameIDInput{RoomID: "r1"})
	s.Require().NoError(err)
	s.Equal("pig", gameID)
}

func (s *RedisRepositoryTestSuite) TestDeleteRoomRemovesAllKeys() {
	ctx := context.Background()

	err := s.repo.SaveMember(ctx, &SaveMemberInput{
		RoomID:     "r1",
		ConnID:     "conn-a",
		PlayerName: "Alice",
		JoinedAt:   s.testNow,
	})
	s.Require().NoError(err)

	err = s.repo.SaveStatus(ctx, &SaveStatusInput{
		RoomID: "r1",
		ConnID: "conn-a",
		Status: &models.PlayerStatus{Name: "Alice", IsOnline: true},
	})
	s.Require().NoError(err)

	err = s.repo.AppendChat(ctx, &AppendChatInput{
		RoomID:  "r1",
		Message: &models.ChatMessage{PlayerName: "Alice", Message: "hi", Timestamp: s.testNow},
		Limit:   100,
	})
	s.Require().NoError(err)

	err = s.repo.SetGameID(ctx, &SetGameIDInput{RoomID: "r1", GameID: "pig"})
	s.Require().NoError(err)

	err = s.repo.DeleteRoom(ctx, &DeleteRoomInput{RoomID: "r1"})
	s.Require().NoError(err)

	for _, key := range []string{
		"room:r1:players",
		"room:r1:joined",
		"room:r1:status",
		"room:r1:chat",
		"room:r1:game",
	} {
		s.False(s.mr.Exists(key), "expected %s to be deleted", key)
	}
}
