package pig

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	broadcasterMocks "github.com/pigparty/server/internal/broadcaster/mocks"
	diceMocks "github.com/pigparty/server/internal/dice/mocks"
	gamestateRepo "github.com/pigparty/server/internal/repositories/gamestate"
	roomRepo "github.com/pigparty/server/internal/repositories/room"
)

// GameScenarioTestSuite plays full games against real Redis-backed
// repositories, with only the fanout and the die scripted
type GameScenarioTestSuite struct {
	suite.Suite
	mr         *miniredis.Miniredis
	client     *redis.Client
	mockCtrl   *gomock.Controller
	mockDice   *diceMocks.MockRoller
	pigService Service
	ctx        context.Context
}

func (s *GameScenarioTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDice = diceMocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	gameStates, err := gamestateRepo.NewRedis(&gamestateRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	rooms, err := roomRepo.NewRedis(&roomRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	mockBroadcaster := broadcasterMocks.NewMockBroadcaster(s.mockCtrl)
	mockBroadcaster.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc, err := NewService(&Config{
		WinningScore:  10,
		DieSides:      6,
		GameStateRepo: gameStates,
		RoomRepo:      rooms,
		Broadcaster:   mockBroadcaster,
		DiceRoller:    s.mockDice,
	})
	s.Require().NoError(err)
	s.pigService = svc
}

func (s *GameScenarioTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

// Two players play to a win: a bust hands the turn over, banked points
// accumulate, and the finished game ignores further play.
func (s *GameScenarioTestSuite) TestTwoPlayerGame() {
	roomID := "r1"

	_, err := s.pigService.Join(s.ctx, &JoinInput{RoomID: roomID, ConnID: "conn-a", PlayerName: "A"})
	s.Require().NoError(err)
	joinB, err := s.pigService.Join(s.ctx, &JoinInput{RoomID: roomID, ConnID: "conn-b", PlayerName: "B"})
	s.Require().NoError(err)

	s.Require().Len(joinB.State.Players, 2)
	s.Equal("conn-a", joinB.State.LeaderID)
	s.Equal(1, joinB.State.BannedValue)

	// A rolls the banned value: pending resets, turn passes to B
	s.mockDice.EXPECT().Roll(6).Return(1)
	roll, err := s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)
	s.True(roll.Busted)
	s.Equal(0, roll.State.Players[0].TempScore)
	s.Equal(1, roll.State.ActivePlayerIndex)

	// B rolls a 4 and banks it
	s.mockDice.EXPECT().Roll(6).Return(4)
	roll, err = s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-b"})
	s.Require().NoError(err)
	s.Equal(4, roll.State.Players[1].TempScore)

	bank, err := s.pigService.Bank(s.ctx, &BankInput{RoomID: roomID, ConnID: "conn-b"})
	s.Require().NoError(err)
	s.Nil(bank.Winner)
	s.Equal(4, bank.State.Players[1].FrozenScore)
	s.Equal(0, bank.State.ActivePlayerIndex)

	// A is active again, rolls twice and banks
	s.mockDice.EXPECT().Roll(6).Return(3)
	_, err = s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)
	s.mockDice.EXPECT().Roll(6).Return(2)
	roll, err = s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)
	s.Equal(5, roll.State.Players[0].TempScore)

	_, err = s.pigService.Bank(s.ctx, &BankInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)

	// B rolls 6 and banks: 4 + 6 reaches the winning score
	s.mockDice.EXPECT().Roll(6).Return(6)
	_, err = s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-b"})
	s.Require().NoError(err)

	bank, err = s.pigService.Bank(s.ctx, &BankInput{RoomID: roomID, ConnID: "conn-b"})
	s.Require().NoError(err)
	s.Require().NotNil(bank.Winner)
	s.Equal("B", *bank.Winner)
	s.Equal(10, bank.State.Players[1].FrozenScore)

	// The finished game is terminal: neither a roll nor a bank moves it
	final := bank.State
	roll, err = s.pigService.Roll(s.ctx, &RollInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)
	s.False(roll.Applied)

	state, err := s.pigService.GetState(s.ctx, &GetStateInput{RoomID: roomID})
	s.Require().NoError(err)
	s.Equal(final.Players[0].FrozenScore, state.State.Players[0].FrozenScore)
	s.Equal(final.Winner, state.State.Winner)
	s.Equal(final.ActivePlayerIndex, state.State.ActivePlayerIndex)
}

// The last player leaving deletes the game and the room's keys
func (s *GameScenarioTestSuite) TestLeaveToEmptyTearsDown() {
	roomID := "r2"

	_, err := s.pigService.Join(s.ctx, &JoinInput{RoomID: roomID, ConnID: "conn-a", PlayerName: "A"})
	s.Require().NoError(err)
	_, err = s.pigService.Join(s.ctx, &JoinInput{RoomID: roomID, ConnID: "conn-b", PlayerName: "B"})
	s.Require().NoError(err)

	out, err := s.pigService.Leave(s.ctx, &LeaveInput{RoomID: roomID, ConnID: "conn-a"})
	s.Require().NoError(err)
	s.True(out.Removed)
	s.False(out.RoomClosed)
	s.Equal("conn-b", out.State.LeaderID)

	out, err = s.pigService.Leave(s.ctx, &LeaveInput{RoomID: roomID, ConnID: "conn-b"})
	s.Require().NoError(err)
	s.True(out.RoomClosed)

	state, err := s.pigService.GetState(s.ctx, &GetStateInput{RoomID: roomID})
	s.Require().NoError(err)
	s.Nil(state.State)
}

func TestGameScenarioSuite(t *testing.T) {
	suite.Run(t, new(GameScenarioTestSuite))
}
