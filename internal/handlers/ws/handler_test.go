package ws

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pigparty/server/internal/broadcaster"
	broadcasterMocks "github.com/pigparty/server/internal/broadcaster/mocks"
	"github.com/pigparty/server/internal/models"
	"github.com/pigparty/server/internal/services/pig"
	pigMocks "github.com/pigparty/server/internal/services/pig/mocks"
	"github.com/pigparty/server/internal/services/room"
	roomMocks "github.com/pigparty/server/internal/services/room/mocks"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockRoomService *roomMocks.MockService
	mockPigService  *pigMocks.MockService
	mockBroadcaster *broadcasterMocks.MockBroadcaster
	handler         *Handler
	client          *Client
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoomService = roomMocks.NewMockService(s.mockCtrl)
	s.mockPigService = pigMocks.NewMockService(s.mockCtrl)
	s.mockBroadcaster = broadcasterMocks.NewMockBroadcaster(s.mockCtrl)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hub, err := NewHub(s.mockBroadcaster, logger)
	s.Require().NoError(err)

	handler, err := NewHandler(&Config{
		RoomService: s.mockRoomService,
		PigService:  s.mockPigService,
		Broadcaster: s.mockBroadcaster,
		Hub:         hub,
		Logger:      logger,
	})
	s.Require().NoError(err)
	s.handler = handler

	s.client = &Client{
		id:      "conn-1",
		handler: handler,
		log:     logger.WithField("conn_id", "conn-1"),
		rooms:   make(map[string]struct{}),
		send:    make(chan []byte, sendBufferSize),
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// nextFrame pops the client's next queued frame as an event envelope
func (s *HandlerTestSuite) nextFrame() *broadcaster.Event {
	select {
	case data := <-s.client.send:
		var event broadcaster.Event
		s.Require().NoError(json.Unmarshal(data, &event))
		return &event
	default:
		s.Require().FailNow("no frame queued")
		return nil
	}
}

func (s *HandlerTestSuite) TestJoinCommand_JoinsRoomAndGame() {
	s.mockRoomService.EXPECT().
		Join(gomock.Any(), &room.JoinInput{
			RoomID:     "room-1",
			ConnID:     "conn-1",
			PlayerName: "Alice",
			GameID:     "pig",
		}).
		Return(&room.JoinOutput{
			GameID:      "pig",
			Members:     map[string]string{"conn-1": "Alice"},
			ChatHistory: []*models.ChatMessage{},
		}, nil)

	events := make(chan *broadcaster.Event)
	sub := broadcasterMocks.NewMockSubscription(s.mockCtrl)
	sub.EXPECT().Events().Return((<-chan *broadcaster.Event)(events)).AnyTimes()
	s.mockBroadcaster.EXPECT().
		Subscribe(gomock.Any(), "room-1").
		Return(sub, nil)

	s.mockPigService.EXPECT().
		Join(gomock.Any(), &pig.JoinInput{
			RoomID:     "room-1",
			ConnID:     "conn-1",
			PlayerName: "Alice",
		}).
		Return(&pig.JoinOutput{State: models.NewPigState()}, nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"join_room","roomId":"room-1","playerName":"Alice","gameId":"pig"}`))

	s.Equal(broadcaster.EventRoomJoined, s.nextFrame().Type)
	s.Equal(broadcaster.EventChatHistory, s.nextFrame().Type)
	s.Contains(s.client.roomIDs(), "room-1")

	close(events)
}

func (s *HandlerTestSuite) TestJoinCommand_RoomFullIsDirectReply() {
	s.mockRoomService.EXPECT().
		Join(gomock.Any(), gomock.Any()).
		Return(nil, room.ErrRoomFull)

	s.handler.handleCommand(s.client, []byte(`{"type":"join_room","roomId":"room-1","playerName":"Alice"}`))

	frame := s.nextFrame()
	s.Equal(broadcaster.EventRoomFull, frame.Type)

	var reason string
	s.Require().NoError(json.Unmarshal(frame.Payload, &reason))
	s.Equal("room is at maximum capacity", reason)

	s.Empty(s.client.roomIDs())
}

func (s *HandlerTestSuite) TestJoinCommand_NonPigRoomSkipsGameJoin() {
	s.mockRoomService.EXPECT().
		Join(gomock.Any(), gomock.Any()).
		Return(&room.JoinOutput{
			Members: map[string]string{"conn-1": "Alice"},
		}, nil)

	events := make(chan *broadcaster.Event)
	sub := broadcasterMocks.NewMockSubscription(s.mockCtrl)
	sub.EXPECT().Events().Return((<-chan *broadcaster.Event)(events)).AnyTimes()
	s.mockBroadcaster.EXPECT().
		Subscribe(gomock.Any(), "room-1").
		Return(sub, nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"join_room","roomId":"room-1","playerName":"Alice"}`))

	s.Equal(broadcaster.EventRoomJoined, s.nextFrame().Type)

	close(events)
}

func (s *HandlerTestSuite) TestChatCommand() {
	s.mockRoomService.EXPECT().
		Chat(gomock.Any(), &room.ChatInput{
			RoomID:  "room-1",
			ConnID:  "conn-1",
			Message: "hello",
		}).
		Return(&room.ChatOutput{}, nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"chat_message","roomId":"room-1","message":"hello"}`))
}

func (s *HandlerTestSuite) TestGameCommands() {
	s.mockPigService.EXPECT().
		Roll(gomock.Any(), &pig.RollInput{RoomID: "room-1", ConnID: "conn-1"}).
		Return(&pig.RollOutput{}, nil)
	s.mockPigService.EXPECT().
		Bank(gomock.Any(), &pig.BankInput{RoomID: "room-1", ConnID: "conn-1"}).
		Return(&pig.BankOutput{}, nil)
	s.mockPigService.EXPECT().
		SetBannedNumber(gomock.Any(), &pig.SetBannedNumberInput{RoomID: "room-1", ConnID: "conn-1"}).
		Return(&pig.SetBannedNumberOutput{}, nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"roll_die","roomId":"room-1"}`))
	s.handler.handleCommand(s.client, []byte(`{"type":"bank_score","roomId":"room-1"}`))
	s.handler.handleCommand(s.client, []byte(`{"type":"set_banned_number","roomId":"room-1"}`))
}

func (s *HandlerTestSuite) TestStartGameCommand_FansOut() {
	s.mockBroadcaster.EXPECT().
		Publish(gomock.Any(), "room-1", &broadcaster.Event{Type: broadcaster.EventGameStart}).
		Return(nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"start_game","roomId":"room-1"}`))
}

func (s *HandlerTestSuite) TestKickCommand_RemovesFromRoomAndGame() {
	s.mockRoomService.EXPECT().
		Kick(gomock.Any(), &room.RemoveInput{RoomID: "room-1", ConnID: "conn-2"}).
		Return(&room.RemoveOutput{}, nil)
	s.mockPigService.EXPECT().
		Leave(gomock.Any(), &pig.LeaveInput{RoomID: "room-1", ConnID: "conn-2"}).
		Return(&pig.LeaveOutput{Removed: true}, nil)

	s.handler.handleCommand(s.client, []byte(`{"type":"kick_player","roomId":"room-1","targetId":"conn-2"}`))
}

func (s *HandlerTestSuite) TestUnknownCommand_Dropped() {
	s.handler.handleCommand(s.client, []byte(`{"type":"dance"}`))
	s.handler.handleCommand(s.client, []byte(`not json at all`))
}

func (s *HandlerTestSuite) TestDisconnect_LeavesRoomsAndGames() {
	s.client.setRoom("room-1")

	s.mockRoomService.EXPECT().
		Disconnect(gomock.Any(), &room.DisconnectInput{
			ConnID:  "conn-1",
			RoomIDs: []string{"room-1"},
		}).
		Return(&room.DisconnectOutput{}, nil)
	s.mockPigService.EXPECT().
		Leave(gomock.Any(), &pig.LeaveInput{RoomID: "room-1", ConnID: "conn-1"}).
		Return(&pig.LeaveOutput{Removed: true}, nil)

	s.handler.handleDisconnect(s.client)
}

func (s *HandlerTestSuite) TestDisconnect_SkipsGameLeaveForClosedRooms() {
	s.client.setRoom("room-1")

	s.mockRoomService.EXPECT().
		Disconnect(gomock.Any(), gomock.Any()).
		Return(&room.DisconnectOutput{ClosedRooms: []string{"room-1"}}, nil)

	s.handler.handleDisconnect(s.client)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
