package ws

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pigparty/server/internal/broadcaster"
	broadcasterMocks "github.com/pigparty/server/internal/broadcaster/mocks"
)

type HubTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockBroadcaster *broadcasterMocks.MockBroadcaster
	hub             *Hub
	ctx             context.Context
}

func (s *HubTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBroadcaster = broadcasterMocks.NewMockBroadcaster(s.mockCtrl)
	s.ctx = context.Background()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hub, err := NewHub(s.mockBroadcaster, logger)
	s.Require().NoError(err)
	s.hub = hub
}

func (s *HubTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *HubTestSuite) newClient(id string) *Client {
	return &Client{
		id:    id,
		log:   logrus.NewEntry(logrus.New()),
		rooms: make(map[string]struct{}),
		send:  make(chan []byte, sendBufferSize),
	}
}

func (s *HubTestSuite) TestNewHub_ValidatesDependencies() {
	hub, err := NewHub(nil, logrus.New())
	s.Nil(hub)
	s.ErrorIs(err, ErrNilBroadcaster)

	hub, err = NewHub(s.mockBroadcaster, nil)
	s.Nil(hub)
	s.ErrorIs(err, ErrNilLogger)
}

func (s *HubTestSuite) TestJoinRoom_SubscribesOncePerRoom() {
	events := make(chan *broadcaster.Event)
	sub := broadcasterMocks.NewMockSubscription(s.mockCtrl)
	sub.EXPECT().Events().Return((<-chan *broadcaster.Event)(events)).AnyTimes()

	// One subscription for two local clients in the same room
	s.mockBroadcaster.EXPECT().
		Subscribe(s.ctx, "room-1").
		Return(sub, nil)

	clientA := s.newClient("conn-a")
	clientB := s.newClient("conn-b")

	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientA, "room-1"))
	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientB, "room-1"))

	close(events)
}

func (s *HubTestSuite) TestRelay_FansOutToLocalClients() {
	events := make(chan *broadcaster.Event, 1)
	sub := broadcasterMocks.NewMockSubscription(s.mockCtrl)
	sub.EXPECT().Events().Return((<-chan *broadcaster.Event)(events)).AnyTimes()

	s.mockBroadcaster.EXPECT().
		Subscribe(s.ctx, "room-1").
		Return(sub, nil)

	clientA := s.newClient("conn-a")
	clientB := s.newClient("conn-b")

	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientA, "room-1"))
	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientB, "room-1"))

	event, err := broadcaster.NewEvent(broadcaster.EventChatMessage, map[string]string{"message": "hi"})
	s.Require().NoError(err)

	events <- event
	close(events)

	for _, c := range []*Client{clientA, clientB} {
		select {
		case data := <-c.send:
			var got broadcaster.Event
			s.Require().NoError(json.Unmarshal(data, &got))
			s.Equal(broadcaster.EventChatMessage, got.Type)
		case <-time.After(time.Second):
			s.Failf("timeout", "client %s never received the event", c.id)
		}
	}
}

func (s *HubTestSuite) TestLeaveRoom_ClosesSubscriptionWhenEmpty() {
	events := make(chan *broadcaster.Event)
	sub := broadcasterMocks.NewMockSubscription(s.mockCtrl)
	sub.EXPECT().Events().Return((<-chan *broadcaster.Event)(events)).AnyTimes()

	s.mockBroadcaster.EXPECT().
		Subscribe(s.ctx, "room-1").
		Return(sub, nil)

	clientA := s.newClient("conn-a")
	clientB := s.newClient("conn-b")

	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientA, "room-1"))
	s.Require().NoError(s.hub.JoinRoom(s.ctx, clientB, "room-1"))

	s.hub.LeaveRoom(clientA, "room-1")

	sub.EXPECT().Close().DoAndReturn(func() error {
		close(events)
		return nil
	})

	s.hub.LeaveRoom(clientB, "room-1")
}

func (s *HubTestSuite) TestSend_DeliversDirectly() {
	client := s.newClient("conn-a")

	event, err := broadcaster.NewEvent(broadcaster.EventRoomFull, nil)
	s.Require().NoError(err)

	s.hub.Send(client, event)

	select {
	case data := <-client.send:
		var got broadcaster.Event
		s.Require().NoError(json.Unmarshal(data, &got))
		s.Equal(broadcaster.EventRoomFull, got.Type)
	default:
		s.Fail("no frame was enqueued")
	}
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}
