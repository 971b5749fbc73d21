package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pigparty/server/internal/broadcaster"
)

var (
	// ErrNilBroadcaster is returned when the hub is created without a broadcaster
	ErrNilBroadcaster = errors.New("broadcaster cannot be nil")

	// ErrNilLogger is returned when the hub is created without a logger
	ErrNilLogger = errors.New("logger cannot be nil")
)

// roomFanout is the local side of one room's event channel: the clients on
// this instance plus the cross-instance subscription feeding them
type roomFanout struct {
	clients map[string]*Client
	sub     broadcaster.Subscription
}

// Hub tracks the websocket clients connected to this instance and relays
// each room's published events to them. Clients on other instances receive
// the same events through their own hub's subscription.
type Hub struct {
	broadcaster broadcaster.Broadcaster
	log         *logrus.Entry

	mu      sync.Mutex
	rooms   map[string]*roomFanout
	clients map[string]*Client
}

// NewHub creates a hub relaying events from the given broadcaster
func NewHub(b broadcaster.Broadcaster, logger *logrus.Logger) (*Hub, error) {
	if b == nil {
		return nil, ErrNilBroadcaster
	}

	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Hub{
		broadcaster: b,
		log:         logger.WithField("component", "hub"),
		rooms:       make(map[string]*roomFanout),
		clients:     make(map[string]*Client),
	}, nil
}

// Register adds a connected client to the hub
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
}

// Unregister drops a client from the hub
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c.id)
}

// Client returns the local client with the given connection ID, nil if the
// connection belongs to another instance
func (h *Hub) Client(connID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.clients[connID]
}

// JoinRoom adds a client to a room's local fanout, opening the room's
// subscription if this is the first local client
func (h *Hub) JoinRoom(ctx context.Context, c *Client, roomID string) error {
	h.mu.Lock()
	fan, ok := h.rooms[roomID]
	if ok {
		fan.clients[c.id] = c
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	sub, err := h.broadcaster.Subscribe(ctx, roomID)
	if err != nil {
		return err
	}

	h.mu.Lock()
	// Another join may have raced us here
	if fan, ok = h.rooms[roomID]; ok {
		fan.clients[c.id] = c
		h.mu.Unlock()
		_ = sub.Close()
		return nil
	}

	fan = &roomFanout{
		clients: map[string]*Client{c.id: c},
		sub:     sub,
	}
	h.rooms[roomID] = fan
	h.mu.Unlock()

	go h.relay(roomID, sub)

	return nil
}

// LeaveRoom removes a client from a room's local fanout, closing the
// subscription when no local clients remain
func (h *Hub) LeaveRoom(c *Client, roomID string) {
	h.mu.Lock()
	fan, ok := h.rooms[roomID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(fan.clients, c.id)

	var sub broadcaster.Subscription
	if len(fan.clients) == 0 {
		sub = fan.sub
		delete(h.rooms, roomID)
	}
	h.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
}

// Send delivers an event to a single local client
func (h *Hub) Send(c *Client, event *broadcaster.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal event")
		return
	}

	if !c.enqueue(data) {
		h.log.WithField("conn_id", c.id).Warn("send buffer full, dropping event")
	}
}

// relay pumps a room's subscription into every local client in the room.
// It exits when the subscription is closed.
func (h *Hub) relay(roomID string, sub broadcaster.Subscription) {
	log := h.log.WithField("room_id", roomID)

	for event := range sub.Events() {
		data, err := json.Marshal(event)
		if err != nil {
			log.WithError(err).Error("failed to marshal event")
			continue
		}

		h.mu.Lock()
		fan, ok := h.rooms[roomID]
		if !ok {
			h.mu.Unlock()
			continue
		}
		clients := make([]*Client, 0, len(fan.clients))
		for _, c := range fan.clients {
			clients = append(clients, c)
		}
		h.mu.Unlock()

		for _, c := range clients {
			if !c.enqueue(data) {
				log.WithField("conn_id", c.id).Warn("send buffer full, dropping event")
			}
		}
	}
}
