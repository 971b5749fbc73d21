package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Outbound buffer per client; a client that falls this far behind is
	// dropped rather than allowed to stall the fanout
	sendBufferSize = 64
)

// Client is a single websocket connection
type Client struct {
	id      string
	conn    *websocket.Conn
	handler *Handler
	log     *logrus.Entry

	// rooms the connection has joined. A kick or ban from another
	// connection's goroutine also touches this.
	roomsMu sync.Mutex
	rooms   map[string]struct{}

	send chan []byte
}

// ID returns the connection ID assigned at upgrade time
func (c *Client) ID() string {
	return c.id
}

// setRoom records that the connection joined a room
func (c *Client) setRoom(roomID string) {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()

	c.rooms[roomID] = struct{}{}
}

// removeRoom forgets a room, returning whether the connection was in it
func (c *Client) removeRoom(roomID string) bool {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()

	_, ok := c.rooms[roomID]
	delete(c.rooms, roomID)
	return ok
}

// roomIDs returns the rooms the connection has joined
func (c *Client) roomIDs() []string {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()

	ids := make([]string, 0, len(c.rooms))
	for roomID := range c.rooms {
		ids = append(ids, roomID)
	}
	return ids
}

// run starts the pumps and blocks until the connection is gone
func (c *Client) run() {
	go c.writePump()
	c.readPump()
}

// enqueue hands a frame to the write pump without blocking. It reports
// false when the client's buffer is full.
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// readPump reads client frames and dispatches them until the connection
// closes, then runs the disconnect flow
func (c *Client) readPump() {
	defer func() {
		c.handler.handleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("websocket read error")
			}
			return
		}

		c.handler.handleCommand(c, message)
	}
}

// writePump drains the send channel to the connection and keeps the
// connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
