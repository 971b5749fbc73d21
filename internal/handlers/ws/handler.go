package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pigparty/server/internal/broadcaster"
	"github.com/pigparty/server/internal/common/uuid"
	"github.com/pigparty/server/internal/services/pig"
	"github.com/pigparty/server/internal/services/room"
)

var (
	// ErrNilConfig is returned when the handler is created with a nil config
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilRoomService is returned when the room service is nil
	ErrNilRoomService = errors.New("room service cannot be nil")

	// ErrNilPigService is returned when the pig service is nil
	ErrNilPigService = errors.New("pig service cannot be nil")

	// ErrNilHub is returned when the hub is nil
	ErrNilHub = errors.New("hub cannot be nil")
)

// commandTimeout bounds the handling of a single client frame
const commandTimeout = 10 * time.Second

// Config holds configuration for the websocket handler
type Config struct {
	RoomService room.Service
	PigService  pig.Service
	Broadcaster broadcaster.Broadcaster
	Hub         *Hub
	Logger      *logrus.Logger

	// UUID generates connection IDs; defaults to random UUIDs
	UUID uuid.UUID
}

// Handler upgrades connections and dispatches client commands to the room
// and game services. State changing fanout goes through the broadcaster so
// every instance sees it; only direct replies go straight to the client.
type Handler struct {
	roomService room.Service
	pigService  pig.Service
	broadcaster broadcaster.Broadcaster
	hub         *Hub
	log         *logrus.Entry
	uuid        uuid.UUID
	upgrader    websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomService == nil {
		return nil, ErrNilRoomService
	}

	if cfg.PigService == nil {
		return nil, ErrNilPigService
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.Hub == nil {
		return nil, ErrNilHub
	}

	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}

	if cfg.UUID == nil {
		cfg.UUID = uuid.New()
	}

	return &Handler{
		roomService: cfg.RoomService,
		pigService:  cfg.PigService,
		broadcaster: cfg.Broadcaster,
		hub:         cfg.Hub,
		log:         cfg.Logger.WithField("component", "ws"),
		uuid:        cfg.UUID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// ServeHTTP upgrades the request and runs the connection until it closes
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	connID := h.uuid.NewUUID()

	client := &Client{
		id:      connID,
		conn:    conn,
		handler: h,
		log:     h.log.WithField("conn_id", connID),
		rooms:   make(map[string]struct{}),
		send:    make(chan []byte, sendBufferSize),
	}

	h.hub.Register(client)
	client.log.Info("connection opened")

	client.run()
}

// handleCommand dispatches one client frame. Malformed or rejected frames
// are dropped without tearing the connection down.
func (h *Handler) handleCommand(c *Client, raw []byte) {
	cmd, err := ParseCommand(raw)
	if err != nil {
		c.log.WithError(err).Warn("dropping malformed command")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch cmd.Type {
	case CommandJoinRoom:
		err = h.handleJoin(ctx, c, cmd)
	case CommandChatMessage:
		err = h.handleChat(ctx, c, cmd)
	case CommandRollDie:
		_, err = h.pigService.Roll(ctx, &pig.RollInput{RoomID: cmd.RoomID, ConnID: c.id})
	case CommandBankScore:
		_, err = h.pigService.Bank(ctx, &pig.BankInput{RoomID: cmd.RoomID, ConnID: c.id})
	case CommandSetBannedNumber:
		_, err = h.pigService.SetBannedNumber(ctx, &pig.SetBannedNumberInput{RoomID: cmd.RoomID, ConnID: c.id})
	case CommandStartGame:
		err = h.handleStartGame(ctx, cmd)
	case CommandResetGame:
		_, err = h.pigService.Reset(ctx, &pig.ResetInput{RoomID: cmd.RoomID})
	case CommandRestartGame:
		_, err = h.pigService.Restart(ctx, &pig.ResetInput{RoomID: cmd.RoomID})
	case CommandKickPlayer:
		err = h.handleRemove(ctx, cmd, h.roomService.Kick)
	case CommandBanPlayer:
		err = h.handleRemove(ctx, cmd, h.roomService.Ban)
	default:
		c.log.WithField("command", cmd.Type).Warn("dropping unknown command")
		return
	}

	if err != nil {
		c.log.WithError(err).WithField("command", cmd.Type).Error("command failed")
	}
}

func (h *Handler) handleJoin(ctx context.Context, c *Client, cmd *Command) error {
	output, err := h.roomService.Join(ctx, &room.JoinInput{
		RoomID:     cmd.RoomID,
		ConnID:     c.id,
		PlayerName: cmd.PlayerName,
		GameID:     cmd.GameID,
	})
	if err != nil {
		if errors.Is(err, room.ErrRoomFull) {
			event, _ := broadcaster.NewEvent(broadcaster.EventRoomFull, "room is at maximum capacity")
			h.hub.Send(c, event)
			return nil
		}
		return err
	}

	c.setRoom(cmd.RoomID)

	if err := h.hub.JoinRoom(ctx, c, cmd.RoomID); err != nil {
		return err
	}

	// Direct replies: only the joining connection gets these
	joined, err := broadcaster.NewEvent(broadcaster.EventRoomJoined, &broadcaster.UserJoinedPayload{
		ConnID:     c.id,
		PlayerName: cmd.PlayerName,
	})
	if err != nil {
		return err
	}
	h.hub.Send(c, joined)

	history, err := broadcaster.NewEvent(broadcaster.EventChatHistory, output.ChatHistory)
	if err != nil {
		return err
	}
	h.hub.Send(c, history)

	if output.GameID == pig.GameID {
		_, err = h.pigService.Join(ctx, &pig.JoinInput{
			RoomID:     cmd.RoomID,
			ConnID:     c.id,
			PlayerName: cmd.PlayerName,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) handleChat(ctx context.Context, c *Client, cmd *Command) error {
	_, err := h.roomService.Chat(ctx, &room.ChatInput{
		RoomID:  cmd.RoomID,
		ConnID:  c.id,
		Message: cmd.Message,
	})
	return err
}

// handleStartGame announces the game start to the whole room; each client
// then joins the game through its own join command
func (h *Handler) handleStartGame(ctx context.Context, cmd *Command) error {
	event, err := broadcaster.NewEvent(broadcaster.EventGameStart, nil)
	if err != nil {
		return err
	}

	return h.broadcaster.Publish(ctx, cmd.RoomID, event)
}

// handleRemove applies a kick or ban: the member is removed from the room
// and the game, and their connection is closed if it lives on this instance
func (h *Handler) handleRemove(ctx context.Context, cmd *Command, remove func(context.Context, *room.RemoveInput) (*room.RemoveOutput, error)) error {
	output, err := remove(ctx, &room.RemoveInput{
		RoomID: cmd.RoomID,
		ConnID: cmd.TargetConnID,
	})
	if err != nil {
		return err
	}

	if !output.RoomClosed {
		_, err = h.pigService.Leave(ctx, &pig.LeaveInput{
			RoomID: cmd.RoomID,
			ConnID: cmd.TargetConnID,
		})
		if err != nil {
			return err
		}
	}

	if target := h.hub.Client(cmd.TargetConnID); target != nil {
		target.removeRoom(cmd.RoomID)
		h.hub.LeaveRoom(target, cmd.RoomID)
		target.conn.Close()
	}

	return nil
}

// handleDisconnect runs when a connection's read pump exits. Room
// membership survives the grace period; the game seat does not.
func (h *Handler) handleDisconnect(c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	roomIDs := c.roomIDs()

	if len(roomIDs) > 0 {
		output, err := h.roomService.Disconnect(ctx, &room.DisconnectInput{
			ConnID:  c.id,
			RoomIDs: roomIDs,
		})
		if err != nil {
			c.log.WithError(err).Error("failed to handle disconnect")
		}

		closed := make(map[string]bool)
		if output != nil {
			for _, roomID := range output.ClosedRooms {
				closed[roomID] = true
			}
		}

		for _, roomID := range roomIDs {
			if !closed[roomID] {
				_, err := h.pigService.Leave(ctx, &pig.LeaveInput{
					RoomID: roomID,
					ConnID: c.id,
				})
				if err != nil {
					c.log.WithError(err).WithField("room_id", roomID).Error("failed to leave game")
				}
			}
			h.hub.LeaveRoom(c, roomID)
		}
	}

	h.hub.Unregister(c)
	c.log.Info("connection closed")
}
