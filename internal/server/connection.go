package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/protocol"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *protocol.Message
	player    string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *protocol.Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client without blocking. A client
// that falls too far behind is disconnected.
func (c *Connection) SendMessage(msg *protocol.Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection", "player", c.GetPlayer())
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a seated player
func (c *Connection) SetPlayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = name
}

// GetPlayer returns the associated player, empty for spectators
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = errors.New("connection closed")

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		msg, err := protocol.Unmarshal(data)
		if err != nil {
			c.sendError("invalid_message", err.Error())
			continue
		}
		c.handleMessage(msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage dispatches one client message
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case protocol.TypeJoin:
		var data protocol.JoinData
		if err := msg.Decode(&data); err != nil {
			c.sendError("invalid_message", "Failed to parse join data")
			return
		}
		c.handleJoin(data)

	case protocol.TypeLeave:
		c.handleLeave()

	case protocol.TypeDeal:
		c.handleDeal()

	case protocol.TypeAction:
		var data protocol.ActionData
		if err := msg.Decode(&data); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		c.handleAction(data)

	default:
		c.sendError("unknown_message_type", "Unexpected message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	c.sendData(protocol.TypeError, protocol.ErrorData{Code: code, Message: message})
}

func (c *Connection) sendGameError(err error) {
	c.sendData(protocol.TypeError, protocol.ErrorFromGame(err))
}

func (c *Connection) sendData(messageType protocol.MessageType, data any) {
	msg, err := protocol.NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors
}

func (c *Connection) handleJoin(data protocol.JoinData) {
	c.logger.Info("Join request", "name", data.Name, "buy_in", data.BuyIn)

	if current := c.GetPlayer(); current != "" {
		c.sendError("already_joined", "Already seated as "+current)
		return
	}

	p, seat, err := c.server.join(data.Name, data.BuyIn, c)
	if err != nil {
		c.sendGameError(err)
		return
	}
	c.sendData(protocol.TypeJoined, protocol.JoinedData{Name: p.Name, Seat: seat, Chips: p.Chips})
}

func (c *Connection) handleLeave() {
	name := c.GetPlayer()
	if name == "" {
		c.sendError("not_joined", "Must join first")
		return
	}

	chips, err := c.server.Leave(name)
	if err != nil {
		c.sendGameError(err)
		return
	}
	c.SetPlayer("")
	c.sendData(protocol.TypeLeft, protocol.LeftData{Name: name, Chips: chips})
}

func (c *Connection) handleDeal() {
	if c.GetPlayer() == "" {
		c.sendError("not_joined", "Must join first")
		return
	}
	if err := c.server.Deal(); err != nil {
		c.sendGameError(err)
	}
}

func (c *Connection) handleAction(data protocol.ActionData) {
	name := c.GetPlayer()
	c.logger.Info("Player action", "player", name, "action", data.Action, "amount", data.Amount)

	if name == "" {
		c.sendError("not_joined", "Must join first")
		return
	}
	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.sendGameError(err)
		return
	}
	if err := c.server.Act(name, action, data.Amount); err != nil {
		c.sendGameError(err)
	}
}
