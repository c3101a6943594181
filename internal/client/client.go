// Package client connects to a table server over a websocket and turns its
// messages into events for the terminal UI.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/protocol"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrSendBuffer   = errors.New("send buffer full")
)

// Client represents a WebSocket client for the poker table
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *protocol.Message
	receive   chan *protocol.Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	connected bool
	name      string
	closeOnce sync.Once

	// Event handlers
	eventHandlers map[protocol.MessageType][]EventHandler
	waiters       map[protocol.MessageType][]chan *protocol.Message
}

// EventHandler is a function that handles incoming events
type EventHandler func(*protocol.Message)

// NewClient creates a new WebSocket client
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL:     serverURL,
		send:          make(chan *protocol.Message, 256),
		receive:       make(chan *protocol.Message, 256),
		logger:        logger.WithPrefix("client"),
		ctx:           ctx,
		cancel:        cancel,
		eventHandlers: make(map[protocol.MessageType][]EventHandler),
		waiters:       make(map[protocol.MessageType][]chan *protocol.Message),
	}
}

// WebSocketURL turns a server address into its websocket endpoint: http(s)
// becomes ws(s) and the path is /ws.
func WebSocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid server URL: unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}

// Connect establishes a WebSocket connection to the server
func (c *Client) Connect(ctx context.Context) error {
	c.logger.Info("Connecting to server", "url", c.serverURL)

	wsURL, err := WebSocketURL(c.serverURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()
	go c.eventProcessor()

	c.logger.Info("Connected to server")
	return nil
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn != nil {
			_ = c.conn.Close() // Ignore close errors during shutdown
		}
		c.connected = false
		c.logger.Info("Disconnected from server")
	})
	return nil
}

// Done is closed once the client disconnects
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SendMessage queues a message for the server
func (c *Client) SendMessage(msg *protocol.Message) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		return ErrSendBuffer
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() { _ = c.Disconnect() }()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		msg, err := protocol.Unmarshal(data)
		if err != nil {
			c.logger.Warn("Dropping malformed message", "error", err)
			continue
		}
		c.logger.Debug("Received message", "type", msg.Type)

		select {
		case c.receive <- msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping interval
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				_ = c.Disconnect()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Disconnect()
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// eventProcessor delivers messages to handlers one at a time, in arrival
// order.
func (c *Client) eventProcessor() {
	for {
		select {
		case msg := <-c.receive:
			c.handleMessage(msg)
		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches messages to registered handlers and waiters
func (c *Client) handleMessage(msg *protocol.Message) {
	c.mu.Lock()
	handlers := c.eventHandlers[msg.Type]
	waiters := c.waiters[msg.Type]
	delete(c.waiters, msg.Type)
	c.mu.Unlock()

	for _, w := range waiters {
		w <- msg
	}
	if len(handlers) == 0 && len(waiters) == 0 {
		c.logger.Debug("No handler for message type", "type", msg.Type)
	}
	for _, handler := range handlers {
		handler(msg)
	}
}

// AddEventHandler adds an event handler for a specific message type
func (c *Client) AddEventHandler(messageType protocol.MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventHandlers[messageType] = append(c.eventHandlers[messageType], handler)
}

func (c *Client) sendData(messageType protocol.MessageType, data any) error {
	msg, err := protocol.NewMessage(messageType, data)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// Join asks for a seat. A buy-in of zero takes the table's starting stack.
func (c *Client) Join(name string, buyIn int) error {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
	return c.sendData(protocol.TypeJoin, protocol.JoinData{Name: name, BuyIn: buyIn})
}

// Leave gives up the seat between hands
func (c *Client) Leave() error {
	return c.sendData(protocol.TypeLeave, nil)
}

// Deal asks the server to start the next hand
func (c *Client) Deal() error {
	return c.sendData(protocol.TypeDeal, nil)
}

// Act submits an action. amount is the street total and only used for bets.
func (c *Client) Act(action game.Action, amount int) error {
	data := protocol.ActionData{Action: action.String()}
	if action == game.Bet {
		data.Amount = amount
	}
	return c.sendData(protocol.TypeAction, data)
}

// PlayerName returns the name last sent in a join
func (c *Client) PlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// WaitForMessage waits for the next message of a type
func (c *Client) WaitForMessage(ctx context.Context, messageType protocol.MessageType) (*protocol.Message, error) {
	ch := make(chan *protocol.Message, 1)

	c.mu.Lock()
	c.waiters[messageType] = append(c.waiters[messageType], ch)
	c.mu.Unlock()

	select {
	case msg := <-ch:
		return msg, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for %s: %w", messageType, ctx.Err())
	case <-c.ctx.Done():
		return nil, ErrNotConnected
	}
}
