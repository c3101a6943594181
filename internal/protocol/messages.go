// Package protocol defines the JSON messages exchanged between the table
// server and its clients over a websocket. Every frame is a Message envelope
// whose Data holds one of the payload types below.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

var ErrUnknownMessageType = errors.New("unknown message type")

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	// Client -> Server
	TypeJoin   MessageType = "join"
	TypeLeave  MessageType = "leave"
	TypeDeal   MessageType = "deal"
	TypeAction MessageType = "action"

	// Server -> Client
	TypeJoined  MessageType = "joined"
	TypeLeft    MessageType = "left"
	TypeState   MessageType = "state"
	TypeError   MessageType = "error"
	TypeTimeout MessageType = "timeout"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope for every websocket frame
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps data in an envelope stamped with the current time
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{Type: messageType, Timestamp: time.Now()}
	if data == nil {
		return msg, nil
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", messageType, err)
	}
	msg.Data = dataBytes
	return msg, nil
}

// Decode unmarshals the payload into v
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}

// Client -> Server payloads

type JoinData struct {
	Name  string `json:"name"`
	BuyIn int    `json:"buy_in"`
}

type ActionData struct {
	Action string `json:"action"`           // fold, check, call, bet (raise)
	Amount int    `json:"amount,omitempty"` // street total, bets only
}

// Server -> Client payloads

type JoinedData struct {
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Chips int    `json:"chips"`
}

type LeftData struct {
	Name  string `json:"name"`
	Chips int    `json:"chips"` // stack returned on leaving
}

// StateData carries a snapshot redacted for the receiving player, along
// with that player's legal actions when they are on turn.
type StateData struct {
	Snapshot       game.Snapshot      `json:"snapshot"`
	You            string             `json:"you,omitempty"`
	ValidActions   []game.ValidAction `json:"valid_actions,omitempty"`
	TimeoutSeconds int                `json:"timeout_seconds,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TimeoutData struct {
	Player         string `json:"player"`
	Action         string `json:"action"` // action applied on the player's behalf
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ErrorFromGame builds an error payload whose code is the stable wire name
// of err.
func ErrorFromGame(err error) ErrorData {
	return ErrorData{Code: game.ErrorCode(err), Message: err.Error()}
}
