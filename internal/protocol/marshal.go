package protocol

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes a Message as a JSON text frame
func Marshal(msg *Message) ([]byte, error) {
	if !msg.Type.known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
	return json.Marshal(msg)
}

// Unmarshal decodes a frame into its envelope. The payload stays raw until
// the receiver calls Decode with the type it expects.
func Unmarshal(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if !msg.Type.known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
	return &msg, nil
}

func (mt MessageType) known() bool {
	switch mt {
	case TypeJoin, TypeLeave, TypeDeal, TypeAction,
		TypeJoined, TypeLeft, TypeState, TypeError, TypeTimeout:
		return true
	}
	return false
}

// Encode builds and marshals a message in one step
func Encode(messageType MessageType, data any) ([]byte, error) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		return nil, err
	}
	return Marshal(msg)
}
