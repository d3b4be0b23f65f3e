// Package messages defines the WebSocket wire protocol between the
// browser client and the gateway.
package messages

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Client message types.
const (
	ClientTypeMessage = "message" // user chat text
	ClientTypeControl = "control" // session control action
)

// Control actions.
const (
	ActionPanelOpen = "panel_open" // user gesture; unlocks audio output
	ActionReset     = "reset"      // clear transcript back to greeting
	ActionPing      = "ping"
)

// ClientMessage is the envelope for everything the client sends.
type ClientMessage struct {
	Type    string          `json:"type"`
	Message *TextPayload    `json:"message,omitempty"`
	Control *ControlPayload `json:"control,omitempty"`
}

// TextPayload carries one user chat message.
type TextPayload struct {
	Text string `json:"text"`
}

// ControlPayload carries a session control action.
type ControlPayload struct {
	Action string `json:"action"`
}

// ParseClientMessage decodes and validates one inbound frame.
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse client message: %w", err)
	}
	switch msg.Type {
	case ClientTypeMessage:
		if msg.Message == nil {
			return nil, fmt.Errorf("message frame missing message payload")
		}
	case ClientTypeControl:
		if msg.Control == nil {
			return nil, fmt.Errorf("control frame missing control payload")
		}
		switch msg.Control.Action {
		case ActionPanelOpen, ActionReset, ActionPing:
		default:
			return nil, fmt.Errorf("unknown control action: %s", msg.Control.Action)
		}
	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
	return &msg, nil
}
