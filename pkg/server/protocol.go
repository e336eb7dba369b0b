package server

import (
	"encoding/json"

	lserrors "github.com/vango-dev/labelselect/internal/errors"
)

// Message types.
const (
	MsgClick  = "click"
	MsgCall   = "call"
	MsgRender = "render"
)

// ClientMessage is a browser → server message.
type ClientMessage struct {
	Type string `json:"type"`

	// HID is the clicked element's handle (click).
	HID string `json:"hid,omitempty"`

	// Host is the target host's id attribute (call).
	Host string `json:"host,omitempty"`

	// Args are the loosely typed call arguments (call).
	Args []any `json:"args,omitempty"`
}

// ServerMessage is a server → browser message.
type ServerMessage struct {
	Type   string         `json:"type"`
	HTML   string         `json:"html"`
	Events []EmittedEvent `json:"events"`
	Result any            `json:"result,omitempty"`
	Error  *WireError     `json:"error,omitempty"`
}

// EmittedEvent is a semantic event raised on a host while handling a
// message.
type EmittedEvent struct {
	Host string `json:"host"`
	Name string `json:"name"`
}

// WireError reports a failed message.
type WireError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// DecodeClientMessage parses and checks a client message.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, lserrors.New("LS020").WithDetail(err.Error()).Wrap(err)
	}
	switch msg.Type {
	case MsgClick:
		if msg.HID == "" {
			return msg, lserrors.New("LS020").WithDetail("click without hid")
		}
	case MsgCall:
		if msg.Host == "" || len(msg.Args) == 0 {
			return msg, lserrors.New("LS020").WithDetail("call needs host and args")
		}
	default:
		return msg, lserrors.New("LS020").WithDetailf("unknown message type %q", msg.Type)
	}
	return msg, nil
}

func wireError(err error) *WireError {
	if err == nil {
		return nil
	}
	return &WireError{Code: lserrors.CodeOf(err), Message: err.Error()}
}
