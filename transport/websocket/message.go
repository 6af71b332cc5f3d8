package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-replay/internal/view"
)

const (
	actionConnect = "connect"
	actionPlay    = "game:play"
	actionJump    = "game:jump"
	actionRestart = "game:restart"
	actionSort    = "moves:sort"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of game:play and game:jump.
type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Move *int `json:"move,omitempty"`
}

type ResponsePayload struct {
	SessionID string     `json:"session_id,omitempty"`
	View      *view.View `json:"view,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func decodeRequest(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, err
	}

	return payload, nil
}
