package sse

import "encoding/json"

// Generic SSE event type constants (infrastructure only).
// Domain-specific event types should be defined in your application.
const (
	// EventTypeConnected is sent when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive is used for keep-alive comments.
	EventTypeKeepAlive = "keepalive"

	// EventTypeMessage is a generic message event.
	EventTypeMessage = "message"

	// EventTypeError is sent when the relayed stream fails.
	EventTypeError = "error"

	// EventTypeComplete is sent when the relayed stream completes.
	EventTypeComplete = "complete"
)

// Envelope is the JSON wrapper the Relay broadcasts for every signal.
type Envelope struct {
	Type   string          `json:"type"`
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}
