package httpapi

import "github.com/korylprince/chat-transport/api"

// ClientMessage is the message format from client to server
type ClientMessage struct {
	Type        string        `json:"type"`                  // "request" or "stop"
	Messages    []api.Message `json:"messages,omitempty"`    // sent with "request"
	QualityMode bool          `json:"qualityMode,omitempty"` // sent with "request"
}

// ServerMessage is the message format from server to client
type ServerMessage struct {
	Type    string    `json:"type"`              // "text", "done", "stopped", or "error"
	Content string    `json:"content,omitempty"` // partial reply text
	Reply   string    `json:"reply,omitempty"`   // sent with "done"
	Meta    *api.Meta `json:"meta,omitempty"`    // sent with "done"
	Error   string    `json:"error,omitempty"`   // sent with "error"
}

// Message types
const (
	MessageTypeRequest = "request"
	MessageTypeStop    = "stop"

	MessageTypeText    = "text"
	MessageTypeDone    = "done"
	MessageTypeStopped = "stopped"
	MessageTypeError   = "error"
)
