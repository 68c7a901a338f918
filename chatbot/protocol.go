package chatbot

import (
	"encoding/json"
	"strings"

	"github.com/korylprince/chat-transport/api"
)

// Frame event names on the streaming wire
const (
	EventChunk   = "chunk"
	EventDone    = "done"
	EventError   = "error"
	EventMessage = "message" // default when a frame has no event line
)

// Frame is one blank-line delimited unit of the streaming wire protocol
type Frame struct {
	Event   string
	Data    string      // data lines joined with "\n"
	Payload interface{} // Data decoded as JSON, or Data itself when it is not JSON
}

// ChatRequest is the request body sent to the remote chat service
type ChatRequest struct {
	Messages    []api.Message `json:"messages"`
	Stream      bool          `json:"stream"`
	QualityMode bool          `json:"qualityMode"`
}

// ChatResponse is the non-streaming response of the remote chat service.
// Demo is set by services that report their placeholder mode explicitly.
type ChatResponse struct {
	Reply string `json:"reply"`
	Demo  bool   `json:"demo,omitempty"`
	Error string `json:"error,omitempty"`
}

// Text returns the incremental text carried by a chunk frame
func (f Frame) Text() string {
	switch p := f.Payload.(type) {
	case string:
		return p
	case map[string]interface{}:
		for _, key := range []string{"text", "content", "delta", "chunk"} {
			if s, ok := p[key].(string); ok {
				return s
			}
		}
		return ""
	case nil:
		return ""
	}
	return f.Data
}

// ErrorText returns the failure description carried by an error frame
func (f Frame) ErrorText() string {
	if p, ok := f.Payload.(map[string]interface{}); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := p[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if s, ok := f.Payload.(string); ok && s != "" {
		return s
	}
	if strings.TrimSpace(f.Data) != "" {
		return f.Data
	}
	return "stream error"
}

func decodePayload(data string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return data
	}
	return v
}
