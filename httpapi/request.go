package httpapi

import "github.com/korylprince/chat-transport/api"

//ChatRequest is a request for one reply to a conversation
type ChatRequest struct {
	Messages    []api.Message `json:"messages"`
	QualityMode bool          `json:"qualityMode"`
}
