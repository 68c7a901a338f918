package chatbot

import "strings"

// placeholderMarkers are fragments the remote service returns when it runs without a model behind it
var placeholderMarkers = []string{
	"demo mode",
	"demo response",
	"needs an api key",
	"add your openai api key",
	"configure your openai api key",
	"no openai api key",
}

// IsPlaceholderReply reports whether reply looks like a placeholder answer from a remote
// service running in demo mode. Matching is case-insensitive.
func IsPlaceholderReply(reply string) bool {
	lower := strings.ToLower(reply)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
