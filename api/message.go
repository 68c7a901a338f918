package api

import "strings"

//Role is the author of a Message
type Role string

//Roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

//Message is one entry of a conversation, oldest first
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

//NormalizeMessages drops entries without content, coerces unknown roles to assistant
//and keeps at most the last MaxMessages entries. msgs is not modified.
func NormalizeMessages(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := RoleAssistant
		if m.Role == RoleUser {
			role = RoleUser
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	if len(out) > MaxMessages {
		out = out[len(out)-MaxMessages:]
	}
	return out
}

//LastUserMessage returns the index and content of the newest user message, or -1 if there is none
func LastUserMessage(msgs []Message) (int, string) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return i, msgs[i].Content
		}
	}
	return -1, ""
}
