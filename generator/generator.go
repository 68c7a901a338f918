// Package generator synthesizes chat replies locally, without a remote model.
//
// Smart replies are composed from a Catalog of topic guides and a handful of fixed
// templates (greeting, time, weather, comparison, bio). Phrasing variants are chosen by
// hashing the message text, so the same message and history always produce the same reply.
// Lite replies are one or two lines.
package generator

import (
	"strings"
	"time"

	"github.com/korylprince/chat-transport/api"
)

const emptyPrompt = "Ask me anything, or try a topic like checkout UX, Go concurrency, or \"react vs vue\"."

// Generator produces local replies. It is safe for concurrent use.
type Generator struct {
	catalog *Catalog

	// Now is the clock used by time replies
	Now func() time.Time
}

// New returns a Generator answering from catalog
func New(catalog *Catalog) *Generator {
	return &Generator{catalog: catalog, Now: time.Now}
}

// Catalog returns the generator's guides
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Reply answers the newest user message in messages. Messages before it are the history.
func (g *Generator) Reply(messages []api.Message, qualityMode bool) string {
	i, text := api.LastUserMessage(messages)
	if i < 0 || strings.TrimSpace(text) == "" {
		return emptyPrompt
	}
	if !qualityMode {
		return g.Lite(text)
	}
	return g.Smart(text, messages[:i])
}
