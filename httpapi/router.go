package httpapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/korylprince/chat-transport/chatbot"
	"github.com/korylprince/chat-transport/generator"
	"github.com/korylprince/chat-transport/telemetry"
)

//Config holds the dependencies of the HTTP API.
//When TelemetryStore is set, /telemetry/ summarizes its newest TelemetryLimit samples
//instead of the in-memory ones.
type Config struct {
	Transport      *chatbot.Transport
	Catalog        *generator.Catalog
	Telemetry      *telemetry.MemoryRecorder
	TelemetryStore SummaryReader
	TelemetryLimit int
	Logger         *slog.Logger
}

//NewRouter returns an HTTP router for the HTTP API. Access logs are written to w.
func NewRouter(w io.Writer, c *Config) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	//construct middleware
	var m = func(h returnHandler) http.Handler {
		return handlers.CompressHandler(logMiddleware(jsonMiddleware(h), w))
	}

	r := mux.NewRouter()

	r.Path("/chat").Methods("POST").Handler(m(handleChat(c.Transport)))
	r.Path("/chat/ws").Methods("GET").Handler(logMiddleware(handleChatSocket(c.Transport, logger), w))

	r.Path("/topics/").Methods("GET").Handler(m(handleReadTopics(c.Catalog)))
	r.Path("/telemetry/").Methods("GET").Handler(m(handleReadTelemetry(c.Telemetry, c.TelemetryStore, c.TelemetryLimit)))

	r.NotFoundHandler = m(notFoundHandler)
	r.MethodNotAllowedHandler = m(methodNotAllowedHandler)

	return r
}
