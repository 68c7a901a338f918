package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/chatbot"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatSession serves one websocket connection. Replies run one at a time; a "stop" cancels
// the running reply.
type chatSession struct {
	id        uuid.UUID
	conn      *websocket.Conn
	transport *chatbot.Transport
	logger    *slog.Logger

	writeMu sync.Mutex
}

//GET /chat/ws
func handleChatSocket(t *chatbot.Transport, logger *slog.Logger) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already written an error response
			return &handlerResponse{Code: http.StatusBadRequest, Err: fmt.Errorf("Could not upgrade connection: %v", err)}
		}
		defer conn.Close()

		s := &chatSession{id: uuid.New(), conn: conn, transport: t}
		s.logger = logger.With("session", s.id.String())
		s.logger.Debug("websocket session started")

		if err = s.serve(r.Context()); err != nil {
			return &handlerResponse{Code: http.StatusSwitchingProtocols, Err: err}
		}
		return &handlerResponse{Code: http.StatusSwitchingProtocols}
	}
}

func (s *chatSession) send(msg ServerMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *chatSession) sendError(msg string) {
	if err := s.send(ServerMessage{Type: MessageTypeError, Error: msg}); err != nil {
		s.logger.Debug("could not send error", "error", err)
	}
}

// read forwards client messages until the connection fails
func (s *chatSession) read(ctx context.Context, incoming chan<- ClientMessage) error {
	defer close(incoming)
	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return err
		}
		select {
		case incoming <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *chatSession) serve(parent context.Context) error {
	ctx, stop := context.WithCancel(parent)
	defer stop()

	incoming := make(chan ClientMessage)
	readErr := make(chan error, 1)
	go func() { readErr <- s.read(ctx, incoming) }()

	var (
		cancel context.CancelFunc
		done   chan struct{}
	)
	defer func() {
		if cancel != nil {
			cancel()
			<-done
		}
	}()

	for {
		select {
		case msg, ok := <-incoming:
			if !ok {
				err := <-readErr
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
					return nil
				}
				return err
			}

			switch msg.Type {
			case MessageTypeStop:
				if cancel != nil {
					cancel()
				}
			case MessageTypeRequest:
				if done != nil {
					s.sendError("A reply is already in progress")
					continue
				}
				msgs := api.NormalizeMessages(msg.Messages)
				if err := api.ValidateMessages(msgs); err != nil {
					s.sendError(err.Error())
					continue
				}

				var replyCtx context.Context
				replyCtx, cancel = context.WithCancel(ctx)
				done = make(chan struct{})
				go func(done chan struct{}) {
					defer close(done)
					s.reply(replyCtx, msgs, msg.QualityMode)
				}(done)
			default:
				s.sendError(fmt.Sprintf("Unknown message type %q", msg.Type))
			}
		case <-done:
			cancel()
			cancel, done = nil, nil
		}
	}
}

func (s *chatSession) reply(ctx context.Context, msgs []api.Message, qualityMode bool) {
	onChunk := func(text string) {
		if err := s.send(ServerMessage{Type: MessageTypeText, Content: text}); err != nil {
			s.logger.Debug("could not send chunk", "error", err)
		}
	}

	res, err := s.transport.Chat(ctx, msgs, chatbot.Options{QualityMode: qualityMode, OnChunk: onChunk})
	switch {
	case errors.Is(err, chatbot.ErrCancelled):
		s.logger.Debug("reply stopped")
		if err = s.send(ServerMessage{Type: MessageTypeStopped}); err != nil {
			s.logger.Debug("could not send stopped", "error", err)
		}
		return
	case err != nil:
		s.logger.Error("reply failed", "error", err)
		s.sendError("Reply failed")
		return
	}

	if err = s.send(ServerMessage{Type: MessageTypeDone, Reply: res.Reply, Meta: &res.Meta}); err != nil {
		s.logger.Debug("could not send done", "error", err)
	}
}
