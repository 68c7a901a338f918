package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/chatbot"
	"github.com/korylprince/chat-transport/httpapi"
)

// socketBackend gets replies from a chat-transport server's websocket
type socketBackend struct {
	conn *websocket.Conn
}

func dialServer(server string) (*socketBackend, error) {
	// Convert HTTP URL to WebSocket URL
	wsURL := strings.Replace(server, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.TrimSuffix(wsURL, "/") + "/chat/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}
	return &socketBackend{conn: conn}, nil
}

func (s *socketBackend) Close() error {
	return s.conn.Close()
}

func (s *socketBackend) reply(ctx context.Context, messages []api.Message, qualityMode bool, onChunk func(string)) (*api.Result, error) {
	err := s.conn.WriteJSON(httpapi.ClientMessage{Type: httpapi.MessageTypeRequest, Messages: messages, QualityMode: qualityMode})
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// the stop writer must be gone before the next request is written
	finished, exited := make(chan struct{}), make(chan struct{})
	defer func() {
		close(finished)
		<-exited
	}()
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			s.conn.WriteJSON(httpapi.ClientMessage{Type: httpapi.MessageTypeStop})
		case <-finished:
		}
	}()

	for {
		var msg httpapi.ServerMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch msg.Type {
		case httpapi.MessageTypeText:
			if onChunk != nil {
				onChunk(msg.Content)
			}
		case httpapi.MessageTypeDone:
			res := &api.Result{Reply: msg.Reply}
			if msg.Meta != nil {
				res.Meta = *msg.Meta
			}
			return res, nil
		case httpapi.MessageTypeStopped:
			return nil, fmt.Errorf("%w: %w", chatbot.ErrCancelled, context.Cause(ctx))
		case httpapi.MessageTypeError:
			return nil, errors.New(msg.Error)
		}
	}
}
