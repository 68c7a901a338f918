package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/korylprince/chat-transport/api"
)

const maxErrorBody = 400

// Client is a client for the remote chat service endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new remote chat client. Timeouts are applied per call by the caller's context.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Endpoint returns the URL the client posts to
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) post(ctx context.Context, messages []api.Message, stream, qualityMode bool) (*http.Response, error) {
	body, err := json.Marshal(ChatRequest{Messages: messages, Stream: stream, QualityMode: qualityMode})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &api.Error{Description: "request failed", Type: api.ErrorTypeNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &api.Error{
			Description: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
			Type:        api.ErrorTypeStatus,
			StatusCode:  resp.StatusCode,
		}
	}

	return resp, nil
}

func decodeReply(r io.Reader) (string, error) {
	var chatResp ChatResponse
	if err := json.NewDecoder(r).Decode(&chatResp); err != nil {
		return "", &api.Error{Description: "malformed reply", Type: api.ErrorTypeStream, Err: err}
	}
	if chatResp.Demo {
		return "", &api.Error{Description: "service reported demo mode", Type: api.ErrorTypePlaceholder}
	}
	if chatResp.Error != "" && chatResp.Reply == "" {
		return "", &api.Error{Description: chatResp.Error, Type: api.ErrorTypeStream}
	}
	return chatResp.Reply, nil
}

// Chat makes a non-streaming chat request and returns the reply text
func (c *Client) Chat(ctx context.Context, messages []api.Message, qualityMode bool) (string, error) {
	resp, err := c.post(ctx, messages, false, qualityMode)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return decodeReply(resp.Body)
}

// ChatStream makes a streaming chat request and returns a FrameReader over the response.
// A service that answers with a JSON body instead of a stream yields one chunk frame and a done frame.
// The caller must Close the returned reader.
func (c *Client) ChatStream(ctx context.Context, messages []api.Message, qualityMode bool) (*FrameReader, error) {
	resp, err := c.post(ctx, messages, true, qualityMode)
	if err != nil {
		return nil, err
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return NewFrameReader(resp.Body), nil
	}

	defer resp.Body.Close()
	reply, err := decodeReply(resp.Body)
	if err != nil {
		return nil, err
	}
	return newStaticFrameReader(
		Frame{Event: EventChunk, Data: reply, Payload: reply},
		Frame{Event: EventDone},
	), nil
}
