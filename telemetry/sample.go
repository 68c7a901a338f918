// Package telemetry records per-reply timing and size samples.
package telemetry

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/korylprince/chat-transport/api"
)

// Sample describes one delivered reply
type Sample struct {
	ID             uuid.UUID  `json:"id"`
	Time           time.Time  `json:"time"`
	Source         api.Source `json:"source"`
	QualityMode    bool       `json:"qualityMode"`
	Streamed       bool       `json:"streamed"`
	FallbackReason string     `json:"fallbackReason,omitempty"`
	LatencyMS      int64      `json:"latencyMs"`
	StreamMS       int64      `json:"streamMs"`
	Chars          int        `json:"chars"`
	Tokens         int        `json:"tokens"`
	Chunks         int        `json:"chunks"`
}

// Recorder stores samples
type Recorder interface {
	Record(ctx context.Context, s Sample) error
}

// EstimateTokens approximates the token count of a reply with chars characters
func EstimateTokens(chars int) int {
	return max(1, (chars+2)/4)
}

// NewSample builds a Sample for res. firstChunk is zero when nothing was streamed.
// Non-streamed replies count as a single chunk.
func NewSample(res *api.Result, started, firstChunk, finished time.Time, chunks int) Sample {
	chars := utf8.RuneCountInString(res.Reply)
	s := Sample{
		ID:             uuid.New(),
		Time:           finished,
		Source:         res.Meta.Source,
		QualityMode:    res.Meta.QualityMode,
		Streamed:       res.Meta.Streamed,
		FallbackReason: res.Meta.FallbackReason,
		LatencyMS:      finished.Sub(started).Milliseconds(),
		Chars:          chars,
		Tokens:         EstimateTokens(chars),
		Chunks:         chunks,
	}
	if !firstChunk.IsZero() {
		s.StreamMS = finished.Sub(firstChunk).Milliseconds()
	}
	if s.Chunks == 0 {
		s.Chunks = 1
	}
	return s
}

// Multi records every sample with each Recorder, returning the first error
type Multi []Recorder

// Record implements Recorder
func (m Multi) Record(ctx context.Context, s Sample) error {
	var first error
	for _, r := range m {
		if err := r.Record(ctx, s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
