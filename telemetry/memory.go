package telemetry

import (
	"context"
	"sync"

	"github.com/korylprince/chat-transport/api"
)

// DefaultLimit is the number of samples kept by a MemoryRecorder by default
const DefaultLimit = 24

// Summary aggregates recent samples
type Summary struct {
	Count         int     `json:"count"`
	Last          *Sample `json:"last"`
	AvgLatencyMS  float64 `json:"avgLatencyMs"`
	AvgStreamMS   float64 `json:"avgStreamMs"`
	AvgChars      float64 `json:"avgChars"`
	AvgTokens     float64 `json:"avgTokens"`
	LiveRatio     float64 `json:"liveRatio"`
	FallbackCount int     `json:"fallbackCount"`
}

// MemoryRecorder keeps the newest samples in memory. It is safe for concurrent use.
type MemoryRecorder struct {
	mu      sync.Mutex
	limit   int
	samples []Sample
}

// NewMemoryRecorder returns a MemoryRecorder keeping at most limit samples
func NewMemoryRecorder(limit int) *MemoryRecorder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryRecorder{limit: limit}
}

// Record implements Recorder
func (m *MemoryRecorder) Record(_ context.Context, s Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples = append(m.samples, s)
	if len(m.samples) > m.limit {
		m.samples = append(m.samples[:0:0], m.samples[len(m.samples)-m.limit:]...)
	}
	return nil
}

// Samples returns a copy of the kept samples, oldest first
func (m *MemoryRecorder) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.samples...)
}

// Summary aggregates the kept samples
func (m *MemoryRecorder) Summary() *Summary {
	return Summarize(m.Samples())
}

// Summarize aggregates samples, which must be oldest first
func Summarize(samples []Sample) *Summary {
	s := &Summary{Count: len(samples)}
	if len(samples) == 0 {
		return s
	}

	last := samples[len(samples)-1]
	s.Last = &last

	var live int
	for _, sample := range samples {
		s.AvgLatencyMS += float64(sample.LatencyMS)
		s.AvgStreamMS += float64(sample.StreamMS)
		s.AvgChars += float64(sample.Chars)
		s.AvgTokens += float64(sample.Tokens)
		if sample.FallbackReason != "" {
			s.FallbackCount++
		}
		if sample.Source == api.SourceLive {
			live++
		}
	}

	n := float64(len(samples))
	s.AvgLatencyMS /= n
	s.AvgStreamMS /= n
	s.AvgChars /= n
	s.AvgTokens /= n
	s.LiveRatio = float64(live) / n
	return s
}
