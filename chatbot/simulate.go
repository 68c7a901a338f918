package chatbot

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ErrCancelled is returned when the caller stops an invocation. Errors wrapping it also
// wrap the context's cause (usually context.Canceled).
var ErrCancelled = errors.New("chat cancelled")

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}

// Pacing holds the delays used to make local replies feel like remote ones
type Pacing struct {
	ThinkingSmart time.Duration
	ThinkingLite  time.Duration

	PieceMin time.Duration
	PieceMax time.Duration

	LatencySmartMin time.Duration
	LatencySmartMax time.Duration
	LatencyLiteMin  time.Duration
	LatencyLiteMax  time.Duration
}

// DefaultPacing is the pacing used by NewTransport
var DefaultPacing = Pacing{
	ThinkingSmart: 130 * time.Millisecond,
	ThinkingLite:  75 * time.Millisecond,

	PieceMin: 18 * time.Millisecond,
	PieceMax: 84 * time.Millisecond,

	LatencySmartMin: 550 * time.Millisecond,
	LatencySmartMax: 1350 * time.Millisecond,
	LatencyLiteMin:  240 * time.Millisecond,
	LatencyLiteMax:  500 * time.Millisecond,
}

func uniform(min, max time.Duration, intn func(int) int) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(intn(int(max-min)+1))
}

// Latency picks the synthetic wait before a non-streamed local reply
func (p Pacing) Latency(qualityMode bool, intn func(int) int) time.Duration {
	if qualityMode {
		return uniform(p.LatencySmartMin, p.LatencySmartMax, intn)
	}
	return uniform(p.LatencyLiteMin, p.LatencyLiteMax, intn)
}

// sleep waits d or until ctx is done. ctx is checked even when d is zero.
func sleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return cancelled(ctx)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return cancelled(ctx)
	case <-timer.C:
		return nil
	}
}

var wordPattern = regexp.MustCompile(`\S+\s*`)

// splitPieces cuts text into pieces of 2 to 5 words. A piece stops early after a word
// that ends a sentence or is followed by a line break. Joining the pieces yields text.
func splitPieces(text string, intn func(int) int) []string {
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	lead := text[:len(text)-len(body)]

	words := wordPattern.FindAllString(body, -1)
	var pieces []string
	for i := 0; i < len(words); {
		size := 2 + intn(4)
		end := i
		for end < len(words) && end-i < size {
			end++
			if endsClause(words[end-1]) {
				break
			}
		}
		pieces = append(pieces, strings.Join(words[i:end], ""))
		i = end
	}

	if lead != "" {
		if len(pieces) == 0 {
			return []string{lead}
		}
		pieces[0] = lead + pieces[0]
	}
	return pieces
}

func endsClause(word string) bool {
	if strings.Contains(word, "\n") {
		return true
	}
	trimmed := strings.TrimRightFunc(word, unicode.IsSpace)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ':':
		return true
	}
	return false
}

// Simulator re-streams a complete reply in word-bounded pieces with randomized pacing
type Simulator struct {
	Pacing Pacing
	intn   func(int) int
}

// NewSimulator returns a Simulator using pacing
func NewSimulator(pacing Pacing) *Simulator {
	return &Simulator{Pacing: pacing, intn: rand.IntN}
}

// Stream delivers text to onChunk piece by piece, after a single thinking delay.
// The context is checked before every delay and every piece; once it is done no further
// pieces are delivered and an error wrapping ErrCancelled is returned.
func (s *Simulator) Stream(ctx context.Context, text string, qualityMode bool, onChunk func(string)) error {
	thinking := s.Pacing.ThinkingLite
	if qualityMode {
		thinking = s.Pacing.ThinkingSmart
	}
	if err := sleep(ctx, thinking); err != nil {
		return err
	}

	pieces := splitPieces(text, s.intn)
	for i, piece := range pieces {
		if ctx.Err() != nil {
			return cancelled(ctx)
		}
		onChunk(piece)

		if i == len(pieces)-1 {
			break
		}
		if err := sleep(ctx, uniform(s.Pacing.PieceMin, s.Pacing.PieceMax, s.intn)); err != nil {
			return err
		}
	}
	return nil
}
