package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/generator"
	"github.com/korylprince/chat-transport/telemetry"
)

// probeWindow is how many bytes of a live stream are held back and checked for placeholder
// markers before anything reaches the caller
const probeWindow = 240

// Remote is the live chat service. *Client implements it.
type Remote interface {
	Chat(ctx context.Context, messages []api.Message, qualityMode bool) (string, error)
	ChatStream(ctx context.Context, messages []api.Message, qualityMode bool) (*FrameReader, error)
}

// Timeouts bound a single remote attempt
type Timeouts struct {
	Request time.Duration
	Stream  time.Duration
}

// DefaultTimeouts are the timeouts used by NewTransport
var DefaultTimeouts = Timeouts{
	Request: 2200 * time.Millisecond,
	Stream:  12 * time.Second,
}

// Options control one Chat call
type Options struct {
	QualityMode bool

	// OnChunk receives the reply incrementally, in order. A nil OnChunk requests a non-streamed reply.
	OnChunk func(string)
}

// Transport turns a conversation into a reply, trying the remote service first in smart mode
// and falling back to the local generator when it fails. It is safe for concurrent use.
type Transport struct {
	remote    Remote
	generator *generator.Generator
	logger    *slog.Logger
	intn      func(int) int

	Timeouts Timeouts
	Pacing   Pacing

	// Recorder, if set, receives a sample for every result
	Recorder telemetry.Recorder
}

// NewTransport returns a Transport. remote may be nil when no live service is configured.
func NewTransport(remote Remote, gen *generator.Generator, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transport{
		remote:    remote,
		generator: gen,
		logger:    logger,
		intn:      rand.IntN,
		Timeouts:  DefaultTimeouts,
		Pacing:    DefaultPacing,
	}
}

// delivery forwards chunks to the caller and tracks what was delivered
type delivery struct {
	onChunk func(string)
	chunks  int
	first   time.Time
	text    strings.Builder
}

func (d *delivery) streaming() bool {
	return d.onChunk != nil
}

func (d *delivery) deliver(text string) {
	if d.chunks == 0 {
		d.first = time.Now()
	}
	d.chunks++
	d.text.WriteString(text)
	d.onChunk(text)
}

// Chat returns exactly one Result for messages, or an error wrapping ErrCancelled if ctx is
// cancelled first. Remote failures never produce an error; they produce a local reply with
// Meta.FallbackReason set. Chunks already passed to OnChunk before a cancellation are not resent.
func (t *Transport) Chat(ctx context.Context, messages []api.Message, opts Options) (*api.Result, error) {
	if ctx.Err() != nil {
		return nil, cancelled(ctx)
	}

	started := time.Now()
	messages = api.NormalizeMessages(messages)
	d := &delivery{onChunk: opts.OnChunk}
	meta := api.Meta{Streamed: d.streaming(), QualityMode: opts.QualityMode, Source: api.SourceLocalLite}

	if opts.QualityMode {
		reply, err := t.attemptRemote(ctx, messages, d)
		if err == nil {
			meta.Source = api.SourceLive
			return t.finish(ctx, reply, meta, started, d), nil
		}
		if errors.Is(err, ErrCancelled) {
			return nil, err
		}

		meta.Source = api.SourceLocalSmart
		meta.FallbackReason = fallbackReason(err, t.timeoutFor(d))
		t.logger.Warn("live reply failed, using local fallback", "reason", meta.FallbackReason, "error", err)
	}

	reply := t.generator.Reply(messages, opts.QualityMode)
	if d.streaming() {
		sim := &Simulator{Pacing: t.Pacing, intn: t.intn}
		if err := sim.Stream(ctx, reply, opts.QualityMode, d.deliver); err != nil {
			return nil, err
		}
	} else if err := sleep(ctx, t.Pacing.Latency(opts.QualityMode, t.intn)); err != nil {
		return nil, err
	}

	return t.finish(ctx, reply, meta, started, d), nil
}

func (t *Transport) timeoutFor(d *delivery) time.Duration {
	if d.streaming() {
		return t.Timeouts.Stream
	}
	return t.Timeouts.Request
}

func (t *Transport) finish(ctx context.Context, reply string, meta api.Meta, started time.Time, d *delivery) *api.Result {
	res := &api.Result{Reply: reply, Meta: meta}
	t.logger.Debug("chat reply", "source", meta.Source, "streamed", meta.Streamed, "chunks", d.chunks, "chars", len(reply))

	if t.Recorder != nil {
		sample := telemetry.NewSample(res, started, d.first, time.Now(), d.chunks)
		if err := t.Recorder.Record(context.WithoutCancel(ctx), sample); err != nil {
			t.logger.Warn("could not record telemetry", "error", err)
		}
	}
	return res
}

// attemptRemote makes one supervised remote call. It returns an error wrapping ErrCancelled
// if ctx was cancelled, or the remote failure otherwise.
func (t *Transport) attemptRemote(ctx context.Context, messages []api.Message, d *delivery) (string, error) {
	if t.remote == nil {
		return "", &api.Error{Description: "no remote endpoint", Type: api.ErrorTypeNotConfigured}
	}

	sup := Supervise(ctx, t.timeoutFor(d))
	defer sup.Release()

	var (
		reply string
		err   error
	)
	if d.streaming() {
		reply, err = t.streamRemote(sup.Context(), messages, d)
	} else {
		reply, err = t.remote.Chat(sup.Context(), messages, true)
	}

	if err != nil {
		switch {
		case sup.Reason() == AbortUserCancelled:
			return "", cancelled(ctx)
		case d.chunks > 0:
			// the caller already shows part of the live reply
			t.logger.Warn("live stream truncated", "error", err, "chars", d.text.Len())
			return d.text.String(), nil
		case sup.Reason() == AbortTimedOut:
			return "", &api.Error{Description: fmt.Sprintf("no reply within %s", sup.Timeout()), Type: api.ErrorTypeTimeout, Err: err}
		}
		return "", err
	}

	if strings.TrimSpace(reply) == "" {
		return "", &api.Error{Description: "empty reply", Type: api.ErrorTypeStream}
	}
	if d.chunks == 0 && IsPlaceholderReply(reply) {
		return "", &api.Error{Description: "reply contains placeholder markers", Type: api.ErrorTypePlaceholder}
	}
	return reply, nil
}

var errPlaceholderStream = errors.New("placeholder stream rejected")

// streamRemote reads a live stream, holding back the first probeWindow bytes until they pass
// the placeholder check
func (t *Transport) streamRemote(ctx context.Context, messages []api.Message, d *delivery) (string, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	fr, err := t.remote.ChatStream(ctx, messages, true)
	if err != nil {
		return "", err
	}
	defer fr.Close()

	// frames decoded before a cancellation or timeout must not reach the caller
	deliver := func(text string) {
		if ctx.Err() == nil {
			d.deliver(text)
		}
	}
	p := &probe{deliver: deliver, reject: func() { cancel(errPlaceholderStream) }}
	reply, err := ReadStream(fr, p.write)
	if p.rejected {
		return "", &api.Error{Description: "stream contains placeholder markers", Type: api.ErrorTypePlaceholder}
	}
	if err != nil {
		return reply, err
	}
	if !p.released && p.blank() {
		// nothing was delivered, so the local fallback starts clean
		return "", &api.Error{Description: "stream contained only whitespace", Type: api.ErrorTypeStream}
	}
	if !p.release() {
		return "", &api.Error{Description: "stream contains placeholder markers", Type: api.ErrorTypePlaceholder}
	}
	if ctx.Err() != nil {
		return d.text.String(), context.Cause(ctx)
	}
	return reply, nil
}

// probe withholds streamed text until enough of it has passed the placeholder check.
// Text that is only whitespace is never released.
type probe struct {
	held     strings.Builder
	released bool
	rejected bool
	deliver  func(string)
	reject   func()
}

func (p *probe) write(text string) {
	switch {
	case p.rejected:
		return
	case p.released:
		p.deliver(text)
		return
	}

	p.held.WriteString(text)
	if p.held.Len() >= probeWindow && !p.blank() {
		p.release()
	}
}

func (p *probe) blank() bool {
	return strings.TrimSpace(p.held.String()) == ""
}

// release checks the held text and delivers it. It returns false if the text was rejected.
func (p *probe) release() bool {
	if p.released {
		return true
	}
	if p.rejected || IsPlaceholderReply(p.held.String()) {
		if !p.rejected {
			p.rejected = true
			p.reject()
		}
		return false
	}

	p.released = true
	if p.held.Len() > 0 {
		p.deliver(p.held.String())
	}
	p.held.Reset()
	return true
}

// fallbackReason is the user-facing status text for a remote failure
func fallbackReason(err error, timeout time.Duration) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return "Live API request failed. Using local smart fallback."
	}

	switch apiErr.Type {
	case api.ErrorTypeTimeout:
		return fmt.Sprintf("Live API request hit the %s timeout. Using local smart fallback.", timeout)
	case api.ErrorTypeStatus:
		return fmt.Sprintf("Live API request failed (status %d). Using local smart fallback.", apiErr.StatusCode)
	case api.ErrorTypeStream:
		return "Live API returned an empty or malformed reply. Using local smart fallback."
	case api.ErrorTypePlaceholder:
		return "Live API is in demo mode (no API key). Using local smart fallback."
	case api.ErrorTypeNotConfigured:
		return "Live API not configured. Using local smart fallback."
	}
	return "Live API request failed. Using local smart fallback."
}
