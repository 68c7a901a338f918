package chatbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/generator"
	"github.com/korylprince/chat-transport/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	chat   func(ctx context.Context) (string, error)
	stream func(ctx context.Context, w io.Writer)
	calls  int
}

func (f *fakeRemote) Chat(ctx context.Context, _ []api.Message, _ bool) (string, error) {
	f.calls++
	return f.chat(ctx)
}

// ChatStream runs f.stream in the background, feeding a FrameReader. The stream is cut
// when ctx is done, like an HTTP body.
func (f *fakeRemote) ChatStream(ctx context.Context, _ []api.Message, _ bool) (*FrameReader, error) {
	f.calls++
	pr, pw := io.Pipe()
	go func() {
		f.stream(ctx, pw)
		pw.Close()
	}()
	go func() {
		<-ctx.Done()
		pw.CloseWithError(context.Cause(ctx))
	}()
	return NewFrameReader(pr), nil
}

func writeChunks(w io.Writer, chunks ...string) {
	for _, c := range chunks {
		fmt.Fprintf(w, "event: chunk\ndata: %q\n\n", c)
	}
}

// blockUntilDone waits for the stream to be cut and returns its cause
func blockUntilDone(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", &api.Error{Description: "request failed", Type: api.ErrorTypeNetwork, Err: ctx.Err()}
}

func newTestTransport(remote Remote) (*Transport, *telemetry.MemoryRecorder) {
	tr := NewTransport(remote, generator.New(generator.DefaultCatalog()), nil)
	tr.Pacing = zeroPacing
	tr.intn = fixedIntn(1)
	rec := telemetry.NewMemoryRecorder(0)
	tr.Recorder = rec
	return tr, rec
}

var dockerQuestion = []api.Message{{Role: api.RoleUser, Content: "How do I set up docker for my app?"}}

type collector struct {
	chunks []string
}

func (c *collector) onChunk(s string) {
	c.chunks = append(c.chunks, s)
}

func (c *collector) text() string {
	return strings.Join(c.chunks, "")
}

func TestTransportPreCancelled(t *testing.T) {
	remote := &fakeRemote{}
	tr, rec := newTestTransport(remote)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var c collector
	res, err := tr.Chat(ctx, dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, remote.calls)
	assert.Empty(t, c.chunks)
	assert.Empty(t, rec.Samples())
}

func TestTransportLive(t *testing.T) {
	remote := &fakeRemote{chat: func(context.Context) (string, error) { return "Live answer.", nil }}
	tr, rec := newTestTransport(remote)

	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true})
	require.NoError(t, err)
	assert.Equal(t, "Live answer.", res.Reply)
	assert.Equal(t, api.Meta{Source: api.SourceLive, QualityMode: true}, res.Meta)

	samples := rec.Samples()
	require.Len(t, samples, 1)
	assert.Equal(t, api.SourceLive, samples[0].Source)
	assert.Equal(t, 1, samples[0].Chunks)
}

func TestTransportTimeoutFallback(t *testing.T) {
	assert.Equal(t, 2200*time.Millisecond, DefaultTimeouts.Request)
	assert.Equal(t, 12*time.Second, DefaultTimeouts.Stream)

	remote := &fakeRemote{chat: blockUntilDone}
	tr, _ := newTestTransport(remote)
	tr.Timeouts.Request = 30 * time.Millisecond

	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
	assert.Contains(t, res.Meta.FallbackReason, "timeout")
	assert.Contains(t, res.Meta.FallbackReason, "30ms")
	assert.Contains(t, res.Reply, "Docker")
}

func TestTransportFallbackReasons(t *testing.T) {
	tests := []struct {
		name   string
		chat   func(context.Context) (string, error)
		reason string
	}{
		{
			name: "status",
			chat: func(context.Context) (string, error) {
				return "", &api.Error{Description: "status 503", Type: api.ErrorTypeStatus, StatusCode: 503}
			},
			reason: "status 503",
		},
		{
			name: "network",
			chat: func(context.Context) (string, error) {
				return "", &api.Error{Description: "request failed", Type: api.ErrorTypeNetwork, Err: errors.New("refused")}
			},
			reason: "request failed",
		},
		{
			name:   "unknown error",
			chat:   func(context.Context) (string, error) { return "", errors.New("boom") },
			reason: "request failed",
		},
		{
			name:   "placeholder text",
			chat:   func(context.Context) (string, error) { return "Demo mode: add your OpenAI API key to get real answers.", nil },
			reason: "demo mode",
		},
		{
			name:   "empty",
			chat:   func(context.Context) (string, error) { return "  \n", nil },
			reason: "empty or malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTestTransport(&fakeRemote{chat: tt.chat})

			res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true})
			require.NoError(t, err)
			assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
			assert.Contains(t, res.Meta.FallbackReason, tt.reason)
			assert.NotEmpty(t, res.Reply)
			assert.NotContains(t, strings.ToLower(res.Reply), "demo mode")
		})
	}
}

func TestTransportNotConfigured(t *testing.T) {
	tr, _ := newTestTransport(nil)

	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
	assert.Contains(t, res.Meta.FallbackReason, "not configured")

	res, err = tr.Chat(context.Background(), dockerQuestion, Options{})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalLite, res.Meta.Source)
	assert.Empty(t, res.Meta.FallbackReason)
}

func TestTransportLiteSkipsRemote(t *testing.T) {
	remote := &fakeRemote{chat: func(context.Context) (string, error) { return "live", nil }}
	tr, _ := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Zero(t, remote.calls)
	assert.Equal(t, api.Meta{Source: api.SourceLocalLite, Streamed: true}, res.Meta)
	assert.Equal(t, res.Reply, c.text())
}

func TestTransportLiveStream(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("word%02d ", i))
	}
	remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
		writeChunks(w, words...)
		io.WriteString(w, "event: done\ndata: {}\n\n")
	}}
	tr, rec := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.Meta{Source: api.SourceLive, Streamed: true, QualityMode: true}, res.Meta)
	assert.Equal(t, strings.Join(words, ""), res.Reply)
	assert.Equal(t, res.Reply, c.text())

	// the first chunk carries the probe window
	require.NotEmpty(t, c.chunks)
	assert.GreaterOrEqual(t, len(c.chunks[0]), probeWindow)
	assert.Equal(t, "word39 ", c.chunks[len(c.chunks)-1])
	assert.Equal(t, len(c.chunks), rec.Samples()[0].Chunks)
}

func TestTransportShortLiveStream(t *testing.T) {
	remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
		writeChunks(w, "Hello", " world")
		io.WriteString(w, "event: done\n\n")
	}}
	tr, _ := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLive, res.Meta.Source)
	assert.Equal(t, []string{"Hello world"}, c.chunks)
}

func TestTransportPlaceholderStream(t *testing.T) {
	remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
		writeChunks(w, "This is a demo response. ", "Add your OpenAI API key ", "to enable real answers.")
		io.WriteString(w, "event: done\n\n")
	}}
	tr, _ := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
	assert.Contains(t, res.Meta.FallbackReason, "demo mode")
	assert.Equal(t, res.Reply, c.text(), "only the local reply reaches the caller")
}

func TestTransportBlankLiveStream(t *testing.T) {
	for _, blank := range []string{"   ", strings.Repeat(" \n", probeWindow)} {
		remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
			writeChunks(w, blank)
			io.WriteString(w, "event: done\n\n")
		}}
		tr, _ := newTestTransport(remote)

		var c collector
		res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
		require.NoError(t, err)
		assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
		assert.Contains(t, res.Meta.FallbackReason, "empty or malformed")
		assert.Equal(t, res.Reply, c.text(), "blank live text must not reach the caller")
	}
}

func TestTransportLeadingBlankLiveStream(t *testing.T) {
	lead := strings.Repeat(" ", probeWindow+10)
	remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
		writeChunks(w, lead, "Hello", " world")
		io.WriteString(w, "event: done\n\n")
	}}
	tr, _ := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLive, res.Meta.Source)
	assert.Equal(t, lead+"Hello world", c.text())
	assert.Equal(t, res.Reply, c.text())
}

func TestTransportStreamErrorFrame(t *testing.T) {
	remote := &fakeRemote{stream: func(_ context.Context, w io.Writer) {
		io.WriteString(w, "event: error\ndata: {\"error\":\"overloaded\"}\n\n")
	}}
	tr, _ := newTestTransport(remote)

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
	assert.Contains(t, res.Meta.FallbackReason, "empty or malformed")
	assert.Equal(t, res.Reply, c.text())
}

func TestTransportStreamTimeoutBeforeContent(t *testing.T) {
	remote := &fakeRemote{stream: func(ctx context.Context, _ io.Writer) { <-ctx.Done() }}
	tr, _ := newTestTransport(remote)
	tr.Timeouts.Stream = 30 * time.Millisecond

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLocalSmart, res.Meta.Source)
	assert.Contains(t, res.Meta.FallbackReason, "timeout")
	assert.Equal(t, res.Reply, c.text())
}

func TestTransportStreamTimeoutAfterContent(t *testing.T) {
	long := strings.Repeat("a", probeWindow+10)
	remote := &fakeRemote{stream: func(ctx context.Context, w io.Writer) {
		writeChunks(w, long)
		<-ctx.Done()
	}}
	tr, _ := newTestTransport(remote)
	tr.Timeouts.Stream = 50 * time.Millisecond

	var c collector
	res, err := tr.Chat(context.Background(), dockerQuestion, Options{QualityMode: true, OnChunk: c.onChunk})
	require.NoError(t, err)
	assert.Equal(t, api.SourceLive, res.Meta.Source)
	assert.Equal(t, long, res.Reply)
	assert.Equal(t, []string{long}, c.chunks)
}

func TestTransportCancelDuringLiveStream(t *testing.T) {
	remote := &fakeRemote{stream: func(ctx context.Context, w io.Writer) {
		for i := 0; ctx.Err() == nil; i++ {
			if _, err := fmt.Fprintf(w, "event: chunk\ndata: %q\n\n", strings.Repeat("x", 50)); err != nil {
				return
			}
		}
	}}
	tr, rec := newTestTransport(remote)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var c collector
	res, err := tr.Chat(ctx, dockerQuestion, Options{QualityMode: true, OnChunk: func(s string) {
		c.onChunk(s)
		cancel()
	}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Len(t, c.chunks, 1, "nothing is delivered after the cancellation")
	assert.Empty(t, rec.Samples())
}

func TestTransportCancelDuringLocalStream(t *testing.T) {
	tr, _ := newTestTransport(nil)
	tr.Pacing = Pacing{PieceMin: time.Millisecond, PieceMax: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var c collector
	res, err := tr.Chat(ctx, dockerQuestion, Options{QualityMode: true, OnChunk: func(s string) {
		c.onChunk(s)
		cancel()
	}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Len(t, c.chunks, 1)
}

func TestTransportCancelDuringLatency(t *testing.T) {
	tr, _ := newTestTransport(nil)
	tr.Pacing = Pacing{LatencyLiteMin: time.Minute, LatencyLiteMax: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := tr.Chat(ctx, dockerQuestion, Options{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestTransportCancelDuringRemoteRequest(t *testing.T) {
	remote := &fakeRemote{chat: blockUntilDone}
	tr, _ := newTestTransport(remote)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	res, err := tr.Chat(ctx, dockerQuestion, Options{QualityMode: true})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled, "a user stop is never converted into a fallback")
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, telemetry.Sample) error {
	return errors.New("sink down")
}

func TestTransportRecorderFailure(t *testing.T) {
	tr, _ := newTestTransport(nil)
	tr.Recorder = failingRecorder{}

	res, err := tr.Chat(context.Background(), dockerQuestion, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reply)
}

func TestFallbackReason(t *testing.T) {
	assert.Equal(t, "Live API request hit the 2.2s timeout. Using local smart fallback.",
		fallbackReason(&api.Error{Type: api.ErrorTypeTimeout}, DefaultTimeouts.Request))
	assert.Equal(t, "Live API request failed (status 429). Using local smart fallback.",
		fallbackReason(fmt.Errorf("wrapped: %w", &api.Error{Type: api.ErrorTypeStatus, StatusCode: 429}), 0))
}
