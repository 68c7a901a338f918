package chatbot

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/korylprince/chat-transport/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorldStream = "event: chunk\ndata: hello\n\nevent: chunk\ndata: world\n\nevent: done\ndata: {}\n\n"

func chunkTexts(frames []Frame) []string {
	var texts []string
	for _, f := range frames {
		if f.Event == EventChunk {
			texts = append(texts, f.Text())
		}
	}
	return texts
}

func TestFrameDecoderSplitAnywhere(t *testing.T) {
	for i := 0; i <= len(helloWorldStream); i++ {
		for j := i; j <= len(helloWorldStream); j++ {
			var d FrameDecoder
			var frames []Frame
			frames = append(frames, d.Feed(helloWorldStream[:i])...)
			frames = append(frames, d.Feed(helloWorldStream[i:j])...)
			frames = append(frames, d.Feed(helloWorldStream[j:])...)

			require.Equal(t, []string{"hello", "world"}, chunkTexts(frames), "split at %d, %d", i, j)
			require.Equal(t, EventDone, frames[len(frames)-1].Event)
		}
	}
}

func TestFrameDecoderCarriageReturns(t *testing.T) {
	var d FrameDecoder
	frames := d.Feed("event: chunk\r\ndata: {\"text\":\"a\"}\r\n\r\nevent: chunk\r")
	require.Len(t, frames, 1)
	assert.Equal(t, "a", frames[0].Text())

	frames = d.Feed("\ndata: \"b\"\r\n\r\n")
	require.Len(t, frames, 1)
	assert.Equal(t, "b", frames[0].Text())
}

func TestFrameDecoderDefaults(t *testing.T) {
	var d FrameDecoder
	frames := d.Feed(": keep-alive\n\ndata: line one\ndata: line two\n\nevent: error\ndata: {\"error\":\"rate limited\"}\n\n")
	require.Len(t, frames, 2)

	assert.Equal(t, EventMessage, frames[0].Event)
	assert.Equal(t, "line one\nline two", frames[0].Data)
	assert.Equal(t, "rate limited", frames[1].ErrorText())
}

func TestFrameDecoderFlush(t *testing.T) {
	var d FrameDecoder
	assert.Empty(t, d.Feed("event: done"))

	f, ok := d.Flush()
	require.True(t, ok)
	assert.Equal(t, EventDone, f.Event)

	_, ok = d.Flush()
	assert.False(t, ok)
}

func TestFrameText(t *testing.T) {
	tests := []struct {
		data string
		text string
	}{
		{data: `plain text`, text: "plain text"},
		{data: `"quoted"`, text: "quoted"},
		{data: `{"content":"c"}`, text: "c"},
		{data: `{"delta":"d"}`, text: "d"},
		{data: `{"other":"x"}`, text: ""},
		{data: `42`, text: "42"},
	}
	for _, tt := range tests {
		f := Frame{Event: EventChunk, Data: tt.data, Payload: decodePayload(tt.data)}
		assert.Equal(t, tt.text, f.Text(), tt.data)
	}

	assert.Equal(t, "stream error", Frame{Event: EventError}.ErrorText())
	assert.Equal(t, "boom", Frame{Event: EventError, Data: "boom", Payload: "boom"}.ErrorText())
}

func TestFrameReaderOneByteReads(t *testing.T) {
	r := io.NopCloser(iotest.OneByteReader(strings.NewReader(helloWorldStream)))
	fr := NewFrameReader(r)
	defer fr.Close()

	var frames []Frame
	for {
		f, err := fr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
	assert.Equal(t, []string{"hello", "world"}, chunkTexts(frames))
}

func TestReadStream(t *testing.T) {
	var got []string
	fr := NewFrameReader(io.NopCloser(strings.NewReader(helloWorldStream + "event: chunk\ndata: ignored\n\n")))

	text, err := ReadStream(fr, func(s string) { got = append(got, s) })
	require.NoError(t, err)
	assert.Equal(t, "helloworld", text)
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestReadStreamErrorFrame(t *testing.T) {
	fr := NewFrameReader(io.NopCloser(strings.NewReader("event: error\ndata: {\"message\":\"overloaded\"}\n\n")))
	_, err := ReadStream(fr, nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrorTypeStream, apiErr.Type)
	assert.Equal(t, "overloaded", apiErr.Description)

	fr = NewFrameReader(io.NopCloser(strings.NewReader("event: chunk\ndata: partial\n\nevent: error\ndata: cut off\n\n")))
	text, err := ReadStream(fr, nil)
	require.NoError(t, err)
	assert.Equal(t, "partial", text)
}

func TestReadStreamUnterminated(t *testing.T) {
	fr := NewFrameReader(io.NopCloser(strings.NewReader("event: chunk\ndata: no done frame")))
	text, err := ReadStream(fr, nil)
	require.NoError(t, err)
	assert.Equal(t, "no done frame", text)

	fr = NewFrameReader(io.NopCloser(strings.NewReader(": nothing here\n\n")))
	_, err = ReadStream(fr, nil)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrorTypeStream, apiErr.Type)
}

func TestReadStreamReadError(t *testing.T) {
	readErr := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("event: chunk\ndata: partial\n\n"), iotest.ErrReader(readErr))
	fr := NewFrameReader(io.NopCloser(r))

	text, err := ReadStream(fr, nil)
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, "partial", text)
}
