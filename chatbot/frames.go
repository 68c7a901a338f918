package chatbot

import (
	"io"
	"strings"

	"github.com/korylprince/chat-transport/api"
)

const readBufferSize = 4096

// FrameDecoder turns raw text fragments into frames. Fragments may end anywhere,
// including mid-line; the unterminated tail is carried over to the next Feed.
type FrameDecoder struct {
	carry string
}

// Feed appends fragment to the carry-over buffer and returns every complete frame in it
func (d *FrameDecoder) Feed(fragment string) []Frame {
	d.carry += strings.ReplaceAll(fragment, "\r", "")

	var frames []Frame
	for {
		i := strings.Index(d.carry, "\n\n")
		if i < 0 {
			break
		}
		block := d.carry[:i]
		d.carry = d.carry[i+2:]
		if f, ok := parseFrame(block); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// Flush returns the frame left in the buffer when the input ended without a trailing blank line
func (d *FrameDecoder) Flush() (Frame, bool) {
	block := d.carry
	d.carry = ""
	return parseFrame(block)
}

func parseFrame(block string) (Frame, bool) {
	var event string
	var data []string
	hasData := false

	for _, line := range strings.Split(block, "\n") {
		switch {
		case line == "" || strings.HasPrefix(line, ":"):
			// blank or comment
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(line[len("data:"):], " "))
			hasData = true
		}
	}

	if event == "" && !hasData {
		return Frame{}, false
	}
	if event == "" {
		event = EventMessage
	}

	joined := strings.Join(data, "\n")
	return Frame{Event: event, Data: joined, Payload: decodePayload(joined)}, true
}

// FrameReader lazily decodes frames from a stream body. Input is only read once every
// frame decoded from earlier reads has been returned.
type FrameReader struct {
	r       io.ReadCloser
	dec     FrameDecoder
	pending []Frame
	buf     []byte
	eof     bool
}

// NewFrameReader returns a FrameReader reading from r. Close closes r.
func NewFrameReader(r io.ReadCloser) *FrameReader {
	return &FrameReader{r: r, buf: make([]byte, readBufferSize)}
}

func newStaticFrameReader(frames ...Frame) *FrameReader {
	return &FrameReader{r: io.NopCloser(strings.NewReader("")), pending: frames, eof: true}
}

// Next returns the next frame, or io.EOF once the input is exhausted
func (fr *FrameReader) Next() (Frame, error) {
	for len(fr.pending) == 0 {
		if fr.eof {
			return Frame{}, io.EOF
		}

		n, err := fr.r.Read(fr.buf)
		if n > 0 {
			fr.pending = append(fr.pending, fr.dec.Feed(string(fr.buf[:n]))...)
		}
		if err == io.EOF {
			fr.eof = true
			if f, ok := fr.dec.Flush(); ok {
				fr.pending = append(fr.pending, f)
			}
			continue
		}
		if err != nil {
			return Frame{}, err
		}
	}

	f := fr.pending[0]
	fr.pending = fr.pending[1:]
	return f, nil
}

// Close releases the underlying stream
func (fr *FrameReader) Close() error {
	return fr.r.Close()
}

// ReadStream drains fr, passing the text of each chunk frame to onText in arrival order,
// and returns the accumulated text.
//
// A done frame ends the stream. An error frame, or input ending without a terminal frame,
// fails only when nothing was accumulated; otherwise the accumulated text is the result.
// Read errors are returned as-is together with whatever text was accumulated.
func ReadStream(fr *FrameReader, onText func(string)) (string, error) {
	var sb strings.Builder

	for {
		f, err := fr.Next()
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", &api.Error{Description: "stream ended without content", Type: api.ErrorTypeStream}
			}
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}

		switch f.Event {
		case EventChunk:
			text := f.Text()
			if text == "" {
				continue
			}
			sb.WriteString(text)
			if onText != nil {
				onText(text)
			}
		case EventDone:
			return sb.String(), nil
		case EventError:
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", &api.Error{Description: f.ErrorText(), Type: api.ErrorTypeStream}
		}
	}
}
