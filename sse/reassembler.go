// Package sse implements the server-sent-event framing used between the
// generation endpoint and its consumers: records are lines prefixed
// "data: ", each carrying a small JSON envelope with either a content
// increment or an error, and the stream ends with a "data: [DONE]" sentinel.
//
// The Reassembler consumes the framing and the Writer emits it, so both
// sides of the wire are tested against one definition of the format.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// StreamError is a protocol-level failure carried inside the stream as an
// error envelope. It is distinct from transport failures, which surface as
// ordinary read errors.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return e.Message
}

// envelope is the JSON payload of a single data record.
type envelope struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Reassembler converts raw text chunks into ordered content increments.
// Chunk boundaries carry no meaning: a record may be split across any number
// of chunks and the resulting increments are identical. A Reassembler serves
// exactly one stream; it is not restartable.
type Reassembler struct {
	pending string
	done    bool
}

// NewReassembler creates a reassembler for a single stream.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Done reports whether the stream has terminated, either via the done
// sentinel or an error envelope.
func (r *Reassembler) Done() bool {
	return r.done
}

// Feed consumes the next raw chunk and returns the content increments
// completed by it, in order. A returned StreamError terminates the stream;
// increments that preceded the error envelope are still returned.
//
// Lines that are not data records, and data records whose JSON does not
// parse, are skipped silently: the upstream guarantees line-aligned JSON, so
// a bad line is transient corruption, not a correctness problem.
func (r *Reassembler) Feed(chunk string) ([]string, error) {
	if r.done {
		return nil, nil
	}

	r.pending += chunk

	var increments []string
	for {
		idx := strings.IndexByte(r.pending, '\n')
		if idx < 0 {
			return increments, nil
		}
		line := strings.TrimSuffix(r.pending[:idx], "\r")
		r.pending = r.pending[idx+1:]

		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := line[len(dataPrefix):]

		if payload == doneSentinel {
			r.done = true
			return increments, nil
		}

		var env envelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			continue
		}
		if env.Error != "" {
			r.done = true
			return increments, &StreamError{Message: env.Error}
		}
		if env.Content != "" {
			increments = append(increments, env.Content)
		}
	}
}

// Stream reads body until the stream terminates, sending each content
// increment to chunks in order. It returns a StreamError for an error
// envelope, the read error for a transport failure, and nil on clean
// termination (done sentinel or EOF).
func Stream(ctx context.Context, body io.Reader, chunks chan<- string) error {
	r := NewReassembler()
	buf := make([]byte, 4096)

	for !r.Done() {
		n, readErr := body.Read(buf)
		if n > 0 {
			increments, err := r.Feed(string(buf[:n]))
			for _, inc := range increments {
				select {
				case chunks <- inc:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("stream read failed: %w", readErr)
		}
	}

	return nil
}
