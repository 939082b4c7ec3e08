package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Writer emits the framing that Reassembler consumes. Each record is flushed
// immediately when the underlying writer supports it, so consumers see
// increments as they are produced.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter wraps w. If w is an http.ResponseWriter the SSE content-type
// headers are set before the first record.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/event-stream")
		rw.Header().Set("Cache-Control", "no-cache")
		rw.Header().Set("Connection", "keep-alive")
	}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// Content writes a content increment record.
func (w *Writer) Content(text string) error {
	return w.record(envelope{Content: text})
}

// Error writes an error envelope. The consumer treats it as a generation
// failure and stops reading.
func (w *Writer) Error(message string) error {
	return w.record(envelope{Error: message})
}

// Done writes the end-of-stream sentinel.
func (w *Writer) Done() error {
	if _, err := fmt.Fprintf(w.w, "%s%s\n\n", dataPrefix, doneSentinel); err != nil {
		return err
	}
	w.flush()
	return nil
}

func (w *Writer) record(env envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode sse record: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, "%s%s\n\n", dataPrefix, payload); err != nil {
		return err
	}
	w.flush()
	return nil
}

func (w *Writer) flush() {
	if w.flusher != nil {
		w.flusher.Flush()
	}
}
