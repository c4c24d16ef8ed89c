// Package ndjson appends one JSON record per line to a log file. The CLI
// uses it to keep a per-session audit trail of coordinator events.
package ndjson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record is one logged coordinator event.
type Record struct {
	Event   string `json:"event"`
	At      string `json:"at"`
	Payload any    `json:"payload,omitempty"`
}

type Writer struct {
	mu sync.Mutex
	f  *os.File
}

// NewWriter opens path for append, creating parent directories. Records
// are written unbuffered so each line is atomic on disk.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &Writer{f: f}, nil
}

func (w *Writer) WriteEvent(event string, payload any) error {
	if w == nil {
		return nil
	}
	return w.write(Record{
		Event:   event,
		At:      time.Now().UTC().Format(time.RFC3339Nano),
		Payload: payload,
	})
}

func (w *Writer) write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	_, err = w.f.Write(b)
	return err
}

func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f != nil {
		err := w.f.Close()
		w.f = nil
		return err
	}
	return nil
}
