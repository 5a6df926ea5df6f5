// Package notify delivers the short user-facing messages that follow an
// operation: a success line after a save, an error line when a call fails.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier is the toast surface shared by forms, views and the session
// store.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ---------------------------------------------------------------------------
// Writer
// ---------------------------------------------------------------------------

// Writer prints one line per notification. Errors are also logged so they
// end up in the log file when file output is enabled.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

func NewWriter(out io.Writer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{out: out, logger: logger}
}

func (w *Writer) Success(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "✔ %s\n", msg)
}

func (w *Writer) Error(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "✖ %s\n", msg)
	w.logger.Warn("notification", "level", LevelError, "message", msg)
}

// ---------------------------------------------------------------------------
// Recorder
// ---------------------------------------------------------------------------

type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

// Messages returns a copy of what has been recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Errors returns the text of every error notification.
func (r *Recorder) Errors() []string {
	var out []string
	for _, m := range r.Messages() {
		if m.Level == LevelError {
			out = append(out, m.Text)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
