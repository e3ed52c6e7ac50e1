package fsm

import (
	"context"
	"io"
	"log/slog"

	"github.com/enetx/g"
)

// Messages written by a Machine to its Logger.
//
// MsgCallAction is written whenever a non-nil action is handed the argument
// list, including when an action bound with Invoke then skips the call.
const (
	MsgNewEvent         g.String = "New event: "
	MsgChangeState      g.String = "Change state to "
	MsgCallAction       g.String = "Calling an action..."
	MsgAttemptStateCall g.String = "Attempt to call an action for: "
	MsgNewGuard         g.String = "New guard: "
)

// Logger observes a machine: raised events, guard selections, state changes
// and action invocations.
//
// WriteSubject carries the name of the state, event or guard the message is about.
type Logger interface {
	Write(message g.String)
	WriteSubject(message, subject g.String)
}

// NoopLogger discards everything. It is the default Logger of a Machine.
type NoopLogger struct{}

func (NoopLogger) Write(g.String) {}
func (NoopLogger) WriteSubject(g.String, g.String) {}

// WriterLogger writes one line per notification to an io.Writer:
// the message immediately followed by the subject, if any.
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger returns a Logger printing to w.
func NewWriterLogger(w io.Writer) *WriterLogger { return &WriterLogger{w: w} }

func (l *WriterLogger) Write(message g.String) {
	_, _ = io.WriteString(l.w, string(message+"\n"))
}

func (l *WriterLogger) WriteSubject(message, subject g.String) {
	_, _ = io.WriteString(l.w, string(message+subject+"\n"))
}

// SlogLogger forwards notifications to a *slog.Logger at a fixed level.
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger returns a Logger writing debug records to logger.
// A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger, level: slog.LevelDebug}
}

// Level changes the level records are written at.
func (l *SlogLogger) Level(level slog.Level) *SlogLogger {
	l.level = level
	return l
}

func (l *SlogLogger) Write(message g.String) {
	l.logger.Log(context.Background(), l.level, string(message))
}

func (l *SlogLogger) WriteSubject(message, subject g.String) {
	l.logger.Log(context.Background(), l.level, string(message), slog.String("subject", string(subject)))
}
