// Package fsmzap adapts a zap logger to the fsm.Logger hook.
package fsmzap

import (
	"github.com/enetx/g"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	fsm "github.com/enetx/tablefsm"
)

// Logger writes machine notifications to a *zap.Logger.
type Logger struct {
	logger *zap.Logger
	level  zapcore.Level
}

var _ fsm.Logger = (*Logger)(nil)

// New returns a hook logging at debug level. A nil logger yields a no-op zap logger.
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{logger: logger, level: zapcore.DebugLevel}
}

// WithLevel returns a copy of l that logs at level.
func (l *Logger) WithLevel(level zapcore.Level) *Logger {
	return &Logger{logger: l.logger, level: level}
}

func (l *Logger) Write(message g.String) {
	l.logger.Log(l.level, string(message))
}

func (l *Logger) WriteSubject(message, subject g.String) {
	l.logger.Log(l.level, string(message), zap.String("subject", string(subject)))
}
