// Package logger provides colored, component-prefixed loggers.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/tilt-maze/config"
)

var ErrNilWriter = errors.New("logger output writer is nil")

// Logger writes "[COMPONENT] [LEVEL] message" lines, with the component
// name in the component's color.
type Logger struct {
	out *log.Logger
}

// New creates a logger for the named component writing to w.
func New(component, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	prefix := fmt.Sprintf("%s[%s]%s ", color, component, config.ColorReset)
	return &Logger{out: log.New(w, prefix, log.LstdFlags|log.Lmsgprefix)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
