// Package logging is nest's levelled, structured logger. Messages go to
// stderr through zerolog's console writer; user-facing output lives in the
// output package.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ForVerbosity maps the --verbose flag to a level.
func ForVerbosity(verbose bool) Level {
	if verbose {
		return LevelDebug
	}
	return LevelWarn
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type zerologLogger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

// NewLogger creates a logger writing human-readable lines to out.
// Colors are used only when out is a terminal.
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}

	noColor := true
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		noColor = false
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	return &zerologLogger{
		zl: zerolog.New(writer).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return &zerologLogger{zl: zerolog.Nop()}
}

func (l *zerologLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = l.zl.Level(level.zerolog())
}

func (l *zerologLogger) WithFields(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) {
	l.log(zerolog.DebugLevel, msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...Field) {
	l.log(zerolog.InfoLevel, msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...Field) {
	l.log(zerolog.WarnLevel, msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...Field) {
	l.log(zerolog.ErrorLevel, msg, fields)
}

func (l *zerologLogger) log(level zerolog.Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.zl.WithLevel(level)
	if e == nil {
		return
	}
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			e = e.AnErr(f.Key, err)
			continue
		}
		e = e.Interface(f.Key, f.Value)
	}
	e.Msg(msg)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger(LevelWarn, os.Stderr)
)

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Setup installs a stderr logger at the level matching verbose.
func Setup(verbose bool) Logger {
	l := NewLogger(ForVerbosity(verbose), os.Stderr)
	SetDefault(l)
	return l
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
