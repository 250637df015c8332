// Package logging provides the structured, leveled logger used across the
// Coordinator: every package gets a named *Logger via GetLogger, and the
// process wires an actual sink (writer, level, format) once, at startup,
// via Init. Loggers requested before Init runs still work — they sit
// behind a log.SwapLogger that gets swapped to the real sink in place;
// lines they emit before Init are discarded, not buffered.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Format selects how log lines are rendered.
type Format uint

const (
	// FmtLogfmt renders lines as logfmt (key=value pairs).
	FmtLogfmt Format = iota
	// FmtJSON renders lines as JSON objects.
	FmtJSON
)

// ParseFormat parses a Format from its config-file/flag spelling.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "LOGFMT":
		return FmtLogfmt, nil
	case "JSON":
		return FmtJSON, nil
	}
	return FmtLogfmt, fmt.Errorf("logging: unrecognized format %q", s)
}

// Level is a minimum severity threshold.
type Level uint

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel parses a Level from its config-file/flag spelling.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelError, fmt.Errorf("logging: unrecognized level %q", s)
}

func (l Level) filterOption() level.Option {
	switch l {
	case LevelDebug:
		return level.AllowDebug()
	case LevelInfo:
		return level.AllowInfo()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	default:
		panic("logging: unhandled level")
	}
}

// sink is the process-wide logging state: the go-kit logger every named
// Logger derives its output from, plus the loggers handed out before Init
// ran (so they can be swapped to the real thing in place once it does).
type sink struct {
	mu sync.Mutex

	base  log.Logger
	level Level
	ready bool

	pending []*log.SwapLogger
}

var theSink = &sink{
	base:  log.NewNopLogger(),
	level: LevelError,
}

// Init points the logging sink at w, rendered in format and filtered to
// lvl. A nil w discards everything. Init may be called exactly once; later
// calls return an error rather than silently re-pointing an already-running
// process's log output.
func Init(w io.Writer, lvl Level, format Format) error {
	theSink.mu.Lock()
	defer theSink.mu.Unlock()

	if theSink.ready {
		return fmt.Errorf("logging: already initialized")
	}

	base := theSink.base
	if w != nil {
		sw := log.NewSyncWriter(w)
		switch format {
		case FmtLogfmt:
			base = log.NewLogfmtLogger(sw)
		case FmtJSON:
			base = log.NewJSONLogger(sw)
		default:
			return fmt.Errorf("logging: unhandled format %v", format)
		}
	}
	base = level.NewFilter(base, lvl.filterOption())
	base = log.With(base, "ts", log.DefaultTimestampUTC)

	theSink.base = base
	theSink.level = lvl
	theSink.ready = true

	for _, swappable := range theSink.pending {
		swappable.Swap(base)
	}
	theSink.pending = nil
	return nil
}

// Initialize is an alias for Init kept for call sites that predate the
// shorter name.
func Initialize(w io.Writer, lvl Level, format Format) error {
	return Init(w, lvl, format)
}

// Logger writes leveled, keyvals-tagged log lines for one named module.
type Logger struct {
	module string
	base   log.Logger
}

// GetLogger returns the Logger for the named module. Safe to call before
// Init; the returned Logger starts emitting through the real sink as soon
// as Init runs.
func GetLogger(module string) *Logger {
	theSink.mu.Lock()
	defer theSink.mu.Unlock()

	base := theSink.base
	if !theSink.ready {
		swappable := &log.SwapLogger{}
		theSink.pending = append(theSink.pending, swappable)
		base = swappable
	}

	// log.Caller(5) accounts for this package's own two frames (the
	// Debug/Info/Warn/Error wrapper and emit) in addition to the three
	// go-kit frames it normally skips.
	return &Logger{
		module: module,
		base:   log.WithPrefix(base, "module", module, "caller", log.Caller(5)),
	}
}

func (l *Logger) emit(lvl Level, msg string, keyvals []interface{}) {
	if theSink.level > lvl {
		return
	}
	line := append([]interface{}{"msg", msg}, keyvals...)
	var leveled func(log.Logger) log.Logger
	switch lvl {
	case LevelDebug:
		leveled = level.Debug
	case LevelInfo:
		leveled = level.Info
	case LevelWarn:
		leveled = level.Warn
	default:
		leveled = level.Error
	}
	_ = leveled(l.base).Log(line...)
}

// Debug logs msg and keyvals at LevelDebug.
func (l *Logger) Debug(msg string, keyvals ...interface{}) { l.emit(LevelDebug, msg, keyvals) }

// Info logs msg and keyvals at LevelInfo.
func (l *Logger) Info(msg string, keyvals ...interface{}) { l.emit(LevelInfo, msg, keyvals) }

// Warn logs msg and keyvals at LevelWarn.
func (l *Logger) Warn(msg string, keyvals ...interface{}) { l.emit(LevelWarn, msg, keyvals) }

// Error logs msg and keyvals at LevelError.
func (l *Logger) Error(msg string, keyvals ...interface{}) { l.emit(LevelError, msg, keyvals) }

// With returns a copy of l that tags every line it emits with the given
// keyvals in addition to its own.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{module: l.module, base: log.With(l.base, keyvals...)}
}

// WithRound returns a copy of l tagged with "round", round — the
// coordinator and heartbeat call sites log against a round number often
// enough to warrant not spelling out "round", roundNumber at every call.
func (l *Logger) WithRound(round uint64) *Logger {
	return l.With("round", round)
}
