// internal/logger/logger.go
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// DefaultLogFileName is used when no log file is configured.
const DefaultLogFileName = "lectern.log"

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logLevel      = new(slog.LevelVar)

	// debugFilter traces filtering decisions to stderr.
	debugFilter bool
)

// SetDebugFilter turns tracing of the filtering handler on or off.
func SetDebugFilter(on bool) { debugFilter = on }

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			src.File = filepath.Base(src.File)
		}
	}
	if a.Key == slog.TimeKey && len(groups) == 0 {
		a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
	}
	return a
}

// Init installs a logger writing text records to text and, when jsonOut is
// non-nil, JSON records to jsonOut. Both outputs sit behind the filter.
func Init(cfg Config, text io.Writer, jsonOut io.Writer) {
	cfg.process()
	if text == nil {
		text = io.Discard
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(text, &slog.HandlerOptions{Level: logLevel, AddSource: true, ReplaceAttr: replaceAttr}),
	}
	if jsonOut != nil {
		handlers = append(handlers, slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: logLevel, AddSource: true}))
	}

	mu.Lock()
	logLevel.Set(cfg.level)
	defaultLogger = slog.New(newFilteringHandler(slogmulti.Fanout(handlers...), &cfg))
	mu.Unlock()

	Debugf("Logger initialized at level %s", cfg.level)
}

// Setup opens the configured log files and calls Init. The returned
// function closes them.
func Setup(cfg Config) (func() error, error) {
	var closers []io.Closer

	textPath := cfg.LogFilePath
	var text io.Writer
	switch textPath {
	case "-":
		text = os.Stderr
	case "":
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		textPath = filepath.Join(dir, "lectern", DefaultLogFileName)
		fallthrough
	default:
		f, err := openLogFile(textPath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, f)
		text = f
	}

	var jsonOut io.Writer
	if cfg.JSONFilePath != "" {
		f, err := openLogFile(cfg.JSONFilePath)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, err
		}
		closers = append(closers, f)
		jsonOut = f
	}

	Init(cfg, text, jsonOut)
	return func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file '%s': %w", path, err)
	}
	return f, nil
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) { logLevel.Set(level) }

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a tag the filter can select on.
func DebugTagf(tag string, format string, args ...any) {
	logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) {
	logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) {
	logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) {
	logAtLevel(slog.LevelError, nil, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...any) {
	logAtLevel(slog.LevelError, nil, format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}
