package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity level
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var (
	mu       sync.RWMutex
	minLevel = InfoLevel
	out      = log.New(os.Stderr, "", log.LstdFlags)
	file     *os.File
)

// ParseLevel converts a level name to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal", "panic":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}

// SetLevel sets the minimum level that gets logged
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// SetFile mirrors log output to the given file path in addition to stderr.
// An empty path disables the file sink.
func SetFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	if path == "" {
		out = log.New(os.Stderr, "", log.LstdFlags)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	file = f
	out = log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags)
	return nil
}

func logAt(level Level, tag, format string, args ...any) {
	mu.RLock()
	enabled := level >= minLevel
	l := out
	mu.RUnlock()
	if !enabled {
		return
	}
	l.Printf("["+tag+"] "+format, args...)
}

// Trace logs at trace level
func Trace(format string, args ...any) { logAt(TraceLevel, "TRACE", format, args...) }

// Debug logs at debug level
func Debug(format string, args ...any) { logAt(DebugLevel, "DEBUG", format, args...) }

// Info logs at info level
func Info(format string, args ...any) { logAt(InfoLevel, "INFO", format, args...) }

// Warn logs at warn level
func Warn(format string, args ...any) { logAt(WarnLevel, "WARN", format, args...) }

// Error logs at error level
func Error(format string, args ...any) { logAt(ErrorLevel, "ERROR", format, args...) }

// Fatal logs at fatal level and exits
func Fatal(format string, args ...any) {
	logAt(FatalLevel, "FATAL", format, args...)
	os.Exit(1)
}
