// Package logx provides component-tagged leveled logging.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

var (
	debugEnabled bool
	output       io.Writer = os.Stderr
	mu           sync.RWMutex
)

func init() { //nolint:gochecknoinits // env var initialization
	if debug := os.Getenv("DEBUG"); debug == "1" || strings.EqualFold(debug, "true") {
		debugEnabled = true
	}
}

// SetDebug turns debug output on or off for every logger.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug logging is enabled.
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugEnabled
}

// SetOutput redirects every logger created afterwards, and the default
// logger, to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()

	defaultLogger = NewLogger("system")
}

type Logger struct {
	component string
	logger    *log.Logger
}

func NewLogger(component string) *Logger {
	mu.RLock()
	w := output
	mu.RUnlock()

	return &Logger{
		component: component,
		logger:    log.New(w, "", 0),
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	timestamp := time.Now().UTC().Format(timestampFormat)
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s: %s", timestamp, l.component, level, message)
}

func (l *Logger) Debug(format string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// With returns a logger for a sub-component, e.g. "http" -> "http.tasks".
func (l *Logger) With(sub string) *Logger {
	return &Logger{
		component: l.component + "." + sub,
		logger:    l.logger,
	}
}

var defaultLogger = NewLogger("system")

// Wrap logs msg + ": " + err.Error() and returns fmt.Errorf("%s: %w", msg, err).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrappedErr := fmt.Errorf("%s: %w", msg, err)
	defaultLogger.Error("%s", wrappedErr.Error())
	return wrappedErr
}
