package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger = newLogger()
	ring   = &ringHook{max: 500}
	file   *os.File
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	// Never write to stdout/stderr: the TUI owns the terminal. File output
	// is attached by Setup; the ring hook keeps lines reachable regardless.
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		DisableColors:   true,
	})
	l.AddHook(ring)
	return l
}

// ringHook retains the most recent formatted lines so the app can show
// its own logs without touching the terminal.
type ringHook struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func (h *ringHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *ringHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	h.mu.Lock()
	if len(h.lines) >= h.max {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:len(h.lines)-1]
	}
	h.lines = append(h.lines, strings.TrimRight(line, "\n"))
	h.mu.Unlock()
	return nil
}

func (h *ringHook) dump() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Setup directs output to the given file (append) and sets the level.
// An empty path keeps the ring only. Call Close on shutdown.
func Setup(path, level string) error {
	mu.Lock()
	defer mu.Unlock()
	if level != "" {
		lv, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		logger.SetLevel(lv)
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if file != nil {
		file.Close()
	}
	file = f
	logger.SetOutput(f)
	return nil
}

func SetLevelFromEnv() {
	lv := strings.ToLower(strings.TrimSpace(os.Getenv("DATASPECT_LOG_LEVEL")))
	if lv == "" {
		return
	}
	if parsed, err := logrus.ParseLevel(lv); err == nil {
		logger.SetLevel(parsed)
	}
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
		logger.SetOutput(io.Discard)
	}
}

func Debugf(format string, a ...any) { logger.Debugf(format, a...) }
func Infof(format string, a ...any)  { logger.Infof(format, a...) }
func Warnf(format string, a ...any)  { logger.Warnf(format, a...) }
func Errorf(format string, a ...any) { logger.Errorf(format, a...) }

// Dump returns the retained lines, oldest first.
func Dump() string { return strings.Join(ring.dump(), "\n") }

func Lines() []string { return ring.dump() }
