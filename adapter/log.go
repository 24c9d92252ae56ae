package adapter

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// HostLogLevel mirrors enum retro_log_level.
type HostLogLevel int

const (
	HostLogDebug HostLogLevel = iota
	HostLogInfo
	HostLogWarn
	HostLogError
)

// HostLogFunc writes one formatted line, without its trailing newline, to
// the frontend log.
type HostLogFunc func(level HostLogLevel, msg string)

var (
	logLevel    = new(slog.LevelVar)
	hostLogging atomic.Bool
	fallbackOut io.Writer = os.Stderr
	logger      = slog.New(newHostHandler(logLevel))
)

func init() {
	hostLogging.Store(true)
}

// Logger returns the package logger. Records go to the frontend log
// interface when one is available and to stderr otherwise.
func Logger() *slog.Logger {
	return logger
}

// SetLogLevel sets the minimum level of emitted records.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetHostLogging enables or disables forwarding to the frontend log.
func SetHostLogging(enabled bool) {
	hostLogging.Store(enabled)
}

// hostHandler renders records with a slog.TextHandler and routes the text
// to the frontend.
type hostHandler struct {
	mu   *sync.Mutex
	buf  *bytes.Buffer
	text slog.Handler
}

func newHostHandler(level slog.Leveler) *hostHandler {
	buf := new(bytes.Buffer)
	return &hostHandler{
		mu:  new(sync.Mutex),
		buf: buf,
		text: slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: dropTime,
		}),
	}
}

// dropTime removes the timestamp; the frontend stamps its own lines.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

func (h *hostHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.text.Enabled(ctx, level)
}

func (h *hostHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	h.buf.Reset()
	err := h.text.Handle(ctx, r)
	line := h.buf.String()
	h.mu.Unlock()
	if err != nil {
		return err
	}

	if fn, ok := hostLogger(); ok && hostLogging.Load() {
		// The frontend log terminates lines itself.
		fn(hostLevel(r.Level), strings.TrimSuffix(line, "\n"))
		return nil
	}
	_, err = io.WriteString(fallbackOut, line)
	return err
}

func (h *hostHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &hostHandler{mu: h.mu, buf: h.buf, text: h.text.WithAttrs(attrs)}
}

func (h *hostHandler) WithGroup(name string) slog.Handler {
	return &hostHandler{mu: h.mu, buf: h.buf, text: h.text.WithGroup(name)}
}

func hostLevel(level slog.Level) HostLogLevel {
	switch {
	case level >= slog.LevelError:
		return HostLogError
	case level >= slog.LevelWarn:
		return HostLogWarn
	case level >= slog.LevelInfo:
		return HostLogInfo
	default:
		return HostLogDebug
	}
}
