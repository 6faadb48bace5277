package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off":
		return LevelOff
	case "error":
		return LevelError
	case "info", "":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("INFERD_LOG_LEVEL"))

// requestLogLevel resolves the effective log level for one request. The
// X-Log-Level header raises or lowers verbosity per request, useful when
// inspecting a single misbehaving stream.
func requestLogLevel(r *http.Request) LogLevel {
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logLine emits a raw formatted line, used for frame-level debug output.
func logLine(format string, args ...any) {
	if zlog != nil {
		zlog.Debug().Msgf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// logRequest records the outcome of a completed API request.
func logRequest(r *http.Request, status int, dur time.Duration, err error) {
	lvl := requestLogLevel(r)
	if err != nil {
		if lvl < LevelError {
			return
		}
	} else if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		ev := zlog.Info()
		if err != nil {
			ev = zlog.Error().Err(err)
		}
		ev = ev.Str("method", r.Method).Str("path", r.URL.Path).Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Msg("request")
		return
	}
	if err != nil {
		log.Printf("%s %s status=%d dur=%s err=%v", r.Method, r.URL.Path, status, dur, err)
		return
	}
	log.Printf("%s %s status=%d dur=%s", r.Method, r.URL.Path, status, dur)
}
