package engine

import (
	"log"
	"strings"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the engine.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logEvent logs msg with alternating key/value pairs.
func logEvent(msg string, kv ...string) {
	if zlog != nil {
		ev := zlog.Info()
		for i := 0; i+1 < len(kv); i += 2 {
			ev = ev.Str(kv[i], kv[i+1])
		}
		ev.Msg(msg)
		return
	}
	var b strings.Builder
	b.WriteString("engine event=")
	b.WriteString(strings.ReplaceAll(msg, " ", "_"))
	for i := 0; i+1 < len(kv); i += 2 {
		b.WriteString(" " + kv[i] + "=" + kv[i+1])
	}
	log.Print(b.String())
}
