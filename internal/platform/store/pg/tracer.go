package pg

import (
	"context"
	"strings"
	"time"

	"skillreel/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives query events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement under component=pg
// the tracer logs at debug level or above regardless of the root level, since SQL logging is opt in
func Tracer(root logger.Logger) QueryTracer {
	return &logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (t *logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	e := t.log.Info()
	switch {
	case ev.Err != nil:
		e = t.log.Error().Err(ev.Err)
	case ev.Slow:
		e = t.log.Warn()
	}
	e.Dur("elapsed", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", squash(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// squash collapses runs of whitespace so multi line SQL logs on one line
func squash(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
