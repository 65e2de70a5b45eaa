package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"skillreel/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type recTracer struct{ events []QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev QueryEvent) { r.events = append(r.events, ev) }

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := Open(context.Background(), Config{URL: "postgres://%zz"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_AppliesMaxConnsAndTune(t *testing.T) {
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, errors.New("no pool in unit tests")
	})

	_, err := Open(context.Background(),
		Config{URL: "postgres://u:p@127.0.0.1:5432/db", MaxConns: 7},
		nil,
		func(c *pgxpool.Config) { c.MinConns = 2 })
	if err == nil {
		t.Fatalf("expected seam error")
	}
	if seen == nil || seen.MaxConns != 7 || seen.MinConns != 2 {
		t.Fatalf("pool config not applied: %+v", seen)
	}
}

func TestObserve_MarksSlow(t *testing.T) {
	t.Parallel()

	rt := &recTracer{}
	p := &PG{Tracer: rt, Slow: time.Millisecond}

	p.Observe(context.Background(), "SELECT 1", nil, time.Now(), nil)
	p.Observe(context.Background(), "SELECT pg_sleep(1)", []any{1}, time.Now().Add(-time.Second), nil)

	if len(rt.events) != 2 || rt.events[0].Slow || !rt.events[1].Slow {
		t.Fatalf("unexpected events %+v", rt.events)
	}

	// no threshold marks nothing slow; nil tracer is a no-op
	p = &PG{Tracer: rt}
	p.Observe(context.Background(), "SELECT 1", nil, time.Now().Add(-time.Hour), nil)
	if rt.events[2].Slow {
		t.Fatalf("zero threshold must not mark slow")
	}
	(&PG{}).Observe(context.Background(), "SELECT 1", nil, time.Now(), nil)
}

func TestTracer_LogsSquashedSQL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Tracer(root)

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT *\n\t FROM video_moderations\n WHERE video_id = $1", Args: []any{"v"}, Slow: true})
	out := buf.String()
	for _, want := range []string{`"component":"pg"`, `"level":"warn"`, `SELECT * FROM video_moderations WHERE video_id = $1`, `"args":1`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}
