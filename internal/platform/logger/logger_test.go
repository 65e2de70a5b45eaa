package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestNew_JSONFieldsAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Level: "WARN", Format: "json", Service: "skillreel-api", Writer: &buf})
	l.Info().Msg("dropped")
	l.Warn().Str("video_id", "v1").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the warn line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["service"] != "skillreel-api" || rec["video_id"] != "v1" || rec["level"] != "warn" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestNew_BadLevelIsInfo(t *testing.T) {
	t.Parallel()

	for _, lvl := range []string{"", "loud"} {
		if got := New(Options{Level: lvl, Format: "json"}).GetLevel(); got != zerolog.InfoLevel {
			t.Fatalf("level %q -> %v", lvl, got)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "skillreel-moderator")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || o.Service != "skillreel-moderator" || !o.WithCaller || o.SampleEvery != 5 {
		t.Fatalf("unexpected options %+v", o)
	}
}

func TestNamedAndC(t *testing.T) {
	t.Parallel()

	if Get() != Get() {
		t.Fatal("root logger must be shared")
	}

	var buf bytes.Buffer
	named := Named("openai").Output(&buf)
	named.Error().Msg("x")
	if !strings.Contains(buf.String(), `"component":"openai"`) {
		t.Fatalf("component missing: %s", buf.String())
	}

	buf.Reset()
	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-9")
	scoped := C(ctx).Output(&buf)
	scoped.Error().Msg("x")
	if !strings.Contains(buf.String(), `"request_id":"req-9"`) {
		t.Fatalf("request id missing: %s", buf.String())
	}
}
