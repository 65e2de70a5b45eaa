package domain

import (
	"context"
	"encoding/json"

	"skillreel/internal/core/moderation"
)

// SafetyProvider classifies text against an unsafe content taxonomy
// flags carries every category the provider returned; raw is kept for audit
type SafetyProvider interface {
	Name() string
	Moderate(ctx context.Context, text string) (flags map[string]bool, raw json.RawMessage, err error)
}

// TextProvider runs a JSON-mode text generation request
type TextProvider interface {
	Name() string
	CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// PipelinePort runs the safety, skill and merge steps for one request
type PipelinePort interface {
	Moderate(ctx context.Context, req moderation.Request) (moderation.Result, error)
}

// ServicePort is the interface implemented by the moderation service
type ServicePort interface {
	ModerateVideo(ctx context.Context, in ModerateInput) (Record, error)
	Get(ctx context.Context, videoID string) (Record, error)
	ListReview(ctx context.Context, limit int) ([]Record, error)
	Enqueue(ctx context.Context, in ModerateInput) (EnqueueOutput, error)
}

// WorkerPort (run loop) is separate
type WorkerPort interface {
	Run(ctx context.Context) error
}

// AuditPort appends moderation records to an analytics sink
type AuditPort interface {
	Append(ctx context.Context, rec Record) error
}
