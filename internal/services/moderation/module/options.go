package module

import (
	"strings"
	"time"

	"skillreel/internal/adapters/ai/openai"
	"skillreel/internal/core/moderation"
	"skillreel/internal/platform/config"
	"skillreel/internal/services/moderation/service"
)

// Options controls the moderation pipeline, worker and provider client
type Options struct {
	Threshold       float64
	ProviderTimeout time.Duration
	TaxonomyFile    string
	AuditEnabled    bool

	// StatementTimeout bounds each statement inside moderation transactions; 0 disables it
	StatementTimeout time.Duration

	// ServiceTokens maps caller name to bearer token; empty leaves write routes open
	ServiceTokens map[string]string

	Worker service.WorkerConfig
	OpenAI openai.Options
}

// FromConfig reads MODERATION_* and PROVIDER_OPENAI_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("MODERATION_")
	oc := cfg.Prefix("PROVIDER_OPENAI_")

	timeout := mc.MayDuration("PROVIDER_TIMEOUT", service.DefaultProviderTimeout)
	return Options{
		Threshold:        mc.MayFloat64("SKILL_CONFIDENCE_THRESHOLD", moderation.DefaultSkillConfidenceThreshold),
		ProviderTimeout:  timeout,
		TaxonomyFile:     mc.MayString("TAXONOMY_FILE", ""),
		AuditEnabled:     mc.MayBool("AUDIT_ENABLED", false),
		StatementTimeout: mc.MayDuration("STATEMENT_TIMEOUT", 15*time.Second),
		ServiceTokens:    parseTokens(mc.MayCSV("SERVICE_TOKENS", nil)),
		Worker: service.WorkerConfig{
			WorkerID:       mc.MayString("WORKER_ID", ""),
			Concurrency:    mc.MayInt("WORKER_CONCURRENCY", 4),
			QueueTakeBatch: mc.MayInt("QUEUE_TAKE_BATCH", 16),
			LeaseFor:       mc.MayDuration("LEASE_FOR", 2*time.Minute),
			PollEvery:      mc.MayDuration("POLL_EVERY", 500*time.Millisecond),
		},
		OpenAI: openai.Options{
			APIKey:          oc.MustString("API_KEY"),
			BaseURL:         oc.MayString("BASE_URL", ""),
			UserAgent:       oc.MayString("UA", "skillreel-moderation"),
			Timeout:         timeout,
			ModerationModel: oc.MayString("MODERATION_MODEL", ""),
			ChatModel:       oc.MayString("CHAT_MODEL", ""),
		},
	}
}

// parseTokens reads caller=token pairs; malformed entries are skipped
func parseTokens(pairs []string) map[string]string {
	out := map[string]string{}
	for _, p := range pairs {
		caller, token, ok := strings.Cut(p, "=")
		caller, token = strings.TrimSpace(caller), strings.TrimSpace(token)
		if ok && caller != "" && token != "" {
			out[caller] = token
		}
	}
	return out
}
