package service

import (
	"context"

	"skillreel/internal/core/moderation"
	perr "skillreel/internal/platform/errors"
)

// AnalyzeSafety classifies the video metadata for unsafe content
// it never returns an error: any provider failure yields the fail-open default
func (p *Pipeline) AnalyzeSafety(ctx context.Context, title, description string) moderation.SafetySignal {
	provider := p.safety.Name()

	text := moderation.SafetyContext(title, description)
	if text == "" {
		p.log.Warn().Str("provider", provider).Msg("safety analysis skipped: no metadata")
		return moderation.SafetyDefault(provider, perr.InvalidArgf("no metadata to analyze"))
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	flags, raw, err := p.safety.Moderate(cctx, text)
	if err != nil {
		p.log.Warn().Err(err).Str("provider", provider).Msg("safety analysis degraded")
		return moderation.SafetyDefault(provider, err)
	}
	return moderation.SafetyFromCategories(provider, flags, raw)
}
