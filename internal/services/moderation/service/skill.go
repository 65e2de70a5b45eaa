package service

import (
	"context"
	"encoding/json"

	"skillreel/internal/core/moderation"
)

// ClassifySkill decides whether the video demonstrates a supported professional skill
// it never returns an error: provider or parse failures yield the fail-open default
func (p *Pipeline) ClassifySkill(ctx context.Context, title, description, safetySummary string) moderation.SkillSignal {
	provider := p.text.Name()
	prompt := moderation.SkillPrompt(p.taxonomy, title, description, safetySummary)

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.text.CompleteJSON(cctx, moderation.SkillSystemPrompt, prompt, moderation.SkillTemperature, moderation.SkillMaxTokens)
	if err != nil {
		p.log.Warn().Err(err).Str("provider", provider).Msg("skill classification degraded")
		return moderation.SkillDefault(provider, err, nil)
	}

	sig, clamped, err := moderation.ParseSkillResponse(provider, out)
	if err != nil {
		p.log.Warn().Err(err).Str("provider", provider).Msg("skill response rejected")
		return moderation.SkillDefault(provider, err, auditText(out))
	}
	if clamped {
		p.log.Warn().Str("provider", provider).Float64("confidence", sig.Confidence).Msg("skill confidence out of range; clamped")
	}
	if sig.DetectedSkill != nil && !p.taxonomy.Contains(*sig.DetectedSkill) {
		p.log.Warn().Str("provider", provider).Str("skill", *sig.DetectedSkill).Msg("detected skill outside taxonomy; kept as reported")
	}
	return sig
}

// auditText keeps a rejected completion as a JSON string so raw payloads stay valid JSON
func auditText(s string) json.RawMessage {
	b, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return b
}
