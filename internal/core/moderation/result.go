package moderation

import (
	"encoding/json"
	"fmt"
)

// Assemble builds the final Result from both signals and the merger verdict
// it fails only on internally inconsistent data, never on provider degradation
func Assemble(req Request, safety SafetySignal, skill SkillSignal, m Merger) (Result, error) {
	if !finite(skill.Confidence) {
		return Result{}, fmt.Errorf("skill confidence is not finite: %v", skill.Confidence)
	}
	for _, raw := range []Raw{safety.Raw, skill.Raw} {
		if len(raw.Payload) > 0 && !json.Valid(raw.Payload) {
			return Result{}, fmt.Errorf("raw payload from %q is not valid JSON", raw.Provider)
		}
	}

	v := m.Merge(safety, skill)
	if v.Reason == "" {
		return Result{}, fmt.Errorf("merger produced an empty reason")
	}

	return Result{
		VideoURL:        req.VideoURL,
		Safety:          safety,
		Skill:           skill,
		Approved:        v.Approved,
		Reason:          v.Reason,
		ConfidenceScore: skill.Confidence,
		SkillFlag:       !skill.IsSkillRelated,
	}, nil
}
