// Package moderation holds the pure decision core of the video moderation pipeline:
// the signal types produced by the safety and skill analyses, the fail-open policy
// constants, the skill taxonomy, prompt construction and the decision merger
package moderation

import (
	"encoding/json"
	"math"
)

// Request is the immutable input for one moderation attempt
// VideoURL is opaque and never dereferenced; empty Title/Description mean absent
type Request struct {
	VideoURL    string `json:"video_url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Raw is an opaque provider payload kept for audit only
// Error is set when the analysis degraded to its fail-open default
type Raw struct {
	Provider string          `json:"provider"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Degraded reports whether the provider call failed and defaults were applied
func (r Raw) Degraded() bool { return r.Error != "" }

// SafetySignal is the output of the safety analyzer
type SafetySignal struct {
	NudityDetected          bool   `json:"nudity_detected"`
	ViolenceDetected        bool   `json:"violence_detected"`
	ExplicitContentDetected bool   `json:"explicit_content_detected"`
	Summary                 string `json:"summary"`
	Raw                     Raw    `json:"raw_response"`
}

// Passed reports whether no unsafe flag is set
func (s SafetySignal) Passed() bool {
	return !s.NudityDetected && !s.ViolenceDetected && !s.ExplicitContentDetected
}

// SkillSignal is the output of the skill classifier
type SkillSignal struct {
	IsSkillRelated bool    `json:"is_skill_related"`
	DetectedSkill  *string `json:"detected_skill"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
	Raw            Raw     `json:"raw_response"`
}

// Verdict is the merger output
type Verdict struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// Result is the assembled moderation outcome; a pure function of both signals and the threshold
type Result struct {
	VideoURL        string       `json:"video_url"`
	Safety          SafetySignal `json:"safety"`
	Skill           SkillSignal  `json:"skill"`
	Approved        bool         `json:"approved"`
	Reason          string       `json:"reason"`
	ConfidenceScore float64      `json:"confidence_score"`
	SkillFlag       bool         `json:"skill_flag"`
}

// NeedsReview reports whether either analysis degraded; operators treat this as a manual review signal
func (r Result) NeedsReview() bool {
	return r.Safety.Raw.Degraded() || r.Skill.Raw.Degraded()
}

// Status maps the verdict to the persisted status label
func (r Result) Status() string {
	if r.Approved {
		return StatusApproved
	}
	return StatusRejected
}

// SafetyDefault returns the fail-open safety signal for a provider failure
func SafetyDefault(provider string, cause error) SafetySignal {
	return SafetySignal{
		Summary: SafetyUnavailableSummary,
		Raw:     Raw{Provider: provider, Error: errString(cause)},
	}
}

// SkillDefault returns the fail-open skill signal for a provider failure
func SkillDefault(provider string, cause error, payload json.RawMessage) SkillSignal {
	return SkillSignal{
		IsSkillRelated: DefaultSkillRelated,
		Confidence:     DefaultSkillConfidence,
		Reasoning:      SkillUnavailableReasoning,
		Raw:            Raw{Provider: provider, Payload: payload, Error: errString(cause)},
	}
}

// finite reports whether f is a usable number
func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func errString(err error) string {
	if err == nil {
		return "unknown provider error"
	}
	return err.Error()
}
