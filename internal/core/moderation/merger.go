package moderation

import (
	"fmt"
	"strings"

	perr "skillreel/internal/platform/errors"
)

// Merger combines a safety and a skill signal into a verdict
// threshold is injected at construction and never read from ambient state
type Merger struct {
	threshold float64
}

// NewMerger validates the skill confidence threshold and returns a Merger
func NewMerger(threshold float64) (Merger, error) {
	if !finite(threshold) || threshold < 0 || threshold > 1 {
		return Merger{}, perr.InvalidArgf("skill confidence threshold must be within [0,1], got %v", threshold)
	}
	return Merger{threshold: threshold}, nil
}

// DefaultMerger returns a Merger using DefaultSkillConfidenceThreshold
func DefaultMerger() Merger { return Merger{threshold: DefaultSkillConfidenceThreshold} }

// Threshold returns the configured skill confidence threshold
func (m Merger) Threshold() float64 { return m.threshold }

// SkillPassed reports whether the skill signal clears the threshold
// a skill related signal below threshold still fails
func (m Merger) SkillPassed(s SkillSignal) bool {
	return s.IsSkillRelated && s.Confidence >= m.threshold
}

// Merge applies the approval policy; output is a deterministic function of its inputs
func (m Merger) Merge(safety SafetySignal, skill SkillSignal) Verdict {
	skillPassed := m.SkillPassed(skill)

	var clauses []string
	if safety.NudityDetected {
		clauses = append(clauses, ClauseNudity)
	}
	if safety.ViolenceDetected {
		clauses = append(clauses, ClauseViolence)
	}
	if safety.ExplicitContentDetected {
		clauses = append(clauses, ClauseExplicit)
	}
	if !skillPassed {
		clauses = append(clauses, ClauseNotSkill)
	}

	if len(clauses) > 0 {
		return Verdict{Approved: false, Reason: strings.Join(clauses, reasonSeparator)}
	}
	return Verdict{Approved: safety.Passed() && skillPassed, Reason: approvalReason(skill)}
}

func approvalReason(skill SkillSignal) string {
	if skill.DetectedSkill != nil {
		if name := strings.TrimSpace(*skill.DetectedSkill); name != "" {
			return fmt.Sprintf(approvedWithSkill, name, skill.Confidence*100)
		}
	}
	return approvedGeneric
}
