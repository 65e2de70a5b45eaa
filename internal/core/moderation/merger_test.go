package moderation

import (
	"errors"
	"math"
	"strings"
	"testing"

	perr "skillreel/internal/platform/errors"
)

func strp(s string) *string { return &s }

func TestNewMerger_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, th := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		if _, err := NewMerger(th); err == nil {
			t.Fatalf("NewMerger(%v) expected error", th)
		} else if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("NewMerger(%v) code = %v, want InvalidArgument", th, perr.CodeOf(err))
		}
	}
	for _, th := range []float64{0, 0.6, 1} {
		m, err := NewMerger(th)
		if err != nil {
			t.Fatalf("NewMerger(%v) unexpected error: %v", th, err)
		}
		if m.Threshold() != th {
			t.Fatalf("Threshold() = %v, want %v", m.Threshold(), th)
		}
	}
}

func TestMerge_ApprovedFormula(t *testing.T) {
	t.Parallel()
	m := DefaultMerger()

	cases := []struct {
		name   string
		safety SafetySignal
		skill  SkillSignal
		want   bool
	}{
		{"clean+skill", SafetySignal{}, SkillSignal{IsSkillRelated: true, Confidence: 0.9}, true},
		{"exact threshold passes", SafetySignal{}, SkillSignal{IsSkillRelated: true, Confidence: 0.6}, true},
		{"below threshold", SafetySignal{}, SkillSignal{IsSkillRelated: true, Confidence: 0.59}, false},
		{"not skill", SafetySignal{}, SkillSignal{IsSkillRelated: false, Confidence: 0.99}, false},
		{"nudity", SafetySignal{NudityDetected: true}, SkillSignal{IsSkillRelated: true, Confidence: 1}, false},
		{"violence", SafetySignal{ViolenceDetected: true}, SkillSignal{IsSkillRelated: true, Confidence: 1}, false},
		{"explicit", SafetySignal{ExplicitContentDetected: true}, SkillSignal{IsSkillRelated: true, Confidence: 1}, false},
	}
	for _, tc := range cases {
		got := m.Merge(tc.safety, tc.skill)
		want := tc.safety.Passed() && m.SkillPassed(tc.skill)
		if got.Approved != want || got.Approved != tc.want {
			t.Fatalf("%s: approved = %v, want %v", tc.name, got.Approved, tc.want)
		}
	}
}

func TestMerge_HaircutScenario(t *testing.T) {
	t.Parallel()

	v := DefaultMerger().Merge(SafetySignal{Summary: summaryClean}, SkillSignal{
		IsSkillRelated: true,
		DetectedSkill:  strp("haircutting"),
		Confidence:     0.92,
	})
	if !v.Approved {
		t.Fatalf("expected approval, got %+v", v)
	}
	if !strings.Contains(v.Reason, "haircutting") || !strings.Contains(v.Reason, "92%") {
		t.Fatalf("reason %q should mention skill and 92%%", v.Reason)
	}
}

func TestMerge_NotSkillScenario(t *testing.T) {
	t.Parallel()

	v := DefaultMerger().Merge(SafetySignal{}, SkillSignal{IsSkillRelated: false, Confidence: 0.1})
	if v.Approved {
		t.Fatalf("expected rejection")
	}
	if v.Reason != ClauseNotSkill {
		t.Fatalf("reason = %q, want %q", v.Reason, ClauseNotSkill)
	}
}

func TestMerge_NuditySkipsSkillClause(t *testing.T) {
	t.Parallel()

	v := DefaultMerger().Merge(SafetySignal{NudityDetected: true}, SkillSignal{IsSkillRelated: true, Confidence: 0.95})
	if v.Approved {
		t.Fatalf("expected rejection")
	}
	if !strings.Contains(v.Reason, ClauseNudity) {
		t.Fatalf("reason %q missing nudity clause", v.Reason)
	}
	if strings.Contains(v.Reason, ClauseNotSkill) {
		t.Fatalf("reason %q must not contain skill clause", v.Reason)
	}
}

func TestMerge_LowConfidenceStillRejects(t *testing.T) {
	t.Parallel()

	v := DefaultMerger().Merge(SafetySignal{}, SkillSignal{IsSkillRelated: true, DetectedSkill: strp("plumbing"), Confidence: 0.4})
	if v.Approved || v.Reason != ClauseNotSkill {
		t.Fatalf("got %+v, want rejection with skill clause", v)
	}
}

func TestMerge_ClauseOrderAndDeterminism(t *testing.T) {
	t.Parallel()

	s := SafetySignal{NudityDetected: true, ViolenceDetected: true, ExplicitContentDetected: true}
	k := SkillSignal{IsSkillRelated: false}
	a := DefaultMerger().Merge(s, k)
	b := DefaultMerger().Merge(s, k)
	want := strings.Join([]string{ClauseNudity, ClauseViolence, ClauseExplicit, ClauseNotSkill}, reasonSeparator)
	if a.Reason != want {
		t.Fatalf("reason = %q, want %q", a.Reason, want)
	}
	if a.Reason != b.Reason {
		t.Fatalf("reason not deterministic: %q vs %q", a.Reason, b.Reason)
	}
}

func TestMerge_GenericApprovalWithoutSkillName(t *testing.T) {
	t.Parallel()

	v := DefaultMerger().Merge(SafetySignal{}, SkillSignal{IsSkillRelated: true, DetectedSkill: strp("  "), Confidence: 0.8})
	if !v.Approved || v.Reason != approvedGeneric {
		t.Fatalf("got %+v, want generic approval", v)
	}
}

func TestMerge_BothProvidersDownRejects(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := SafetyDefault("safety", boom)
	k := SkillDefault("skill", boom, nil)
	v := DefaultMerger().Merge(s, k)
	if v.Approved {
		t.Fatalf("0.5 < 0.6 must reject")
	}
	if v.Reason != ClauseNotSkill {
		t.Fatalf("reason = %q, want skill clause only", v.Reason)
	}
}
