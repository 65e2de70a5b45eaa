package moderation

import (
	"strings"
	"testing"
)

func mustTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()
	tx, err := LoadTaxonomy()
	if err != nil {
		t.Fatalf("load taxonomy: %v", err)
	}
	return tx
}

func TestSkillPrompt_Deterministic(t *testing.T) {
	t.Parallel()
	tx := mustTaxonomy(t)

	a := SkillPrompt(tx, "Modern Haircut Tutorial", "Fade with clippers", summaryClean)
	b := SkillPrompt(tx, "Modern Haircut Tutorial", "Fade with clippers", summaryClean)
	if a != b {
		t.Fatalf("prompt not deterministic")
	}
	for _, want := range []string{"haircutting", "Modern Haircut Tutorial", "Fade with clippers", summaryClean, `"isSkillRelated"`, `"detectedSkill"`, `"confidence"`, `"reasoning"`} {
		if !strings.Contains(a, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestSkillPrompt_MissingFields(t *testing.T) {
	t.Parallel()

	p := SkillPrompt(mustTaxonomy(t), "", "   ", "")
	if strings.Count(p, notProvided) != 3 {
		t.Fatalf("expected three %q markers in prompt:\n%s", notProvided, p)
	}
}

func TestParseSkillResponse_Valid(t *testing.T) {
	t.Parallel()

	sig, clamped, err := ParseSkillResponse("openai", `{"isSkillRelated":true,"detectedSkill":"haircutting","confidence":0.92,"reasoning":"shows a fade"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped {
		t.Fatalf("did not expect clamping")
	}
	if !sig.IsSkillRelated || sig.DetectedSkill == nil || *sig.DetectedSkill != "haircutting" || sig.Confidence != 0.92 {
		t.Fatalf("unexpected signal %+v", sig)
	}
	if sig.Raw.Provider != "openai" || len(sig.Raw.Payload) == 0 || sig.Raw.Degraded() {
		t.Fatalf("unexpected raw %+v", sig.Raw)
	}
}

func TestParseSkillResponse_NullSkill(t *testing.T) {
	t.Parallel()

	sig, _, err := ParseSkillResponse("openai", `{"isSkillRelated":false,"detectedSkill":null,"confidence":0.1,"reasoning":"vlog"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.DetectedSkill != nil || sig.IsSkillRelated {
		t.Fatalf("unexpected signal %+v", sig)
	}
}

func TestParseSkillResponse_Clamps(t *testing.T) {
	t.Parallel()

	sig, clamped, err := ParseSkillResponse("openai", `{"isSkillRelated":true,"detectedSkill":"cooking","confidence":7,"reasoning":""}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !clamped || sig.Confidence != 1 {
		t.Fatalf("expected clamp to 1, got %v clamped=%v", sig.Confidence, clamped)
	}
	if !strings.Contains(string(sig.Raw.Payload), `"confidence":7`) {
		t.Fatalf("raw payload should keep original value: %s", sig.Raw.Payload)
	}

	sig, clamped, _ = ParseSkillResponse("openai", `{"isSkillRelated":true,"confidence":-0.2}`)
	if !clamped || sig.Confidence != 0 {
		t.Fatalf("expected clamp to 0, got %v", sig.Confidence)
	}
}

func TestParseSkillResponse_Strict(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"not json",
		"```json\n{\"isSkillRelated\":true,\"confidence\":0.9}\n```",
		`{"isSkillRelated":true}`,
		`{"confidence":0.9}`,
		`{"isSkillRelated":true,"confidence":0.9,"extra":1}`,
		`{"isSkillRelated":true,"confidence":0.9} {}`,
		`{"isSkillRelated":"yes","confidence":0.9}`,
		`{"isSkillRelated":true,"confidence":0.9}]`,
		`{"isSkillRelated":true,"confidence":0.9}}`,
		`{"isSkillRelated":true,"confidence":0.9}{}`,
		`{"isSkillRelated":true,"confidence":0.9`,
	}
	for _, in := range bad {
		if _, _, err := ParseSkillResponse("openai", in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseSkillResponse_AcceptedPayloadAssembles(t *testing.T) {
	t.Parallel()

	m, err := NewMerger(DefaultSkillConfidenceThreshold)
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{
		`{"isSkillRelated":true,"detectedSkill":"plumbing","confidence":0.9,"reasoning":"pipes"}`,
		"  {\"isSkillRelated\":false,\"confidence\":0.1}\n",
		`{"isSkillRelated":true,"detectedSkill":null,"confidence":3}`,
	} {
		sig, _, err := ParseSkillResponse("openai", in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if _, err := Assemble(Request{VideoURL: "u"}, SafetySignal{}, sig, m); err != nil {
			t.Fatalf("%q: accepted reply failed assembly: %v", in, err)
		}
	}
}

func TestSafetyContext(t *testing.T) {
	t.Parallel()

	if got := SafetyContext("  Modern   Haircut ", ""); got != "Title: Modern Haircut" {
		t.Fatalf("got %q", got)
	}
	if got := SafetyContext("", "desc"); got != "Description: desc" {
		t.Fatalf("got %q", got)
	}
	if got := SafetyContext("t", "d"); got != "Title: t\nDescription: d" {
		t.Fatalf("got %q", got)
	}
	if got := SafetyContext(" ", "\n"); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
	// decomposed e + combining acute normalizes to the composed form
	if got := CleanText("Cafe\u0301"); got != "Caf\u00e9" {
		t.Fatalf("CleanText did not NFC normalize: %q", got)
	}
}
