package moderation

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTaxonomy_Embedded(t *testing.T) {
	t.Parallel()

	tx := mustTaxonomy(t)
	if tx.Version != 1 {
		t.Fatalf("version = %d, want 1", tx.Version)
	}
	if !tx.Contains("haircutting") || !tx.Contains("PLUMBING") {
		t.Fatalf("expected haircutting and plumbing in %v", tx.IDs())
	}
	if tx.Contains("gaming") {
		t.Fatalf("unexpected category")
	}
}

func TestParseTaxonomy_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":     `version = 1`,
		"blank id":  "[[category]]\nid = \"\"\n",
		"uppercase": "[[category]]\nid = \"Cooking\"\n",
		"duplicate": "[[category]]\nid = \"a\"\n[[category]]\nid = \"a\"\n",
		"garbage":   "[[[",
	}
	for name, in := range cases {
		if _, err := ParseTaxonomy([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	tx, err := ParseTaxonomy([]byte("[[category]]\nid = \" welding \"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Categories[0].ID != "welding" || tx.Categories[0].Name != "welding" {
		t.Fatalf("unexpected category %+v", tx.Categories[0])
	}
}

func TestLoadTaxonomyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "skills.toml")
	if err := os.WriteFile(path, []byte("[[category]]\nid = \"welding\"\nname = \"Welding\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tx, err := LoadTaxonomyFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(tx.IDs(), ",") != "welding" {
		t.Fatalf("ids = %v", tx.IDs())
	}

	if _, err := LoadTaxonomyFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if tx, err := LoadTaxonomyFile(""); err != nil || !tx.Contains("haircutting") {
		t.Fatalf("empty path should load embedded taxonomy, err=%v", err)
	}
}

func TestSafetyFromCategories(t *testing.T) {
	t.Parallel()

	sig := SafetyFromCategories("openai", map[string]bool{
		"sexual/minors":    true,
		"violence/graphic": false,
		"harassment":       true,
	}, json.RawMessage(`{}`))
	if !sig.NudityDetected || sig.ViolenceDetected || sig.ExplicitContentDetected {
		t.Fatalf("unexpected flags %+v", sig)
	}
	if sig.Summary != "Flagged categories: harassment, sexual/minors" {
		t.Fatalf("summary = %q", sig.Summary)
	}

	clean := SafetyFromCategories("openai", map[string]bool{"sexual": false}, nil)
	if !clean.Passed() || clean.Summary != summaryClean {
		t.Fatalf("unexpected clean signal %+v", clean)
	}

	exp := SafetyFromCategories("openai", map[string]bool{"self-harm/instructions": true}, nil)
	if !exp.ExplicitContentDetected {
		t.Fatalf("self-harm should set explicit")
	}
}

func TestSafetyDefault_FailsOpen(t *testing.T) {
	t.Parallel()

	sig := SafetyDefault("openai", errors.New("timeout"))
	if !sig.Passed() {
		t.Fatalf("default must not flag anything")
	}
	if sig.Summary != SafetyUnavailableSummary || sig.Raw.Error != "timeout" {
		t.Fatalf("unexpected default %+v", sig)
	}

	sk := SkillDefault("openai", nil, nil)
	if sk.IsSkillRelated != DefaultSkillRelated || sk.Confidence != DefaultSkillConfidence || sk.DetectedSkill != nil {
		t.Fatalf("unexpected skill default %+v", sk)
	}
	if !sk.Raw.Degraded() {
		t.Fatalf("skill default must be marked degraded")
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	req := Request{VideoURL: "https://cdn.example/v.mp4", Title: "Modern Haircut Tutorial"}
	res, err := Assemble(req, SafetySignal{Summary: summaryClean}, SkillSignal{
		IsSkillRelated: true, DetectedSkill: strp("haircutting"), Confidence: 0.92,
	}, DefaultMerger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Approved || res.ConfidenceScore != 0.92 || res.SkillFlag || res.Status() != StatusApproved || res.NeedsReview() {
		t.Fatalf("unexpected result %+v", res)
	}

	_, err = Assemble(req, SafetySignal{Raw: Raw{Provider: "x", Payload: json.RawMessage(`{`)}}, SkillSignal{}, DefaultMerger())
	if err == nil {
		t.Fatalf("expected error for invalid raw payload")
	}
}
