package moderation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Sampling parameters for the skill classification request
const (
	SkillTemperature = 0.1
	SkillMaxTokens   = 300
)

// SkillSystemPrompt instructs the text generator to act as a strict classifier
const SkillSystemPrompt = `You are a content moderator for a marketplace where service providers upload short videos demonstrating their professional skills.
Decide whether a video demonstrates a professional, teachable or billable skill from the supported categories.
Respond with a single JSON object and nothing else.`

const notProvided = "(not provided)"

// SkillPrompt builds the user prompt for the skill classifier
// the output is deterministic for identical inputs
func SkillPrompt(t *Taxonomy, title, description, safetySummary string) string {
	var b strings.Builder

	b.WriteString("Supported skill categories:\n")
	for _, c := range t.Categories {
		fmt.Fprintf(&b, "- %s: %s", c.ID, c.Name)
		if len(c.Examples) > 0 {
			fmt.Fprintf(&b, " (e.g. %s)", strings.Join(c.Examples, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nVideo metadata:\n")
	fmt.Fprintf(&b, "Title: %s\n", orNotProvided(CleanText(title)))
	fmt.Fprintf(&b, "Description: %s\n", orNotProvided(CleanText(description)))
	fmt.Fprintf(&b, "Content summary: %s\n", orNotProvided(CleanText(safetySummary)))

	b.WriteString(`
Respond with JSON using exactly these keys:
{
  "isSkillRelated": boolean,
  "detectedSkill": one of the category ids above, or null,
  "confidence": number between 0 and 1,
  "reasoning": short explanation
}`)
	return b.String()
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}

// skillWire is the strict response contract; pointers detect missing required keys
type skillWire struct {
	IsSkillRelated *bool    `json:"isSkillRelated"`
	DetectedSkill  *string  `json:"detectedSkill"`
	Confidence     *float64 `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
}

// ParseSkillResponse strictly decodes a classifier completion into a SkillSignal
// clamped reports whether confidence was outside [0,1] and got clamped
func ParseSkillResponse(provider, text string) (sig SkillSignal, clamped bool, err error) {
	body := bytes.TrimSpace([]byte(text))
	if len(body) == 0 {
		return SkillSignal{}, false, fmt.Errorf("skill response: empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var w skillWire
	if err := dec.Decode(&w); err != nil {
		return SkillSignal{}, false, fmt.Errorf("skill response: invalid JSON: %w", err)
	}
	// More() is false before a stray ] or }, so require a clean EOF
	if _, err := dec.Token(); err != io.EOF {
		return SkillSignal{}, false, fmt.Errorf("skill response: unexpected trailing data")
	}
	if w.IsSkillRelated == nil {
		return SkillSignal{}, false, fmt.Errorf("skill response: missing isSkillRelated")
	}
	if w.Confidence == nil {
		return SkillSignal{}, false, fmt.Errorf("skill response: missing confidence")
	}

	conf := *w.Confidence
	switch {
	case conf < 0:
		conf, clamped = 0, true
	case conf > 1:
		conf, clamped = 1, true
	}

	var skill *string
	if w.DetectedSkill != nil {
		if s := strings.TrimSpace(*w.DetectedSkill); s != "" {
			skill = &s
		}
	}

	return SkillSignal{
		IsSkillRelated: *w.IsSkillRelated,
		DetectedSkill:  skill,
		Confidence:     conf,
		Reasoning:      strings.TrimSpace(w.Reasoning),
		Raw:            Raw{Provider: provider, Payload: json.RawMessage(body)},
	}, clamped, nil
}
