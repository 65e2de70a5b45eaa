package moderation

// Fail-open defaults applied when the skill classifier is unavailable
const (
	DefaultSkillRelated    = true
	DefaultSkillConfidence = 0.5
)

// DefaultSkillConfidenceThreshold is the minimum skill confidence for approval
const DefaultSkillConfidenceThreshold = 0.6

// Sentinels recorded when an analysis degraded
const (
	SafetyUnavailableSummary  = "Safety analysis unavailable - manual review recommended"
	SkillUnavailableReasoning = "Skill classification unavailable - defaulted to skill related"
)

// Rejection clauses, appended in this order
const (
	ClauseNudity   = "Nudity or sexual content detected"
	ClauseViolence = "Violence or graphic content detected"
	ClauseExplicit = "Explicit content detected"
	ClauseNotSkill = "Content does not demonstrate a professional skill"
)

// Approval reasons
const (
	approvedWithSkill = "Approved: demonstrates %s (%.0f%% confidence)"
	approvedGeneric   = "Approved: content passed safety and skill checks"
)

// reasonSeparator joins rejection clauses
const reasonSeparator = "; "

// Persisted status labels and attribution
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
	ModeratedByAI  = "AI"
)

// Safety summaries
const (
	summaryClean   = "No unsafe categories flagged"
	summaryFlagged = "Flagged categories: "
)

// Provider category names mapped onto the three safety flags (OR-composition)
var (
	nudityCategories   = []string{"sexual", "sexual/minors"}
	violenceCategories = []string{"violence", "violence/graphic"}
	explicitCategories = []string{
		"self-harm",
		"self-harm/intent",
		"self-harm/instructions",
		"hate/threatening",
		"harassment/threatening",
		"illicit/violent",
	}
)
