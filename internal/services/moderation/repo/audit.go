package repo

import (
	"context"
	"errors"
	"strings"

	"skillreel/internal/platform/store"
	"skillreel/internal/services/moderation/domain"
)

// AuditTable is the ClickHouse table receiving moderation events
const AuditTable = "moderation_events"

const auditDDL = `
CREATE TABLE IF NOT EXISTS moderation_events (
    video_id         String,
    status           LowCardinality(String),
    approved         Bool,
    confidence       Float64,
    detected_skill   String,
    nudity           Bool,
    violence         Bool,
    explicit         Bool,
    safety_degraded  Bool,
    skill_degraded   Bool,
    safety_provider  LowCardinality(String),
    skill_provider   LowCardinality(String),
    reason           String,
    moderated_at     DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (moderated_at, video_id)`

// Audit appends moderation records to ClickHouse
type Audit struct {
	ch store.Clickhouse
}

// NewAudit returns a ClickHouse audit sink
func NewAudit(ch store.Clickhouse) *Audit {
	if ch == nil {
		panic("moderation.Audit requires a non nil Clickhouse seam")
	}
	return &Audit{ch: ch}
}

// EnsureSchema creates the audit table when missing
func (a *Audit) EnsureSchema(ctx context.Context) error {
	return a.ch.Exec(ctx, strings.TrimSpace(auditDDL))
}

// Append writes one event row
func (a *Audit) Append(ctx context.Context, rec domain.Record) error {
	if rec.VideoID == "" {
		return errors.New("moderation audit: empty video id")
	}
	return a.ch.Insert(ctx, AuditTable, [][]any{auditRow(rec)})
}

// auditRow flattens a record in table column order
func auditRow(rec domain.Record) []any {
	skill := ""
	if rec.Skill.DetectedSkill != nil {
		skill = *rec.Skill.DetectedSkill
	}
	return []any{
		rec.VideoID,
		rec.Status,
		rec.Approved,
		rec.ConfidenceScore,
		skill,
		rec.Safety.NudityDetected,
		rec.Safety.ViolenceDetected,
		rec.Safety.ExplicitContentDetected,
		rec.Safety.Raw.Degraded(),
		rec.Skill.Raw.Degraded(),
		rec.Safety.Raw.Provider,
		rec.Skill.Raw.Provider,
		rec.Reason,
		rec.ModeratedAt,
	}
}
