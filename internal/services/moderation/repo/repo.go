// Package repo provides the moderation repository implementation
package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"time"

	"skillreel/internal/core/moderation"
	"skillreel/internal/modkit/repokit"
	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/store"
	"skillreel/internal/services/moderation/domain"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the Postgres DDL for moderation tables
func Schema() string { return schemaSQL }

// EnsureSchema applies the moderation DDL; statements are idempotent
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "moderation: apply schema")
	}
	return nil
}

// Repo is the moderation persistence surface used by the service layer
type Repo interface {
	Upsert(ctx context.Context, rec domain.Record) error
	Get(ctx context.Context, videoID string) (domain.Record, error)
	ListReview(ctx context.Context, limit int) ([]domain.Record, error)

	EnqueueJob(ctx context.Context, in domain.ModerateInput) (string, error)
	LeaseJobs(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.Job, error)
	CompleteJob(ctx context.Context, jobID string) error
	FailJob(ctx context.Context, jobID, lastErr string) error
}

type (
	// PG is a Postgres implementation of the moderation repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const recordColumns = `
	video_id::text, video_url, title, description, status, moderated_by, moderated_at,
	nudity_detected, violence_detected, explicit_content_detected, safety_summary, safety_raw,
	is_skill_related, detected_skill, skill_confidence, skill_reasoning, skill_raw,
	approved, reason, confidence_score, skill_flag, needs_review`

// Upsert writes the record; a later moderation of the same video supersedes the row
func (r *queries) Upsert(ctx context.Context, rec domain.Record) error {
	safetyRaw, err := json.Marshal(rec.Safety.Raw)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "moderation: encode safety raw")
	}
	skillRaw, err := json.Marshal(rec.Skill.Raw)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "moderation: encode skill raw")
	}

	const sql = `
		INSERT INTO video_moderations (
			video_id, video_url, title, description, status, moderated_by, moderated_at,
			nudity_detected, violence_detected, explicit_content_detected, safety_summary, safety_raw,
			is_skill_related, detected_skill, skill_confidence, skill_reasoning, skill_raw,
			approved, reason, confidence_score, skill_flag, needs_review
		) VALUES (
			$1::uuid, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12::jsonb,
			$13, $14, $15, $16, $17::jsonb,
			$18, $19, $20, $21, $22
		)
		ON CONFLICT (video_id) DO UPDATE
		SET video_url                 = EXCLUDED.video_url,
		    title                     = EXCLUDED.title,
		    description               = EXCLUDED.description,
		    status                    = EXCLUDED.status,
		    moderated_by              = EXCLUDED.moderated_by,
		    moderated_at              = EXCLUDED.moderated_at,
		    nudity_detected           = EXCLUDED.nudity_detected,
		    violence_detected         = EXCLUDED.violence_detected,
		    explicit_content_detected = EXCLUDED.explicit_content_detected,
		    safety_summary            = EXCLUDED.safety_summary,
		    safety_raw                = EXCLUDED.safety_raw,
		    is_skill_related          = EXCLUDED.is_skill_related,
		    detected_skill            = EXCLUDED.detected_skill,
		    skill_confidence          = EXCLUDED.skill_confidence,
		    skill_reasoning           = EXCLUDED.skill_reasoning,
		    skill_raw                 = EXCLUDED.skill_raw,
		    approved                  = EXCLUDED.approved,
		    reason                    = EXCLUDED.reason,
		    confidence_score          = EXCLUDED.confidence_score,
		    skill_flag                = EXCLUDED.skill_flag,
		    needs_review              = EXCLUDED.needs_review
	`
	_, err = r.q.Exec(ctx, sql,
		rec.VideoID, rec.VideoURL, rec.Title, rec.Description, rec.Status, rec.ModeratedBy, rec.ModeratedAt,
		rec.Safety.NudityDetected, rec.Safety.ViolenceDetected, rec.Safety.ExplicitContentDetected,
		rec.Safety.Summary, string(safetyRaw),
		rec.Skill.IsSkillRelated, rec.Skill.DetectedSkill, rec.Skill.Confidence, rec.Skill.Reasoning, string(skillRaw),
		rec.Approved, rec.Reason, rec.ConfidenceScore, rec.SkillFlag, rec.NeedsReview,
	)
	if err != nil {
		return perr.FromPostgres(err, "moderation: upsert record")
	}
	return nil
}

// Get returns the current record for a video or perr.ErrNotFound
func (r *queries) Get(ctx context.Context, videoID string) (domain.Record, error) {
	sql := `SELECT ` + recordColumns + ` FROM video_moderations WHERE video_id = $1::uuid`
	rec, err := store.One(ctx, r.q, scanRecord, sql, videoID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Record{}, perr.ErrNotFound
		}
		return domain.Record{}, perr.FromPostgres(err, "moderation: get record")
	}
	return rec, nil
}

// ListReview returns the newest records whose analysis degraded
func (r *queries) ListReview(ctx context.Context, limit int) ([]domain.Record, error) {
	sql := `SELECT ` + recordColumns + `
		FROM video_moderations
		WHERE needs_review
		ORDER BY moderated_at DESC
		LIMIT $1`
	out, err := store.Many(ctx, r.q, scanRecord, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "moderation: list review")
	}
	return out, nil
}

func scanRecord(row store.Row) (domain.Record, error) {
	var (
		rec                 domain.Record
		safetyRaw, skillRaw []byte
	)
	if err := row.Scan(
		&rec.VideoID, &rec.VideoURL, &rec.Title, &rec.Description, &rec.Status, &rec.ModeratedBy, &rec.ModeratedAt,
		&rec.Safety.NudityDetected, &rec.Safety.ViolenceDetected, &rec.Safety.ExplicitContentDetected,
		&rec.Safety.Summary, &safetyRaw,
		&rec.Skill.IsSkillRelated, &rec.Skill.DetectedSkill, &rec.Skill.Confidence, &rec.Skill.Reasoning, &skillRaw,
		&rec.Approved, &rec.Reason, &rec.ConfidenceScore, &rec.SkillFlag, &rec.NeedsReview,
	); err != nil {
		return domain.Record{}, err
	}
	var err error
	if rec.Safety.Raw, err = decodeRaw(safetyRaw); err != nil {
		return domain.Record{}, err
	}
	if rec.Skill.Raw, err = decodeRaw(skillRaw); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

func decodeRaw(b []byte) (moderation.Raw, error) {
	var raw moderation.Raw
	if len(b) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return raw, perr.Wrapf(err, perr.ErrorCodeJSON, "moderation: decode raw payload")
	}
	return raw, nil
}
