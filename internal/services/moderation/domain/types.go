// Package domain holds moderation records, DTOs and ports independent of transport or storage
package domain

import (
	"time"

	"skillreel/internal/core/moderation"
)

// Record is the persisted view of one moderated video
// one row per video; re-moderation supersedes the previous record
type Record struct {
	VideoID     string `json:"video_id" example:"3f1c9b8e-5a0d-4c55-9d5f-0b7c2a1e9f10"`
	VideoURL    string `json:"video_url" example:"https://cdn.example.com/v/3f1c9b8e.mp4"`
	Title       string `json:"title,omitempty" example:"Modern Haircut Tutorial"`
	Description string `json:"description,omitempty"`

	Status      string    `json:"status" example:"approved"`
	ModeratedBy string    `json:"moderated_by" example:"AI"`
	ModeratedAt time.Time `json:"moderated_at"`

	Safety moderation.SafetySignal `json:"safety"`
	Skill  moderation.SkillSignal  `json:"skill"`

	Approved        bool    `json:"approved"`
	Reason          string  `json:"reason" example:"Approved: demonstrates haircutting (92% confidence)"`
	ConfidenceScore float64 `json:"confidence_score" example:"0.92"`
	SkillFlag       bool    `json:"skill_flag"`
	NeedsReview     bool    `json:"needs_review"`
}

// RecordFrom stamps a pipeline result with identity, attribution and time
func RecordFrom(videoID string, req moderation.Request, res moderation.Result, at time.Time) Record {
	return Record{
		VideoID:         videoID,
		VideoURL:        req.VideoURL,
		Title:           req.Title,
		Description:     req.Description,
		Status:          res.Status(),
		ModeratedBy:     moderation.ModeratedByAI,
		ModeratedAt:     at.UTC(),
		Safety:          res.Safety,
		Skill:           res.Skill,
		Approved:        res.Approved,
		Reason:          res.Reason,
		ConfidenceScore: res.ConfidenceScore,
		SkillFlag:       res.SkillFlag,
		NeedsReview:     res.NeedsReview(),
	}
}

// JobState is the lifecycle of a queued moderation job
type JobState string

const (
	// JobQueued is waiting for a worker
	JobQueued JobState = "queued"

	// JobDone finished and wrote a record
	JobDone JobState = "done"

	// JobFailed hit an assembly or storage error; not retried automatically
	JobFailed JobState = "failed"
)

// Job is a leased unit of work returned to the worker
type Job struct {
	JobID        string
	VideoID      string
	VideoURL     string
	Title        string
	Description  string
	Attempts     int
	LeasedBy     string
	LeaseExpires time.Time
	CreatedAt    time.Time
}

// Input converts the job back into the moderation input it was enqueued with
func (j Job) Input() ModerateInput {
	return ModerateInput{
		VideoID:     j.VideoID,
		VideoURL:    j.VideoURL,
		Title:       j.Title,
		Description: j.Description,
	}
}
