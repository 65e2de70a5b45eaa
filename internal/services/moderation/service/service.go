// Package service contains moderation workflows: the analysis pipeline, the
// record service and the queue worker
package service

import (
	"context"
	"time"

	"skillreel/internal/modkit/repokit"
	"skillreel/internal/modkit/scope"
	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/logger"
	"skillreel/internal/services/moderation/domain"
	"skillreel/internal/services/moderation/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultReviewLimit = 50
	maxReviewLimit     = 500
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.WorkerPort
}

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	pipe  domain.PipelinePort
	audit domain.AuditPort
	cfg   WorkerConfig

	now func() time.Time
	log logger.Logger
}

// WorkerConfig controls the queue worker
type WorkerConfig struct {
	WorkerID       string
	Concurrency    int
	QueueTakeBatch int
	LeaseFor       time.Duration
	PollEvery      time.Duration
}

// Options control service behavior
type Options struct {
	// Pipeline is required
	Pipeline domain.PipelinePort

	// Audit is optional; failures are logged and never returned
	Audit domain.AuditPort

	Worker WorkerConfig
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("moderation.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("moderation.Service requires a non nil Repo binder")
	}
	if opt.Pipeline == nil {
		panic("moderation.Service requires a non nil Pipeline")
	}

	w := opt.Worker
	if w.WorkerID == "" {
		w.WorkerID = "moderator-" + uuid.NewString()[:8]
	}
	if w.Concurrency <= 0 {
		w.Concurrency = 4
	}
	if w.QueueTakeBatch <= 0 {
		w.QueueTakeBatch = 16
	}
	if w.LeaseFor <= 0 {
		w.LeaseFor = 2 * time.Minute
	}
	if w.PollEvery <= 0 {
		w.PollEvery = 500 * time.Millisecond
	}

	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		pipe:   opt.Pipeline,
		audit:  opt.Audit,
		cfg:    w,
		now:    time.Now,
		log:    *logger.Named("moderation"),
	}
}

// ModerateVideo runs the pipeline, stamps attribution and time, and upserts the record
func (s *Svc) ModerateVideo(ctx context.Context, in domain.ModerateInput) (domain.Record, error) {
	return s.moderate(ctx, in, nil)
}

// moderate runs the pipeline and persists the record; then runs in the upsert transaction
func (s *Svc) moderate(ctx context.Context, in domain.ModerateInput, then func(repo.Repo) error) (domain.Record, error) {
	if err := checkVideoID(in.VideoID); err != nil {
		return domain.Record{}, err
	}
	if in.VideoURL == "" {
		return domain.Record{}, perr.WithField(perr.InvalidArgf("video_url is required"), "video_url")
	}

	req := in.Request()
	res, err := s.pipe.Moderate(ctx, req)
	if err != nil {
		return domain.Record{}, err
	}

	rec := domain.RecordFrom(in.VideoID, req, res, s.now())
	if err := s.save(ctx, rec, then); err != nil {
		return domain.Record{}, err
	}

	if s.audit != nil {
		if err := s.audit.Append(ctx, rec); err != nil {
			scoped(ctx, s.log.Warn()).Err(err).Str("video_id", rec.VideoID).Msg("moderation audit append failed")
		}
	}
	scoped(ctx, s.log.Debug()).
		Str("video_id", rec.VideoID).
		Str("status", rec.Status).
		Bool("needs_review", rec.NeedsReview).
		Msg("video moderated")
	return rec, nil
}

// save upserts rec and runs then in one transaction so a job never completes without its record
func (s *Svc) save(ctx context.Context, rec domain.Record, then func(repo.Repo) error) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.Upsert(ctx, rec); err != nil {
			return err
		}
		if then == nil {
			return nil
		}
		return then(r)
	})
}

// scoped adds job attribution carried on ctx to ev
func scoped(ctx context.Context, ev *zerolog.Event) *zerolog.Event {
	scope.Each(ctx, func(k, v string) { ev = ev.Str(k, v) })
	return ev
}

// Get returns the current record for a video
func (s *Svc) Get(ctx context.Context, videoID string) (domain.Record, error) {
	if err := checkVideoID(videoID); err != nil {
		return domain.Record{}, err
	}
	return s.Repo.Get(ctx, videoID)
}

// ListReview returns records whose analysis degraded, newest first
func (s *Svc) ListReview(ctx context.Context, limit int) ([]domain.Record, error) {
	switch {
	case limit <= 0:
		limit = defaultReviewLimit
	case limit > maxReviewLimit:
		limit = maxReviewLimit
	}
	out, err := s.Repo.ListReview(ctx, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Record{}
	}
	return out, nil
}

// Enqueue queues the video for asynchronous moderation
func (s *Svc) Enqueue(ctx context.Context, in domain.ModerateInput) (domain.EnqueueOutput, error) {
	if err := checkVideoID(in.VideoID); err != nil {
		return domain.EnqueueOutput{}, err
	}
	if in.VideoURL == "" {
		return domain.EnqueueOutput{}, perr.WithField(perr.InvalidArgf("video_url is required"), "video_url")
	}
	id, err := s.Repo.EnqueueJob(ctx, in)
	if err != nil {
		return domain.EnqueueOutput{}, err
	}
	return domain.EnqueueOutput{JobID: id}, nil
}

func checkVideoID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.InvalidArgf("video_id must be a uuid"), "video_id")
	}
	return nil
}
