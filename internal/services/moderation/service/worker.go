package service

import (
	"context"
	"sync"
	"time"

	"skillreel/internal/modkit/scope"
	"skillreel/internal/platform/logger"
	"skillreel/internal/services/moderation/domain"
	"skillreel/internal/services/moderation/repo"
)

// Run starts the worker loop to process queued moderation jobs
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("moderation-worker")
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(s.cfg.PollEvery)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	log.Info().
		Str("worker_id", s.cfg.WorkerID).
		Int("concurrency", cap(sem)).
		Int("batch", s.cfg.QueueTakeBatch).
		Msg("moderation worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.Repo.LeaseJobs(ctx, s.cfg.WorkerID, s.cfg.QueueTakeBatch, s.cfg.LeaseFor)
			if err != nil {
				if ctx.Err() == nil {
					log.Error().Err(err).Msg("lease moderation jobs failed")
				}
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer func() { <-sem }()
					if err := s.handleJob(ctx, j); err != nil {
						log.Warn().Err(err).Str("job_id", j.JobID).Msg("moderation job failed")
					}
				}()
			}
		}
	}
}

// handleJob moderates one job and records its terminal state
// failed jobs are not retried
func (s *Svc) handleJob(ctx context.Context, j domain.Job) error {
	ctx = scope.With(ctx, map[string]string{scope.JobID: j.JobID, scope.WorkerID: s.cfg.WorkerID})
	_, err := s.moderate(ctx, j.Input(), func(r repo.Repo) error {
		return r.CompleteJob(ctx, j.JobID)
	})
	if err != nil {
		if ferr := s.Repo.FailJob(context.WithoutCancel(ctx), j.JobID, err.Error()); ferr != nil {
			scoped(ctx, s.log.Error()).Err(ferr).Msg("mark moderation job failed")
		}
		return err
	}
	return nil
}
