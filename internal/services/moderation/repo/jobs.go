package repo

import (
	"context"
	"time"

	perr "skillreel/internal/platform/errors"
	"skillreel/internal/services/moderation/domain"

	"github.com/google/uuid"
)

// EnqueueJob inserts a queued moderation job and returns its id
func (r *queries) EnqueueJob(ctx context.Context, in domain.ModerateInput) (string, error) {
	const sqlq = `
		INSERT INTO moderation_jobs (video_id, video_url, title, description)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING job_id::text
	`
	var id string
	if err := r.q.QueryRow(ctx, sqlq, in.VideoID, in.VideoURL, in.Title, in.Description).Scan(&id); err != nil {
		return "", perr.FromPostgres(err, "moderation: enqueue job")
	}
	return id, nil
}

// LeaseJobs leases up to limit queued jobs; expired leases are taken over
func (r *queries) LeaseJobs(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.Job, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	const sqlq = `
		WITH ready AS (
			SELECT job_id
			  FROM moderation_jobs
			 WHERE state = 'queued'
			   AND (leased_by IS NULL OR lease_expires_at < now())
			 ORDER BY created_at ASC
			 LIMIT $1
			 FOR UPDATE SKIP LOCKED
		), upd AS (
			UPDATE moderation_jobs j
			   SET leased_by        = $2,
			       lease_expires_at = now() + $3::interval,
			       attempts         = attempts + 1,
			       updated_at       = now()
			 WHERE j.job_id IN (SELECT job_id FROM ready)
			RETURNING j.*
		)
		SELECT job_id::text, video_id::text, video_url, title, description,
		       attempts, leased_by, lease_expires_at, created_at
		  FROM upd
		 ORDER BY created_at ASC
	`
	rows, err := r.q.Query(ctx, sqlq, limit, workerID, leaseFor.String())
	if err != nil {
		return nil, perr.FromPostgres(err, "moderation: lease jobs")
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.JobID, &j.VideoID, &j.VideoURL, &j.Title, &j.Description,
			&j.Attempts, &j.LeasedBy, &j.LeaseExpires, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// CompleteJob marks the job done and clears the lease
func (r *queries) CompleteJob(ctx context.Context, jobID string) error {
	return r.finish(ctx, jobID, domain.JobDone, "")
}

// FailJob marks the job failed with its error; failed jobs are not requeued
func (r *queries) FailJob(ctx context.Context, jobID, lastErr string) error {
	return r.finish(ctx, jobID, domain.JobFailed, lastErr)
}

func (r *queries) finish(ctx context.Context, jobID string, state domain.JobState, lastErr string) error {
	const sqlq = `
		UPDATE moderation_jobs
		   SET state            = $2,
		       last_error       = NULLIF($3, ''),
		       leased_by        = NULL,
		       lease_expires_at = NULL,
		       updated_at       = now()
		 WHERE job_id = $1::uuid
	`
	if _, err := r.q.Exec(ctx, sqlq, jobID, string(state), lastErr); err != nil {
		return perr.FromPostgres(err, "moderation: finish job")
	}
	return nil
}
