package repository

import (
	"context"
	"time"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/infra/relay"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Jobs left in processing longer than this are assumed orphaned by a crashed relay.
const staleProcessingAfter = 5 * time.Minute

const (
	insertNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $4, $4)`

	claimNotificationJobsSQL = `
WITH due AS (
    SELECT id
    FROM notification_jobs
    WHERE (status = 'queued' AND run_at <= $1)
       OR (status = 'processing' AND updated_at < $3)
    ORDER BY run_at, id
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
UPDATE notification_jobs j
SET status = 'processing', updated_at = $1
FROM due
WHERE j.id = due.id
RETURNING j.id, j.kind, j.topic, j.payload, j.run_at, j.attempts`

	markNotificationJobSentSQL = `
UPDATE notification_jobs
SET status = 'sent', updated_at = $2
WHERE id = $1`

	markNotificationJobFailedSQL = `
UPDATE notification_jobs
SET status     = $2,
    attempts   = attempts + 1,
    last_error = $3,
    run_at     = $4,
    updated_at = NOW()
WHERE id = $1`
)

// NotificationRepository is the transactional outbox. Bound to a transaction it
// enqueues jobs; bound to the pool it also serves the relay as its JobStore.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, job shared.OutboxJob) error {
	_, err := r.db.Exec(ctx, insertNotificationJobSQL,
		job.Kind, job.Topic, job.Payload, job.RunAt, relay.StatusQueued)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]relay.Job, error) {
	// #nosec G115 -- batch sizes are small config values
	rows, err := r.db.Query(ctx, claimNotificationJobsSQL, now, int32(limit), now.Add(-staleProcessingAfter))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []relay.Job
	for rows.Next() {
		var (
			job      relay.Job
			attempts int32
		)
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.RunAt, &attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.Attempts = int(attempts)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.db.Exec(ctx, markNotificationJobSentSQL, id, at); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, final bool) error {
	status := relay.StatusQueued
	if final {
		status = relay.StatusFailed
	}
	lastErr := pgtype.Text{String: lastError, Valid: lastError != ""}

	if _, err := r.db.Exec(ctx, markNotificationJobFailedSQL, id, status, lastErr, pgconv.TimeToPgtype(retryAt)); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
