package relay

import (
	"context"
	"log/slog"
	"time"

	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

// Job is an outbox row claimed for delivery.
type Job struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusFailed     = "failed"
)

type JobStore interface {
	// ClaimDue moves up to limit queued jobs due at now into processing.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkFailed re-queues the job for retryAt, or fails it for good when final is set.
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, final bool) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type Relay struct {
	store       JobStore
	publisher   Publisher
	clock       clock.Clock
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

func New(store JobStore, publisher Publisher, clk clock.Clock, cfg config.RelayConfig) *Relay {
	r := &Relay{
		store:       store,
		publisher:   publisher,
		clock:       clk,
		interval:    cfg.PollInterval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
	}
	if r.interval <= 0 {
		r.interval = 2 * time.Second
	}
	if r.batchSize <= 0 {
		r.batchSize = 50
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = 5
	}
	return r
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("event relay started", "interval", r.interval.String(), "batch_size", r.batchSize)
	for {
		select {
		case <-ctx.Done():
			slog.Info("event relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Tick(ctx); err != nil && ctx.Err() == nil {
				slog.Error("event relay tick failed", "error", err.Error())
			}
		}
	}
}

// Tick delivers one batch and reports how many jobs were published.
func (r *Relay) Tick(ctx context.Context) (int, error) {
	now := r.clock.Now()
	jobs, err := r.store.ClaimDue(ctx, now, r.batchSize)
	if err != nil {
		return 0, errs.Wrap(err, "claim outbox jobs")
	}

	sent := 0
	for _, job := range jobs {
		if perr := r.publisher.Publish(ctx, job.Topic, job.Payload); perr != nil {
			r.fail(ctx, job, perr)
			continue
		}
		if merr := r.store.MarkSent(ctx, job.ID, r.clock.Now()); merr != nil {
			slog.Error("failed to mark outbox job sent", "job_id", job.ID, "error", merr.Error())
			continue
		}
		sent++
	}
	return sent, nil
}

func (r *Relay) fail(ctx context.Context, job Job, cause error) {
	attempts := job.Attempts + 1
	final := attempts >= r.maxAttempts
	retryAt := r.clock.Now().Add(time.Duration(attempts) * r.interval)

	slog.Warn("outbox publish failed",
		"job_id", job.ID,
		"topic", job.Topic,
		"attempt", attempts,
		"final", final,
		"error", cause.Error())

	if err := r.store.MarkFailed(ctx, job.ID, cause.Error(), retryAt, final); err != nil {
		slog.Error("failed to record outbox failure", "job_id", job.ID, "error", err.Error())
	}
}
