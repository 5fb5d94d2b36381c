package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Queue is the job store the worker drains.
type Queue interface {
	Claim(ctx context.Context, workerID string) (*Job, error)
	MarkDone(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64, errMsg string) error
	RetryLater(ctx context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error
}

// Notifier delivers an owner notification.
type Notifier interface {
	Notify(ctx context.Context, p OwnerNotifyPayload) error
}

// LogNotifier writes notifications to the log instead of sending mail.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(_ context.Context, p OwnerNotifyPayload) error {
	n.Log.Info().
		Str("to", p.To).
		Str("kind", p.Kind).
		Uint64("record_id", p.RecordID).
		Str("guest", p.Guest).
		Msg("[OWNER NOTIFY]")
	return nil
}

type Worker struct {
	ID       string
	Queue    Queue
	Notifier Notifier
	Interval time.Duration
	Log      zerolog.Logger

	now func() time.Time
}

func (w *Worker) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Queue.Claim(ctx, w.ID)
			if err != nil {
				w.Log.Error().Err(err).Str("worker", w.ID).Msg("claim failed")
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeOwnerNotify:
		w.handleOwnerNotify(ctx, job)
	default:
		_ = w.Queue.MarkFailed(ctx, job.ID, "unknown job type")
	}
}

func (w *Worker) handleOwnerNotify(ctx context.Context, job *Job) {
	var p OwnerNotifyPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Queue.MarkFailed(ctx, job.ID, "bad payload")
		return
	}

	if err := w.Notifier.Notify(ctx, p); err != nil {
		w.Log.Warn().Err(err).Uint64("job", job.ID).Msg("owner notification failed")
		w.retry(ctx, job, err.Error())
		return
	}
	_ = w.Queue.MarkDone(ctx, job.ID)
}

func (w *Worker) retry(ctx context.Context, job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Queue.MarkFailed(ctx, job.ID, errMsg)
		return
	}

	now := time.Now
	if w.now != nil {
		now = w.now
	}
	_ = w.Queue.RetryLater(ctx, job.ID, attempts, now().Add(backoff(attempts)), errMsg)
}

// backoff doubles per attempt, capped at ten minutes.
func backoff(attempts int) time.Duration {
	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	return time.Duration(sec) * time.Second
}
