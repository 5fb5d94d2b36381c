package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retryCall struct {
	id       uint64
	attempts int
	runAt    time.Time
	errMsg   string
}

type fakeQueue struct {
	done    []uint64
	failed  map[uint64]string
	retries []retryCall
}

func newFakeQueue() *fakeQueue { return &fakeQueue{failed: map[uint64]string{}} }

func (q *fakeQueue) Claim(context.Context, string) (*Job, error) { return nil, nil }

func (q *fakeQueue) MarkDone(_ context.Context, id uint64) error {
	q.done = append(q.done, id)
	return nil
}

func (q *fakeQueue) MarkFailed(_ context.Context, id uint64, errMsg string) error {
	q.failed[id] = errMsg
	return nil
}

func (q *fakeQueue) RetryLater(_ context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error {
	q.retries = append(q.retries, retryCall{id, attempts, runAt, errMsg})
	return nil
}

type fakeNotifier struct {
	err  error
	sent []OwnerNotifyPayload
}

func (n *fakeNotifier) Notify(_ context.Context, p OwnerNotifyPayload) error {
	n.sent = append(n.sent, p)
	return n.err
}

func notifyJob(t *testing.T, id uint64, attempts int) *Job {
	t.Helper()
	b, err := json.Marshal(OwnerNotifyPayload{Kind: "message", RecordID: 9, Guest: "Alice", To: "owner@example.com"})
	require.NoError(t, err)
	return &Job{ID: id, Type: TypeOwnerNotify, Payload: b, Attempts: attempts, MaxAttempts: 3}
}

func TestWorkerDeliversNotification(t *testing.T) {
	q, n := newFakeQueue(), &fakeNotifier{}
	w := &Worker{ID: "w1", Queue: q, Notifier: n, Log: zerolog.Nop()}

	w.handle(context.Background(), notifyJob(t, 1, 0))

	assert.Equal(t, []uint64{1}, q.done)
	require.Len(t, n.sent, 1)
	assert.Equal(t, "Alice", n.sent[0].Guest)
}

func TestWorkerRetriesWithBackoff(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	q, n := newFakeQueue(), &fakeNotifier{err: errors.New("smtp down")}
	w := &Worker{ID: "w1", Queue: q, Notifier: n, Log: zerolog.Nop(), now: func() time.Time { return now }}

	w.handle(context.Background(), notifyJob(t, 2, 1))

	require.Len(t, q.retries, 1)
	assert.Equal(t, retryCall{id: 2, attempts: 2, runAt: now.Add(4 * time.Second), errMsg: "smtp down"}, q.retries[0])
	assert.Empty(t, q.done)
}

func TestWorkerGivesUpAfterMaxAttempts(t *testing.T) {
	q, n := newFakeQueue(), &fakeNotifier{err: errors.New("smtp down")}
	w := &Worker{ID: "w1", Queue: q, Notifier: n, Log: zerolog.Nop()}

	w.handle(context.Background(), notifyJob(t, 3, 2))

	assert.Equal(t, "smtp down", q.failed[3])
	assert.Empty(t, q.retries)
}

func TestWorkerRejectsBadJobs(t *testing.T) {
	q := newFakeQueue()
	w := &Worker{ID: "w1", Queue: q, Notifier: &fakeNotifier{}, Log: zerolog.Nop()}

	w.handle(context.Background(), &Job{ID: 4, Type: "SOMETHING"})
	w.handle(context.Background(), &Job{ID: 5, Type: TypeOwnerNotify, Payload: []byte("{")})

	assert.Equal(t, "unknown job type", q.failed[4])
	assert.Equal(t, "bad payload", q.failed[5])
}

func TestBackoffIsCapped(t *testing.T) {
	assert.Equal(t, 2*time.Second, backoff(1))
	assert.Equal(t, 600*time.Second, backoff(20))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	err := LogNotifier{Log: zerolog.New(&buf)}.Notify(context.Background(), OwnerNotifyPayload{Kind: "preference", Guest: "Bob", To: "owner@example.com"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"guest":"Bob"`)
	assert.Contains(t, buf.String(), "OWNER NOTIFY")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{ID: "w1", Queue: newFakeQueue(), Notifier: &fakeNotifier{}, Interval: time.Millisecond, Log: zerolog.Nop()}

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
