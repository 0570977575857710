package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/moviehub/movies-api/internal/queue"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) NotifyLogin(ctx context.Context, recipient, username string) error {
	f.calls++
	return f.err
}

type fakeMessage struct {
	job     *queue.Job
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeMessage) GetJob() *queue.Job { return f.job }

func (f *fakeMessage) Ack() error {
	f.acked = true
	return nil
}

func (f *fakeMessage) Nack(requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func TestProcessJob_Success(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	w := NewMailWorker(notifier, nil, zap.NewNop())
	msg := &fakeMessage{job: queue.NewJob(queue.JobTypeLoginNotice, "alice", "alice")}

	if err := w.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if notifier.calls != 1 {
		t.Errorf("Expected 1 delivery, got %d", notifier.calls)
	}
	if !msg.acked {
		t.Error("Expected message to be acked")
	}
	if msg.nacked {
		t.Error("Expected message to not be nacked")
	}
}

func TestProcessJob_FailureRequeues(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: errors.New("smtp connection refused")}
	w := NewMailWorker(notifier, nil, zap.NewNop())
	msg := &fakeMessage{job: queue.NewJob(queue.JobTypeLoginNotice, "alice", "alice")}

	if err := w.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("Expected error from failed delivery")
	}
	if !msg.nacked || !msg.requeue {
		t.Error("Expected message to be nacked with requeue")
	}
	if msg.job.RetryCount != 1 {
		t.Errorf("Expected retry count 1, got %d", msg.job.RetryCount)
	}
}

func TestProcessJob_MaxRetriesGoesToDLQ(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: errors.New("smtp connection refused")}
	w := NewMailWorker(notifier, nil, zap.NewNop())

	job := queue.NewJob(queue.JobTypeLoginNotice, "alice", "alice")
	job.RetryCount = job.MaxRetries
	msg := &fakeMessage{job: job}

	if err := w.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("Expected error from exhausted retries")
	}
	if !msg.nacked || msg.requeue {
		t.Error("Expected message to be nacked without requeue")
	}
}

func TestProcessJob_ExpiredJobDropped(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	w := NewMailWorker(notifier, nil, zap.NewNop())

	job := queue.NewJob(queue.JobTypeLoginNotice, "alice", "alice")
	past := job.CreatedAt.Add(-1)
	job.NotAfter = &past
	msg := &fakeMessage{job: job}

	if err := w.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("Expected expired job to be dropped without error, got %v", err)
	}
	if notifier.calls != 0 {
		t.Error("Expected no delivery for expired job")
	}
	if !msg.nacked || msg.requeue {
		t.Error("Expected expired job to be nacked without requeue")
	}
}

func TestProcessJob_UnknownType(t *testing.T) {
	t.Parallel()

	w := NewMailWorker(&fakeNotifier{}, nil, zap.NewNop())
	msg := &fakeMessage{job: queue.NewJob(queue.JobType("bogus"), "alice", "alice")}

	if err := w.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("Expected error for unknown job type")
	}
	if !msg.nacked || msg.requeue {
		t.Error("Expected unknown job to be nacked without requeue")
	}
}

func TestProcessLoginNoticeJob_MissingRecipient(t *testing.T) {
	t.Parallel()

	w := NewMailWorker(&fakeNotifier{}, nil, zap.NewNop())
	job := queue.NewJob(queue.JobTypeLoginNotice, "", "alice")

	if err := w.ProcessLoginNoticeJob(context.Background(), job); err == nil {
		t.Fatal("Expected error for missing recipient")
	}
}
