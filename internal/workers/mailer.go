package workers

import (
	"context"
	"fmt"

	"github.com/moviehub/movies-api/internal/mailer"
	"github.com/moviehub/movies-api/internal/queue"
	"go.uber.org/zap"
)

// MailWorker processes mail delivery jobs
type MailWorker struct {
	notifier mailer.LoginNotifier
	jobQueue queue.JobQueue // For re-enqueueing jobs with delays
	logger   *zap.Logger
}

// NewMailWorker creates a new mail worker
func NewMailWorker(notifier mailer.LoginNotifier, jobQueue queue.JobQueue, logger *zap.Logger) *MailWorker {
	return &MailWorker{
		notifier: notifier,
		jobQueue: jobQueue,
		logger:   logger,
	}
}

// ProcessLoginNoticeJob delivers a login notification email
func (w *MailWorker) ProcessLoginNoticeJob(ctx context.Context, job *queue.Job) error {
	if job.Recipient == "" {
		return fmt.Errorf("recipient is required for login notice job")
	}

	if err := w.notifier.NotifyLogin(ctx, job.Recipient, job.Username); err != nil {
		return fmt.Errorf("failed to deliver login notice: %w", err)
	}

	w.logger.Info("login_notice_delivered",
		zap.String("job_id", job.ID.String()),
	)
	return nil
}

// ProcessJob processes a job based on its type
func (w *MailWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	if job.IsExpired() {
		w.logger.Warn("job_expired",
			zap.String("job_id", job.ID.String()),
		)
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Error("failed_to_nack_expired_job", zap.Error(nackErr))
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeLoginNotice, queue.JobTypeResendFailed:
		if err := w.ProcessLoginNoticeJob(ctx, job); err != nil {
			return w.handleJobError(msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		// Unknown job type, send to DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Error("failed_to_nack_unknown_job", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError retries failed deliveries up to the job's retry budget,
// then sends the job to the DLQ
func (w *MailWorker) handleJobError(msg queue.MessageInterface, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		w.logger.Warn("mail_job_failed_will_retry",
			zap.String("job_id", job.ID.String()),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Error("failed_to_nack_job", zap.Error(nackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	w.logger.Error("mail_job_failed_max_retries",
		zap.String("job_id", job.ID.String()),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		w.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
