package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	quoteExpiryJob *QuoteExpiryJob
}

// NewJobManager schedules the quote expiry job on quoteExpirySpec, a cron expression.
func NewJobManager(expirer QuoteExpirer, quoteExpirySpec string, logger *slog.Logger) *JobManager {
	return &JobManager{
		quoteExpiryJob: NewQuoteExpiryJob(expirer, quoteExpirySpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.quoteExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start quote expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.quoteExpiryJob.Stop()
}
