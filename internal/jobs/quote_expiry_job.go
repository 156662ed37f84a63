package jobs

import (
	"context"
	"log/slog"
	"time"

	"etching/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultQuoteExpirySpec runs the sweep at the top of every minute.
const DefaultQuoteExpirySpec = "0 * * * * *"

// QuoteExpirer is satisfied by *commands.ExpireQuotesCommandHandler.
type QuoteExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireQuotesCommand) (int, error)
}

// QuoteExpiryJob moves quotes whose validity window has passed to expired.
type QuoteExpiryJob struct {
	handler   QuoteExpirer
	spec      string
	batchSize int
	now       commands.Clock
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewQuoteExpiryJob creates the job. spec is a six field cron expression
// (with seconds); an empty spec falls back to DefaultQuoteExpirySpec.
func NewQuoteExpiryJob(handler QuoteExpirer, spec string, logger *slog.Logger) *QuoteExpiryJob {
	if spec == "" {
		spec = DefaultQuoteExpirySpec
	}
	return &QuoteExpiryJob{
		handler:   handler,
		spec:      spec,
		batchSize: commands.DefaultExpireBatchSize,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "quote_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *QuoteExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote expiry job started", "spec", j.spec)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *QuoteExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Quote expiry job stopped")
}

func (j *QuoteExpiryJob) run(ctx context.Context) {
	cmd, err := commands.NewExpireQuotesCommand(j.now(), j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Quote expiry command rejected", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Quote expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Quotes expired", "count", expired)
	}
}
