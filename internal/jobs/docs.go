// Package jobs provides scheduled background tasks for the workflow service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field and are
// managed through JobManager:
//
//	jobManager := jobs.NewJobManager(expireQuotesHandler, cfg.QuoteExpirySpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// QuoteExpiryJob sweeps quotes whose valid_until has passed and moves them
// to expired. Quotes touched concurrently by a user are skipped and picked
// up again by the next sweep.
package jobs
