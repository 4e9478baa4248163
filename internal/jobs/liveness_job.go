package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// LivenessJob runs the liveness sweep on a fixed schedule. The sweep itself
// lives in Sweeper; this wrapper only owns the cron lifecycle.
type LivenessJob struct {
	sweeper  *Sweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLivenessJob creates the scheduled liveness job. The schedule uses
// seconds-granularity cron syntax, e.g. "*/5 * * * * *" for every 5 seconds.
func NewLivenessJob(sweeper *Sweeper, schedule string, logger *slog.Logger) *LivenessJob {
	return &LivenessJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "liveness_job"),
	}
}

// Start begins the scheduled sweeps.
func (j *LivenessJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.sweeper.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Liveness job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled sweeps.
func (j *LivenessJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Liveness job stopped")
}
