package jobs

import (
	"fmt"
)

// JobManager coordinates the scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	livenessJob *LivenessJob
}

// NewJobManager creates a job manager owning every scheduled job.
func NewJobManager(livenessJob *LivenessJob) *JobManager {
	return &JobManager{
		livenessJob: livenessJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.livenessJob.Start(); err != nil {
		return fmt.Errorf("failed to start liveness job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.livenessJob.Stop()
}
