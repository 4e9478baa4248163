// Package jobs provides the scheduled background tasks of the dispatch
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. LivenessJob - Periodically sweeps the robot registry for lapsed
// heartbeats, alerting operators once per offline episode and, when the
// auto-reassign policy is enabled, demoting the offline robot's active
// request back to the dispatch queue.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(livenessJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The liveness schedule uses seconds-granularity cron expressions and comes
// from the dispatch policy configuration.
package jobs
