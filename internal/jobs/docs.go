// Package jobs provides scheduled background tasks for the order
// coordination service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. ReconcileOrdersJob - Runs on a configurable interval (60s by default)
// and drives the stale-order sweeps: canceling orders that were never paid,
// dispatching couriers for settled orders stuck in the pickup hall and
// canceling with refund the orders no courier ever took.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, intervalSeconds, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed reconciliation run is logged and retried on the next tick; the
// handler itself isolates per-order failures so one broken order does not
// abort a sweep.
package jobs
