// Package jobs contains the scheduled background work of the tracking
// service.
//
// Jobs run on cron schedules and use the same application layer as the HTTP
// surface:
//   - LockSweepJob releases operation locks whose TTL elapsed, so records
//     touched by crashed or stalled operations become writable again without
//     manual intervention.
//
// The JobManager wires all jobs together and provides unified start/stop for
// the composition root.
package jobs
