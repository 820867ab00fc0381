// Package jobs contains the background workers of the matching engine.
//
// The affinity worker consumes group IDs queued by the join protocol and
// rescores each group against the known events, outside the join's atomic
// commit. The queue is bounded; enqueueing never blocks an assignment.
package jobs
