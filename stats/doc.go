// Package stats tracks the running counters of the watch loop: total
// checks, in-stock and out-of-stock observations, check errors, and
// notification delivery failures.
//
// Counters live for the duration of the process and are never reset.
// Snapshots are value copies, safe to hand to notifiers and callbacks.
package stats
