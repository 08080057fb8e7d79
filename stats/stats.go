package stats

import (
	"fmt"
	"sync"
)

// Outcome classifies the result of a single availability check.
type Outcome string

const (
	// OutcomeInStock records a check that observed the variant in stock.
	OutcomeInStock Outcome = "in_stock"

	// OutcomeOutOfStock records a check that observed the variant out of stock.
	OutcomeOutOfStock Outcome = "out_of_stock"

	// OutcomeError records a check that failed (network error, unexpected
	// status code, or unparseable body).
	OutcomeError Outcome = "error"
)

// Snapshot is an immutable copy of the counters at a point in time.
//
// Snapshot is the value handed to notifiers and callbacks; mutating it
// does not affect the live counters.
//
// Invariant: Checks == InStock + OutOfStock + Errors after every completed
// check. DeliveryFailures counts notification delivery errors and is
// deliberately outside that sum: a failed delivery does not change what
// the check observed.
type Snapshot struct {
	// Checks is the total number of availability checks performed.
	Checks int

	// InStock is the number of checks that observed the variant in stock.
	InStock int

	// OutOfStock is the number of checks that observed the variant out of stock.
	OutOfStock int

	// Errors is the number of checks that failed.
	Errors int

	// DeliveryFailures is the number of notification deliveries that failed.
	DeliveryFailures int
}

// SuccessRate returns the fraction of checks that completed without error,
// in the range [0, 1]. Returns 0 when no checks have run.
func (s Snapshot) SuccessRate() float64 {
	if s.Checks == 0 {
		return 0
	}
	return float64(s.Checks-s.Errors) / float64(s.Checks)
}

// Summary renders the counters as a single display line.
func (s Snapshot) Summary() string {
	return fmt.Sprintf("checks: %d | in stock: %d | out of stock: %d | errors: %d (%.0f%% ok)",
		s.Checks, s.InStock, s.OutOfStock, s.Errors, s.SuccessRate()*100)
}

// Stats tracks running counters for the watch loop.
//
// Stats is safe for concurrent use. The watch loop is the only writer, but
// snapshots may be read from notification or callback goroutines.
type Stats struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New creates a zeroed [Stats]. The counters are never reset during a run
// and are discarded with the process.
func New() *Stats {
	return &Stats{}
}

// RecordCheck increments Checks and exactly one outcome counter,
// preserving the Checks == InStock + OutOfStock + Errors invariant.
// Unrecognised outcomes are counted as errors.
func (s *Stats) RecordCheck(outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Checks++
	switch outcome {
	case OutcomeInStock:
		s.snap.InStock++
	case OutcomeOutOfStock:
		s.snap.OutOfStock++
	default:
		s.snap.Errors++
	}
}

// RecordDeliveryFailure increments the notification delivery failure
// counter. It does not touch the check counters.
func (s *Stats) RecordDeliveryFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.DeliveryFailures++
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}
