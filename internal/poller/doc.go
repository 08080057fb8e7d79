// Package poller implements the timed check loop against the vendor
// availability endpoint.
//
// The package contains two pieces: [Client], an HTTP wrapper that issues
// one bounded POST per check and never returns partial state, and [Loop],
// which drives checks on a ticker and emits raw [Result] values on a
// channel. Interpretation of results (availability extraction, statistics,
// notifications) is the caller's concern.
package poller
