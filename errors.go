package stockwatch

import "fmt"

// NetworkError indicates that the vendor request failed before a response
// was received (connection refused, DNS failure, timeout).
//
// Network errors are caught within the watch loop, logged, and counted;
// they never terminate the loop.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseError indicates that the vendor responded, but with a non-2xx
// status code or a body from which no availability flag could be derived.
//
// Response errors are caught within the watch loop, logged, and counted;
// they never terminate the loop.
type ResponseError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("response error: unexpected status code %d", e.StatusCode)
}

// Unwrap returns the underlying parse error, if any.
func (e *ResponseError) Unwrap() error {
	return e.Err
}
