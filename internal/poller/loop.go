package poller

import (
	"context"
	"sync"
	"time"
)

// Target describes the single vendor endpoint a [Loop] checks.
type Target struct {
	// Name is the display name of the watched product.
	Name string

	// URL is the vendor availability endpoint.
	URL string

	// Headers contains the HTTP headers to send with each request.
	Headers map[string]string

	// Payload is the request body sent on each check.
	Payload []byte

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Result is the raw outcome of one check, before availability
// interpretation.
type Result struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code. Zero if the request failed
	// before a response was received.
	StatusCode int

	// Latency is the time taken to complete the request.
	Latency time.Duration

	// CheckedAt is the timestamp when the check was performed.
	CheckedAt time.Time

	// Err contains any transport error that occurred.
	Err error
}

// Loop performs periodic availability checks against a single [Target].
//
// The loop checks the target immediately on start, then on every tick of
// the configured interval. There is no retry backoff: an errored check
// simply waits for the next tick, exactly like a successful one. Results
// are emitted to a channel consumed by the caller.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Loop struct {
	target   Target
	interval time.Duration
	client   *Client
	results  chan Result

	mu        sync.Mutex
	started   bool
	stopped   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewLoop creates a check [Loop] for the given target and interval.
//
// The loop must be started with [Loop.Start] and stopped with [Loop.Stop].
// Results are available via [Loop.Results].
func NewLoop(target Target, interval time.Duration) *Loop {
	return &Loop{
		target:   target,
		interval: interval,
		client:   NewClient(),
		results:  make(chan Result, 1),
	}
}

// Results returns a receive-only channel that emits one [Result] per check.
//
// The channel is closed when the loop stops. Consumers should read from
// this channel until it is closed to receive all results.
func (l *Loop) Results() <-chan Result {
	return l.results
}

// Start begins the check loop in a background goroutine.
//
// Start is non-blocking and returns immediately. The loop will:
//  1. Check the target immediately
//  2. Check again on every interval tick
//  3. Continue until [Loop.Stop] is called or the context is cancelled
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.started || l.stopped {
		l.mu.Unlock()
		return
	}
	l.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer l.closeOnce.Do(func() { close(l.results) })

		if !l.emit(runCtx, l.check(runCtx)) {
			return
		}

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if !l.emit(runCtx, l.check(runCtx)) {
					return
				}
			}
		}
	}()
}

// Stop halts the loop and waits for the check goroutine to complete.
//
// Stop cancels the loop's context and blocks until the in-flight request
// (if any) completes and the results channel is closed.
//
// Stop is idempotent and safe to call multiple times. Calling Stop before
// Start is a safe no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.stopped {
		l.stopped = true
		if l.cancel != nil {
			l.cancel()
		}
	}
	l.mu.Unlock()

	l.wg.Wait()

	// clean up client connections after the loop goroutine exits
	if l.client != nil {
		l.client.Close()
	}

	// ensure channel is closed even if Start() was never called
	l.closeOnce.Do(func() { close(l.results) })
}

// check performs a single availability request.
func (l *Loop) check(ctx context.Context) Result {
	resp := l.client.Post(ctx, l.target.URL, l.target.Headers, l.target.Payload, l.target.Timeout)

	return Result{
		Body:       resp.Body,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		CheckedAt:  time.Now(),
		Err:        resp.Error,
	}
}

// emit delivers a result, returning false if the context was cancelled first.
func (l *Loop) emit(ctx context.Context, r Result) bool {
	select {
	case l.results <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
