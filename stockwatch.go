package stockwatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/avelius/stockwatch/console"
	"github.com/avelius/stockwatch/internal/poller"
	"github.com/avelius/stockwatch/notify"
	"github.com/avelius/stockwatch/stats"
)

const defaultPollInterval = 5 * time.Minute

// CheckResult holds the interpreted outcome of a single availability check.
//
// CheckResult is immutable after creation and is the value handed to
// callbacks registered via [WithCheckCallback].
type CheckResult struct {
	// Availability is the interpreted stock state. [Unknown] when the
	// check errored.
	Availability Availability

	// StatusCode is the HTTP status code returned by the vendor.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the time taken to complete the request.
	Latency time.Duration

	// CheckedAt is the timestamp when the check was performed.
	CheckedAt time.Time

	// Err classifies a failed check: a [*NetworkError] or a
	// [*ResponseError]. nil for a successful check.
	Err error

	// RawResponse contains the vendor response body, limited to 1MB.
	RawResponse []byte
}

// Watcher is the orchestrator for product availability watching.
//
// Watcher drives the check loop for a single [Product], interprets each
// response, keeps the running [stats.Snapshot] counters, logs status lines
// to the console, and dispatches notifications on the out-of-stock →
// in-stock rising edge. It is created with [New] using functional options
// and started with [Watcher.Start].
//
// The typical lifecycle is:
//
//	w, err := stockwatch.New(product, stockwatch.WithNotifier(n))
//	if err != nil {
//	    slog.Error("failed to create watcher", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	w.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// stop the loop cleanly.
type Watcher struct {
	product        Product
	interval       time.Duration
	notifiers      []notify.Notifier
	logger         *slog.Logger
	console        *console.Logger
	stats          *stats.Stats
	stopOnRestock  bool
	checkCallbacks []func(CheckResult)
}

// New creates a [Watcher] for the given product with the given options.
//
// Options have sensible defaults: a 5 minute poll interval, slog.Default()
// for operational logs, a color console logger on stdout, and no
// notifiers (console-only operation).
func New(product Product, opts ...Option) (*Watcher, error) {
	cfg := &watcherConfig{
		interval: defaultPollInterval,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	consoleLogger := cfg.console
	if consoleLogger == nil {
		consoleLogger = console.New()
	}

	return &Watcher{
		product:        product,
		interval:       cfg.interval,
		notifiers:      cfg.notifiers,
		logger:         logger,
		console:        consoleLogger,
		stats:          stats.New(),
		stopOnRestock:  cfg.stopOnRestock,
		checkCallbacks: cfg.checkCallbacks,
	}, nil
}

// Stats returns a snapshot of the running counters.
func (w *Watcher) Stats() stats.Snapshot {
	return w.stats.Snapshot()
}

// Start begins watching the product for availability.
//
// Start is a blocking call that runs until the provided context is
// cancelled or, when [WithStopOnRestock] is set, until the first rising
// edge has been notified. During execution:
//
//   - The product is checked immediately, then at the configured interval
//   - Each check updates the counters and writes a console status line
//   - The out-of-stock → in-stock transition dispatches every notifier
//   - Check errors are logged, counted, and never end the loop
//
// Returns nil on clean shutdown, or an error if the request payload could
// not be built.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	payload, err := w.product.Body()
	if err != nil {
		return fmt.Errorf("failed to build request payload: %w", err)
	}

	w.logger.Info("stockwatch starting",
		"product", w.product.Name(),
		"url", w.product.URL(),
		"interval", w.interval.String(),
		"notifiers", len(w.notifiers),
	)
	w.console.Log(fmt.Sprintf("Starting availability watch for %s...", w.product.Name()), notify.StatusInfo)
	w.console.UpdateTitle(w.stats.Snapshot())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := poller.NewLoop(poller.Target{
		Name:    w.product.Name(),
		URL:     w.product.URL(),
		Headers: w.product.Headers(),
		Payload: payload,
		Timeout: w.product.Timeout(),
	}, w.interval)
	loop.Start(runCtx)

	// previous in-stock value for rising edge detection; initially unknown
	previous := Unknown

	for res := range loop.Results() {
		result := w.evaluate(res)

		w.record(result)
		snap := w.stats.Snapshot()
		w.console.UpdateTitle(snap)

		rising := result.Err == nil && result.Availability == InStock && previous != InStock
		if result.Err == nil {
			previous = result.Availability
		} else {
			// an errored check gives no availability observation
			previous = Unknown
		}

		if rising {
			w.dispatch(runCtx, snap)
			if w.stopOnRestock {
				w.console.Log("Stopping watch as item is in stock.", notify.StatusSuccess)
				cancel()
			}
		}

		for _, cb := range w.checkCallbacks {
			w.invokeCallbackSafe(cb, result)
		}
	}

	loop.Stop()
	w.logger.Info("stockwatch stopped", "checks", w.stats.Snapshot().Checks)
	return nil
}

// evaluate interprets a raw loop result: transport errors and non-2xx
// responses are classified, then the availability extractor runs over the
// body.
func (w *Watcher) evaluate(res poller.Result) CheckResult {
	result := CheckResult{
		Availability: Unknown,
		StatusCode:   res.StatusCode,
		Latency:      res.Latency,
		CheckedAt:    res.CheckedAt,
		RawResponse:  res.Body,
	}

	if res.Err != nil {
		result.Err = &NetworkError{Err: res.Err}
		return result
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		result.Err = &ResponseError{StatusCode: res.StatusCode}
		return result
	}

	extractor := w.product.Extractor()
	if extractor == nil {
		extractor = DefaultExtractor
	}

	availability, err := w.safeExtract(extractor, res.Body, res.StatusCode)
	if err != nil {
		result.Err = &ResponseError{StatusCode: res.StatusCode, Err: err}
		return result
	}
	if availability == Unknown {
		result.Err = &ResponseError{
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("availability flag missing or malformed"),
		}
		return result
	}

	result.Availability = availability
	return result
}

// record updates the counters and writes the console line for one check.
func (w *Watcher) record(result CheckResult) {
	switch {
	case result.Err != nil:
		w.stats.RecordCheck(stats.OutcomeError)
		w.console.Log(fmt.Sprintf("Error checking availability: %v", result.Err), notify.StatusError)
		w.logger.Warn("check failed",
			"product", w.product.Name(),
			"status_code", result.StatusCode,
			"latency_ms", result.Latency.Milliseconds(),
			"error", result.Err.Error(),
		)
	case result.Availability == InStock:
		w.stats.RecordCheck(stats.OutcomeInStock)
		w.console.Log("IN STOCK!", notify.StatusSuccess)
		w.logger.Info("check completed",
			"product", w.product.Name(),
			"availability", result.Availability.String(),
			"latency_ms", result.Latency.Milliseconds(),
		)
	default:
		w.stats.RecordCheck(stats.OutcomeOutOfStock)
		w.console.Log("Still out of stock...", notify.StatusWarning)
		w.logger.Debug("check completed",
			"product", w.product.Name(),
			"availability", result.Availability.String(),
			"latency_ms", result.Latency.Milliseconds(),
		)
	}
}

// dispatch notifies every registered channel about a rising edge. A
// failing notifier is logged and counted but does not prevent the
// remaining notifiers from being attempted.
func (w *Watcher) dispatch(ctx context.Context, snap stats.Snapshot) {
	w.console.Log("Sending notifications...", notify.StatusSuccess)

	event := notify.NewEvent(
		fmt.Sprintf("%s Available!", w.product.Name()),
		fmt.Sprintf("%s is now in stock. Go buy it!", w.product.Name()),
		notify.StatusSuccess,
		snap,
	)

	for _, n := range w.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			w.stats.RecordDeliveryFailure()
			w.console.Log(fmt.Sprintf("Error sending notification via %s: %v", n.Name(), err), notify.StatusError)
			w.logger.Warn("notification delivery failed",
				"notifier", n.Name(),
				"event_id", event.ID,
				"error", err.Error(),
			)
			continue
		}
		w.logger.Info("notification delivered", "notifier", n.Name(), "event_id", event.ID)
	}
}

// safeExtract calls the extractor with panic recovery.
// If the extractor panics, it logs the full stack trace with a correlation
// ID and returns an error containing the ID.
func (w *Watcher) safeExtract(extractor AvailabilityExtractor, body []byte, statusCode int) (availability Availability, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			// log full context for debugging
			w.logger.Error("extractor panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(stack),
			)

			availability = Unknown
			err = fmt.Errorf("extractor panic (correlation_id: %s)", correlationID)
		}
	}()
	return extractor(body, statusCode), nil
}

// invokeCallbackSafe calls a check callback with panic recovery.
// Panics are logged but do not propagate.
func (w *Watcher) invokeCallbackSafe(cb func(CheckResult), result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("check callback panicked",
				"panic", r,
				"product", w.product.Name(),
			)
		}
	}()
	cb(result)
}
