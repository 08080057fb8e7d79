package stockwatch

import (
	"errors"
	"log/slog"
	"time"

	"github.com/avelius/stockwatch/console"
	"github.com/avelius/stockwatch/notify"
)

// watcherConfig holds mutable state during watcher construction.
type watcherConfig struct {
	interval       time.Duration
	notifiers      []notify.Notifier
	logger         *slog.Logger
	console        *console.Logger
	stopOnRestock  bool
	checkCallbacks []func(CheckResult)
}

// Option is a function that configures a [Watcher] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithPollInterval], [WithNotifier], [WithNotifiers],
// [WithLogger], [WithConsole], [WithStopOnRestock], [WithCheckCallback].
type Option func(*watcherConfig) error

// WithPollInterval sets how often the product is checked.
//
// Defaults to 5 minutes if not specified. The interval must be at least
// 1 second to prevent hammering the vendor endpoint.
//
// Example:
//
//	w, err := stockwatch.New(product,
//	    stockwatch.WithPollInterval(30 * time.Second),
//	)
//
// Returns an error if the duration is below 1 second.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *watcherConfig) error {
		if d < time.Second {
			return errors.New("poll interval must be at least 1 second")
		}
		cfg.interval = d
		return nil
	}
}

// WithNotifier registers a notification channel with the watcher.
//
// Can be called multiple times to register multiple channels. Every
// registered notifier is attempted on each rising edge; one channel
// failing does not prevent the others.
//
// Returns an error if the notifier is nil.
func WithNotifier(n notify.Notifier) Option {
	return func(cfg *watcherConfig) error {
		if n == nil {
			return errors.New("notifier must not be nil")
		}
		cfg.notifiers = append(cfg.notifiers, n)
		return nil
	}
}

// WithNotifiers registers multiple notification channels at once.
// Equivalent to calling [WithNotifier] for each.
func WithNotifiers(notifiers ...notify.Notifier) Option {
	return func(cfg *watcherConfig) error {
		for _, n := range notifiers {
			if n == nil {
				return errors.New("notifier must not be nil")
			}
			cfg.notifiers = append(cfg.notifiers, n)
		}
		return nil
	}
}

// WithLogger sets the structured logger for operational logs.
// Defaults to slog.Default() if not specified. Human-facing status lines
// go through the console logger instead; see [WithConsole].
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *watcherConfig) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithConsole sets the console logger used for human-facing status lines
// and terminal title updates. Defaults to a color logger on stdout.
func WithConsole(c *console.Logger) Option {
	return func(cfg *watcherConfig) error {
		if c == nil {
			return errors.New("console logger must not be nil")
		}
		cfg.console = c
		return nil
	}
}

// WithStopOnRestock makes [Watcher.Start] return after the first rising
// edge has been notified, instead of watching indefinitely.
//
// Off by default: the watcher keeps running and notifies again on every
// later out-of-stock → in-stock transition.
func WithStopOnRestock(stop bool) Option {
	return func(cfg *watcherConfig) error {
		cfg.stopOnRestock = stop
		return nil
	}
}

// WithCheckCallback registers a callback invoked after every completed
// check with the interpreted [CheckResult].
//
// Callbacks run on the watch goroutine after counters are updated, so a
// [Watcher.Stats] call from inside a callback observes the check that
// triggered it. Panics in callbacks are recovered and logged.
//
// Returns an error if the callback is nil.
func WithCheckCallback(cb func(CheckResult)) Option {
	return func(cfg *watcherConfig) error {
		if cb == nil {
			return errors.New("check callback must not be nil")
		}
		cfg.checkCallbacks = append(cfg.checkCallbacks, cb)
		return nil
	}
}
