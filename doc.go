// Package stockwatch watches a vendor product endpoint for restocks.
//
// A [Watcher] polls the endpoint at a fixed interval, interprets each
// response as an [Availability], and dispatches notifications (desktop
// popup, Discord webhook) exactly once per out-of-stock → in-stock
// transition while keeping running counters.
//
// # Quick Start
//
// Create a product and start the watcher with graceful shutdown:
//
//	p, _ := stockwatch.NewProduct("Charcoal Grey 650ml", url, variant)
//	w, _ := stockwatch.New(p, stockwatch.WithPollInterval(5*time.Minute))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	w.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Both the watcher and the product use the functional options pattern:
//
//	w, err := stockwatch.New(p,
//	    stockwatch.WithPollInterval(30 * time.Second),
//	    stockwatch.WithNotifier(discordNotifier),
//	    stockwatch.WithStopOnRestock(true),
//	)
//
//	p, err := stockwatch.NewProduct(name, url, variant,
//	    stockwatch.WithHeaders("next-action", token),
//	    stockwatch.WithRequestTimeout(5 * time.Second),
//	    stockwatch.WithExtractor(stockwatch.JSONFieldExtractor("variant.available")),
//	)
//
// # Availability Extractors
//
// Extractors determine how vendor responses are interpreted as
// availability values. Built-in extractors:
//
//   - [MarkerExtractor]: Searches the body for an out-of-stock marker string
//   - [JSONFieldExtractor]: Reads a flag from a JSON field using dot notation
//   - [FirstMatch]: Tries multiple extractors in order, returning the first non-unknown result
//   - [DefaultExtractor]: Tries a JSON "available" flag, then the "OUT_OF_STOCK" marker
//
// Custom extractors can be created by implementing the
// [AvailabilityExtractor] function type.
//
// # Architecture
//
// The root package is the SDK surface. Types that appear in its exported
// API live in public subpackages so callers outside this module can use
// them:
//
//   - notify: the notification capability interface, the event type, and
//     the built-in desktop and Discord channels
//   - stats: running counters with value snapshots
//   - console: colored status lines and terminal title updates
//
// Only internal/poller (the HTTP client and timed check loop) is an
// implementation detail and may change without notice. A YAML-configured
// CLI lives under cmd/stockwatch; see the config package for the file
// format.
package stockwatch
