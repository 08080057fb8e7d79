package stockwatch

import (
	"errors"
	"time"
)

// productConfig holds mutable state during product construction.
type productConfig struct {
	headers       map[string]string
	payloadFields map[string]string
	timeout       time.Duration
	extractor     AvailabilityExtractor
}

// ProductOption is a function that configures a [Product] during
// construction.
//
// ProductOption implements the functional options pattern, allowing
// optional configuration to be passed to [NewProduct] in a type-safe,
// extensible way. Options return an error if validation fails.
//
// Built-in options: [WithHeaders], [WithPayloadFields],
// [WithRequestTimeout], [WithExtractor].
type ProductOption func(*productConfig) error

// WithHeaders adds custom HTTP headers to availability requests for this
// product, overriding the vendor defaults with the same key.
//
// Use this for vendor endpoints that gate requests on extra headers (the
// original endpoint requires a "next-action" token, for example).
//
// Accepts variadic key-value pairs. The number of arguments must be even.
//
// Example:
//
//	p, err := stockwatch.NewProduct(name, url, variant,
//	    stockwatch.WithHeaders("next-action", "0bcc478922f9079b"),
//	)
//
// Returns an error if an odd number of arguments is provided.
func WithHeaders(keyValues ...string) ProductOption {
	return func(cfg *productConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithPayloadFields adds extra fields to the vendor request payload,
// extending or overriding the default variant field set.
//
// The vendor payload schema is an external contract not owned by this
// system, so the field set is deliberately open.
//
// Accepts variadic key-value pairs. The number of arguments must be even.
//
// Example:
//
//	p, err := stockwatch.NewProduct(name, url, variant,
//	    stockwatch.WithPayloadFields("currency", "EUR"),
//	)
//
// Returns an error if an odd number of arguments is provided.
func WithPayloadFields(keyValues ...string) ProductOption {
	return func(cfg *productConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithPayloadFields requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.payloadFields[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithRequestTimeout sets the HTTP request timeout for availability checks.
//
// If the vendor does not respond within this duration, the check is
// classified as a network error. Defaults to 10 seconds if not specified.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) ProductOption {
	return func(cfg *productConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithExtractor sets a custom [AvailabilityExtractor] for this product.
//
// The extractor determines how the vendor response is interpreted as an
// [Availability]. If not specified, the product uses [DefaultExtractor],
// which tries a JSON "available" flag, then falls back to the
// "OUT_OF_STOCK" body marker.
//
// Example:
//
//	p, err := stockwatch.NewProduct(name, url, variant,
//	    stockwatch.WithExtractor(stockwatch.JSONFieldExtractor("variant.available")),
//	)
func WithExtractor(e AvailabilityExtractor) ProductOption {
	return func(cfg *productConfig) error {
		cfg.extractor = e
		return nil
	}
}
