package stockwatch

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Availability represents the stock state of a product variant as observed
// in a single check.
//
// Availability is a string type that can hold one of three predefined
// values: [InStock], [OutOfStock], or [Unknown]. Using a string type allows
// for easy JSON serialization and human-readable logging while maintaining
// type safety through the defined constants.
type Availability string

const (
	// InStock indicates the product variant can currently be purchased.
	InStock Availability = "in_stock"

	// OutOfStock indicates the product variant is not currently purchasable.
	OutOfStock Availability = "out_of_stock"

	// Unknown indicates the availability could not be determined.
	// This typically occurs when an extractor cannot parse the response,
	// and is classified as a check error by the [Watcher].
	Unknown Availability = "unknown"
)

// String returns the string representation of the availability.
// This implements the fmt.Stringer interface.
func (a Availability) String() string {
	return string(a)
}

// AvailabilityExtractor is a function type that determines the
// [Availability] of a product variant from the vendor's HTTP response.
//
// AvailabilityExtractor is a pure function: the same inputs always produce
// the same output. This makes extractors easy to test, compose, and reason
// about.
//
// Parameters:
//   - body: The HTTP response body as bytes
//   - statusCode: The HTTP status code (e.g., 200, 404, 500)
//
// Returns the determined [Availability] value. Return [Unknown] when the
// response shape is unexpected; the watcher counts that as an error rather
// than an out-of-stock observation.
//
// Several built-in extractors are provided: [MarkerExtractor],
// [JSONFieldExtractor], and [FirstMatch] for composition.
//
// # Panic Safety
//
// AvailabilityExtractor functions are called within a panic recovery
// boundary. If an extractor panics, the check is classified as an error
// with a correlation ID, and the full stack trace is logged. A misbehaving
// extractor cannot crash the watch loop.
type AvailabilityExtractor func(body []byte, statusCode int) Availability

// MarkerExtractor returns an [AvailabilityExtractor] that searches the
// response body for a vendor-specific out-of-stock marker string.
//
// Availability mapping:
//   - [OutOfStock]: body contains the marker
//   - [InStock]: body does not contain the marker
//   - [Unknown]: body is empty
//
// This mirrors vendor endpoints that inline an availability token (such as
// "OUT_OF_STOCK") in an otherwise opaque response document.
//
// Example:
//
//	extractor := stockwatch.MarkerExtractor("OUT_OF_STOCK")
func MarkerExtractor(marker string) AvailabilityExtractor {
	return func(body []byte, statusCode int) Availability {
		if len(body) == 0 {
			return Unknown
		}
		if strings.Contains(string(body), marker) {
			return OutOfStock
		}
		return InStock
	}
}

// JSONFieldExtractor returns an [AvailabilityExtractor] that extracts the
// availability flag from a JSON field using dot notation to navigate
// nested objects.
//
// The path parameter specifies the field to extract using dot notation.
// For example, "data.variant.available" navigates to
// {"data": {"variant": {"available": true}}}.
//
// The extracted value is mapped to an [Availability]:
//   - [InStock]: true, "true", "in_stock", "instock", "available", "yes"
//   - [OutOfStock]: false, "false", "out_of_stock", "outofstock",
//     "unavailable", "sold_out", "no"
//   - [Unknown]: JSON parsing fails, the field doesn't exist, or the value
//     is not recognised
//
// Boolean and numeric values are converted: true/1 → "true", false/0 → "false".
//
// Example:
//
//	// For response: {"variant": {"available": false}}
//	extractor := stockwatch.JSONFieldExtractor("variant.available")
func JSONFieldExtractor(path string) AvailabilityExtractor {
	parts := strings.Split(path, ".")

	return func(body []byte, statusCode int) Availability {
		var data interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return Unknown
		}

		value := extractJSONPath(data, parts)
		if value == "" {
			return Unknown
		}

		return mapStringToAvailability(strings.ToLower(value))
	}
}

// extractJSONPath walks a JSON structure using dot notation parts.
func extractJSONPath(data interface{}, parts []string) string {
	current := data

	for _, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = obj[part]
		if !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if v == 0 {
			return "false"
		}
		if v == 1 {
			return "true"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// mapStringToAvailability maps common availability strings to Availability values.
func mapStringToAvailability(s string) Availability {
	switch s {
	case "true", "in_stock", "instock", "available", "yes":
		return InStock
	case "false", "out_of_stock", "outofstock", "unavailable", "sold_out", "no":
		return OutOfStock
	default:
		return Unknown
	}
}

// FirstMatch returns an [AvailabilityExtractor] that tries multiple
// extractors in order, returning the first result that is not [Unknown].
//
// This is useful for composing extractors with fallback behavior. Each
// extractor is tried in sequence until one returns a definitive
// availability.
//
// If all extractors return [Unknown], FirstMatch returns [Unknown].
//
// Example:
//
//	// Try a JSON flag first, fall back to the body marker
//	extractor := stockwatch.FirstMatch(
//	    stockwatch.JSONFieldExtractor("variant.available"),
//	    stockwatch.MarkerExtractor("OUT_OF_STOCK"),
//	)
func FirstMatch(extractors ...AvailabilityExtractor) AvailabilityExtractor {
	return func(body []byte, statusCode int) Availability {
		for _, extractor := range extractors {
			availability := extractor(body, statusCode)
			if availability != Unknown {
				return availability
			}
		}
		return Unknown
	}
}

// DefaultExtractor is the [AvailabilityExtractor] used when no extractor
// is specified on a [Product].
//
// DefaultExtractor uses [FirstMatch] to try:
//  1. [JSONFieldExtractor] with path "available" (for JSON responses carrying a flag)
//  2. [MarkerExtractor] with marker "OUT_OF_STOCK" (for opaque vendor documents)
var DefaultExtractor = FirstMatch(
	JSONFieldExtractor("available"),
	MarkerExtractor("OUT_OF_STOCK"),
)
