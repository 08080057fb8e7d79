package stockwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// Variant identifies the exact product variant being monitored.
//
// All fields are required. The cart ID and the bottle/flavor handles are
// vendor-specific identifiers; country and language select the shop locale
// the request is made against.
type Variant struct {
	// CartID is the vendor cart identifier the availability request is
	// scoped to.
	CartID string

	// BottleHandle selects the bottle variant (e.g.
	// "bottle-tritan-650ml-charcoal-grey-us").
	BottleHandle string

	// FlavorHandle selects the flavor pod variant.
	FlavorHandle string

	// Country is the two-letter shop country code (e.g. "it").
	Country string

	// Language is the two-letter shop language code (e.g. "en").
	Language string
}

// validate checks that every variant field is set.
func (v Variant) validate() error {
	switch {
	case v.CartID == "":
		return errors.New("variant cart ID is required")
	case v.BottleHandle == "":
		return errors.New("variant bottle handle is required")
	case v.FlavorHandle == "":
		return errors.New("variant flavor handle is required")
	case v.Country == "":
		return errors.New("variant country is required")
	case v.Language == "":
		return errors.New("variant language is required")
	}
	return nil
}

// Product represents the vendor product endpoint and variant to watch.
//
// Product is immutable after creation via [NewProduct]. All fields are
// private with getter methods that return copies of mutable data (maps),
// ensuring the product cannot be modified after construction.
//
// Products are configured using the functional options pattern with
// [ProductOption] functions such as [WithHeaders], [WithPayloadFields],
// [WithRequestTimeout], and [WithExtractor].
type Product struct {
	name          string
	url           string
	variant       Variant
	headers       map[string]string
	payloadFields map[string]string
	timeout       time.Duration
	extractor     AvailabilityExtractor
}

// NewProduct creates an immutable [Product] with the given display name,
// vendor endpoint URL, and variant identifiers.
//
// All variant fields are validated as non-empty and the URL must be a
// valid http or https URL. Validation happens once, here, rather than on
// every request.
//
// Example:
//
//	p, err := stockwatch.NewProduct("Charcoal Grey 650ml",
//	    "https://shop.example.com/api/availability",
//	    stockwatch.Variant{
//	        CartID:       "cart-123",
//	        BottleHandle: "bottle-tritan-650ml-charcoal-grey-us",
//	        FlavorHandle: "3-pod-variety-pack-vivid-vibes-udb",
//	        Country:      "it",
//	        Language:     "en",
//	    },
//	    stockwatch.WithRequestTimeout(5*time.Second),
//	)
func NewProduct(name, rawURL string, variant Variant, opts ...ProductOption) (Product, error) {
	if name == "" {
		return Product{}, errors.New("product name is required")
	}
	if rawURL == "" {
		return Product{}, errors.New("product url is required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Product{}, fmt.Errorf("invalid product url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Product{}, fmt.Errorf("product url scheme must be http or https, got %q", parsed.Scheme)
	}

	if err := variant.validate(); err != nil {
		return Product{}, err
	}

	cfg := &productConfig{
		headers:       make(map[string]string),
		payloadFields: make(map[string]string),
		timeout:       defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Product{}, err
		}
	}

	return Product{
		name:          name,
		url:           rawURL,
		variant:       variant,
		headers:       cfg.headers,
		payloadFields: cfg.payloadFields,
		timeout:       cfg.timeout,
		extractor:     cfg.extractor,
	}, nil
}

// Name returns the product's display name, used in logs and notifications.
func (p Product) Name() string {
	return p.name
}

// URL returns the vendor endpoint URL the availability request is sent to.
func (p Product) URL() string {
	return p.url
}

// Variant returns the variant identifiers for this product.
func (p Product) Variant() Variant {
	return p.variant
}

// Timeout returns the per-request timeout for availability checks.
// Defaults to 10 seconds if not explicitly set via [WithRequestTimeout].
func (p Product) Timeout() time.Duration {
	return p.timeout
}

// Extractor returns the product's [AvailabilityExtractor] function.
// Returns nil if no custom extractor was specified. When nil, the watch
// loop applies [DefaultExtractor].
func (p Product) Extractor() AvailabilityExtractor {
	return p.extractor
}

// Headers returns the HTTP headers sent with every availability request:
// the vendor defaults merged with any custom headers set via
// [WithHeaders]. Custom headers override defaults with the same key.
// The returned map is a copy.
func (p Product) Headers() map[string]string {
	merged := defaultHeaders(p.variant)
	for k, v := range p.headers {
		merged[k] = v
	}
	return merged
}

// Body renders the vendor request payload: a JSON array wrapping a single
// object carrying the variant identifiers plus any extra fields configured
// via [WithPayloadFields]. The vendor field set is not owned by this
// system, so extra fields may extend or override the defaults.
func (p Product) Body() ([]byte, error) {
	fields := map[string]string{
		"cartId":       p.variant.CartID,
		"bottleHandle": p.variant.BottleHandle,
		"flavorHandle": p.variant.FlavorHandle,
		"country":      p.variant.Country,
		"language":     p.variant.Language,
	}
	for k, v := range p.payloadFields {
		fields[k] = v
	}

	payload, err := json.Marshal([]map[string]string{fields})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}
	return payload, nil
}

// defaultHeaders returns the baseline header set for the vendor endpoint.
// The accept-language value is derived from the variant locale.
func defaultHeaders(v Variant) map[string]string {
	acceptLanguage := fmt.Sprintf("%s-%s,%s;q=0.8", v.Language, strings.ToUpper(v.Country), v.Language)

	return map[string]string{
		"accept":          "text/x-component",
		"accept-language": acceptLanguage,
		"cache-control":   "no-cache",
		"content-type":    "text/plain;charset=UTF-8",
	}
}
