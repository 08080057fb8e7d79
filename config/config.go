// Package config provides YAML configuration parsing for stockwatch.
//
// This package enables running stockwatch as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	poll_interval: 5m
//	request_timeout: 10s
//
//	product:
//	  name: Charcoal Grey 650ml
//	  url: https://shop.example.com/api/availability
//	  cart_id: ${CART_ID}
//	  bottle_handle: bottle-tritan-650ml-charcoal-grey-us
//	  flavor_handle: 3-pod-variety-pack-vivid-vibes-udb
//	  country: it
//	  language: en
//	  availability: marker:OUT_OF_STOCK
//
//	notify:
//	  desktop:
//	    enabled: true
//	  discord:
//	    webhook_url: ${DISCORD_WEBHOOK_URL}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// bounds for production configs; aggressive polling would hammer an
// endpoint this system does not own
const (
	minPollInterval   = 1 * time.Second
	defaultInterval   = 5 * time.Minute
	defaultTimeout    = 10 * time.Second
	minRequestTimeout = 1 * time.Second
	defaultRetryWait  = 2 * time.Second
)

// Config is the root configuration structure for stockwatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// PollInterval is the time between availability checks.
	// Accepts duration strings like "30s", "5m". Defaults to 5m.
	PollInterval Duration `yaml:"poll_interval"`

	// RequestTimeout is the per-request timeout. Defaults to 10s.
	RequestTimeout Duration `yaml:"request_timeout"`

	// StopOnRestock stops the watch after the first restock notification.
	// Off by default: the watch runs until interrupted.
	StopOnRestock bool `yaml:"stop_on_restock"`

	// Product identifies the endpoint and variant to watch.
	Product ProductConfig `yaml:"product"`

	// Notify configures the notification channels.
	Notify NotifyConfig `yaml:"notify"`

	// Console configures the human-facing console output.
	Console ConsoleConfig `yaml:"console"`
}

// ProductConfig identifies the vendor endpoint and product variant.
type ProductConfig struct {
	// Name is the display name used in logs and notifications.
	Name string `yaml:"name"`

	// URL is the vendor availability endpoint.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// CartID is the vendor cart identifier.
	CartID string `yaml:"cart_id"`

	// BottleHandle selects the bottle variant.
	BottleHandle string `yaml:"bottle_handle"`

	// FlavorHandle selects the flavor pod variant.
	FlavorHandle string `yaml:"flavor_handle"`

	// Country is the two-letter shop country code.
	Country string `yaml:"country"`

	// Language is the two-letter shop language code.
	Language string `yaml:"language"`

	// Headers are custom HTTP headers sent with each request, overriding
	// the vendor defaults. Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// PayloadFields are extra fields merged into the vendor request payload.
	PayloadFields map[string]string `yaml:"payload_fields"`

	// Availability determines how responses are interpreted.
	// Can be shorthand ("marker:OUT_OF_STOCK", "json:path", "default")
	// or structured.
	Availability ExtractorConfig `yaml:"availability"`
}

// NotifyConfig configures the notification channels.
type NotifyConfig struct {
	// Desktop configures native desktop popups.
	Desktop DesktopConfig `yaml:"desktop"`

	// Discord configures the Discord-compatible webhook channel.
	Discord DiscordConfig `yaml:"discord"`
}

// DesktopConfig configures the desktop popup channel.
type DesktopConfig struct {
	// Enabled turns the desktop channel on.
	Enabled bool `yaml:"enabled"`
}

// DiscordConfig configures the Discord webhook channel. The channel is
// enabled when WebhookURL is set.
type DiscordConfig struct {
	// WebhookURL is the Discord-compatible webhook endpoint.
	// Supports environment variable substitution.
	WebhookURL string `yaml:"webhook_url"`

	// Username overrides the webhook's display name.
	Username string `yaml:"username"`

	// AvatarURL overrides the webhook's avatar.
	AvatarURL string `yaml:"avatar_url"`

	// FooterText is shown in the embed footer.
	FooterText string `yaml:"footer_text"`

	// RetryWait is how long to wait before the single retry after an
	// HTTP 429 response. Defaults to 2s.
	RetryWait Duration `yaml:"retry_wait"`
}

// ConsoleConfig configures the human-facing console output. Zero values
// mean colors and title updates are enabled.
type ConsoleConfig struct {
	// NoColor disables ANSI colors on status lines.
	NoColor bool `yaml:"no_color"`

	// NoTitle disables terminal window title updates.
	NoTitle bool `yaml:"no_title"`
}

// ExtractorConfig specifies how to derive availability from a response.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	availability: marker:OUT_OF_STOCK
//	availability: json:variant.available
//	availability: default
//
// Structured object:
//
//	availability:
//	  type: json
//	  path: variant.available
type ExtractorConfig struct {
	// Type is the extractor type: "default", "json", "marker".
	Type string

	// Path is the JSON field path (for type: json).
	Path string

	// Marker is the out-of-stock marker string (for type: marker).
	Marker string
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for ExtractorConfig.
func (e *ExtractorConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return e.parseShorthand(s)
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Type   string `yaml:"type"`
			Path   string `yaml:"path"`
			Marker string `yaml:"marker"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		e.Type = raw.Type
		e.Path = raw.Path
		e.Marker = raw.Marker
		return nil
	}

	return fmt.Errorf("availability must be a string or object, got %v", node.Kind)
}

// parseShorthand parses extractor shorthand syntax.
//
// Supported formats:
//   - "default" → use the default extractor
//   - "json:path" → read a flag from a JSON field
//   - "marker:text" → search the body for an out-of-stock marker
func (e *ExtractorConfig) parseShorthand(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if idx := strings.Index(s, ":"); idx != -1 {
		e.Type = s[:idx]
		value := s[idx+1:]

		switch e.Type {
		case "json":
			e.Path = value
		case "marker":
			e.Marker = value
		default:
			return fmt.Errorf("unknown availability extractor type %q", e.Type)
		}
		return nil
	}

	if s != "default" {
		return fmt.Errorf("unknown availability extractor %q (expected 'default', 'json:path', or 'marker:text')", s)
	}
	e.Type = s
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the product URL, headers, and the
// webhook URL. Defaults are applied for PollInterval (5m), RequestTimeout
// (10s), and the Discord retry wait (2s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultInterval)
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = Duration(defaultTimeout)
	}
	if cfg.Notify.Discord.RetryWait == 0 {
		cfg.Notify.Discord.RetryWait = Duration(defaultRetryWait)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}
	if c.RequestTimeout.Duration() < minRequestTimeout {
		return fmt.Errorf("request_timeout must be at least %s, got %s", minRequestTimeout, c.RequestTimeout.Duration())
	}

	p := &c.Product

	if p.Name == "" {
		return errors.New("product: name is required")
	}
	if p.URL == "" {
		return fmt.Errorf("product (%s): url is required", p.Name)
	}
	expanded, err := expandEnvVars(p.URL)
	if err != nil {
		return fmt.Errorf("product (%s): url: %w", p.Name, err)
	}
	p.URL = expanded

	parsedURL, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("product (%s): invalid url: %w", p.Name, err)
	}
	if parsedURL.Scheme == "" {
		return fmt.Errorf("product (%s): url must have a scheme (http:// or https://)", p.Name)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("product (%s): url scheme must be http or https, got %q", p.Name, parsedURL.Scheme)
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"cart_id", &p.CartID},
		{"bottle_handle", &p.BottleHandle},
		{"flavor_handle", &p.FlavorHandle},
		{"country", &p.Country},
		{"language", &p.Language},
	} {
		expanded, err := expandEnvVars(*field.value)
		if err != nil {
			return fmt.Errorf("product (%s): %s: %w", p.Name, field.name, err)
		}
		if expanded == "" {
			return fmt.Errorf("product (%s): %s is required", p.Name, field.name)
		}
		*field.value = expanded
	}

	for k, v := range p.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("product (%s): headers[%s]: %w", p.Name, k, err)
		}
		p.Headers[k] = expanded
	}

	if err := validateExtractor(&p.Availability, fmt.Sprintf("product (%s)", p.Name)); err != nil {
		return err
	}

	d := &c.Notify.Discord
	if d.WebhookURL != "" {
		expanded, err := expandEnvVars(d.WebhookURL)
		if err != nil {
			return fmt.Errorf("notify.discord: webhook_url: %w", err)
		}
		d.WebhookURL = expanded

		parsedHook, err := url.Parse(d.WebhookURL)
		if err != nil {
			return fmt.Errorf("notify.discord: invalid webhook_url: %w", err)
		}
		if parsedHook.Scheme != "http" && parsedHook.Scheme != "https" {
			return fmt.Errorf("notify.discord: webhook_url scheme must be http or https, got %q", parsedHook.Scheme)
		}
	}

	return nil
}

// validateExtractor validates an availability extractor configuration.
func validateExtractor(e *ExtractorConfig, context string) error {
	if e.Type == "" {
		return nil // empty means default, which is valid
	}

	switch e.Type {
	case "default":
		// no additional validation needed
	case "json":
		if e.Path == "" {
			return fmt.Errorf("%s: availability type 'json' requires a path", context)
		}
	case "marker":
		if e.Marker == "" {
			return fmt.Errorf("%s: availability type 'marker' requires a marker", context)
		}
	default:
		return fmt.Errorf("%s: unknown availability extractor type %q", context, e.Type)
	}

	return nil
}
