package config

import (
	"log/slog"
	"sort"

	"github.com/avelius/stockwatch"
	"github.com/avelius/stockwatch/console"
	"github.com/avelius/stockwatch/notify"
)

// BuildProduct converts the parsed configuration into an SDK [stockwatch.Product].
func BuildProduct(cfg *Config) (stockwatch.Product, error) {
	p := cfg.Product

	var opts []stockwatch.ProductOption

	if len(p.Headers) > 0 {
		opts = append(opts, stockwatch.WithHeaders(mapToKeyValuePairs(p.Headers)...))
	}
	if len(p.PayloadFields) > 0 {
		opts = append(opts, stockwatch.WithPayloadFields(mapToKeyValuePairs(p.PayloadFields)...))
	}
	if cfg.RequestTimeout != 0 {
		opts = append(opts, stockwatch.WithRequestTimeout(cfg.RequestTimeout.Duration()))
	}

	extractor := buildExtractor(p.Availability)
	if extractor != nil {
		opts = append(opts, stockwatch.WithExtractor(extractor))
	}

	return stockwatch.NewProduct(p.Name, p.URL, stockwatch.Variant{
		CartID:       p.CartID,
		BottleHandle: p.BottleHandle,
		FlavorHandle: p.FlavorHandle,
		Country:      p.Country,
		Language:     p.Language,
	}, opts...)
}

// BuildOptions converts the parsed configuration into SDK options for
// [stockwatch.New]: the poll interval, console settings, and the
// configured notification channels.
func BuildOptions(cfg *Config, logger *slog.Logger) ([]stockwatch.Option, error) {
	opts := []stockwatch.Option{
		stockwatch.WithPollInterval(cfg.PollInterval.Duration()),
		stockwatch.WithStopOnRestock(cfg.StopOnRestock),
	}
	if logger != nil {
		opts = append(opts, stockwatch.WithLogger(logger))
	}

	var consoleOpts []console.Option
	if cfg.Console.NoColor {
		consoleOpts = append(consoleOpts, console.WithoutColors())
	}
	if cfg.Console.NoTitle {
		consoleOpts = append(consoleOpts, console.WithoutTitleUpdates())
	}
	opts = append(opts, stockwatch.WithConsole(console.New(consoleOpts...)))

	notifiers, err := buildNotifiers(cfg, logger)
	if err != nil {
		return nil, err
	}
	if len(notifiers) > 0 {
		opts = append(opts, stockwatch.WithNotifiers(notifiers...))
	}

	return opts, nil
}

// NotifierCount returns how many notification channels the config enables.
func NotifierCount(cfg *Config) int {
	count := 0
	if cfg.Notify.Desktop.Enabled {
		count++
	}
	if cfg.Notify.Discord.WebhookURL != "" {
		count++
	}
	return count
}

// buildNotifiers assembles the configured notification channels.
func buildNotifiers(cfg *Config, logger *slog.Logger) ([]notify.Notifier, error) {
	var notifiers []notify.Notifier

	if cfg.Notify.Desktop.Enabled {
		notifiers = append(notifiers, notify.NewDesktop(logger))
	}

	if cfg.Notify.Discord.WebhookURL != "" {
		d := cfg.Notify.Discord
		discord, err := notify.NewDiscord(notify.DiscordConfig{
			WebhookURL: d.WebhookURL,
			Username:   d.Username,
			AvatarURL:  d.AvatarURL,
			FooterText: d.FooterText,
			RetryWait:  d.RetryWait.Duration(),
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, discord)
	}

	return notifiers, nil
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}

// buildExtractor converts ExtractorConfig to an AvailabilityExtractor.
// Returns nil for default/empty extractors (the SDK uses DefaultExtractor).
func buildExtractor(ec ExtractorConfig) stockwatch.AvailabilityExtractor {
	switch ec.Type {
	case "", "default":
		// nil signals the SDK to use DefaultExtractor
		return nil
	case "json":
		return stockwatch.JSONFieldExtractor(ec.Path)
	case "marker":
		return stockwatch.MarkerExtractor(ec.Marker)
	default:
		// validation should catch this, but return nil as fallback
		return nil
	}
}
