package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	discordwebhook "github.com/bensch777/discord-webhook-golang"
)

const (
	defaultDiscordUsername = "stockwatch"
	defaultFooterText      = "stockwatch"
	defaultRetryWait       = 2 * time.Second

	// webhook responses are tiny; the limit is protection against a
	// misconfigured URL pointing at an arbitrary server
	maxWebhookResponseSize = 64 << 10
)

// DiscordConfig configures a [DiscordNotifier].
type DiscordConfig struct {
	// WebhookURL is the Discord-compatible webhook endpoint. Required.
	WebhookURL string

	// Username overrides the webhook's display name. Optional.
	Username string

	// AvatarURL overrides the webhook's avatar. Optional.
	AvatarURL string

	// FooterText is shown in the embed footer. Optional.
	FooterText string

	// RetryWait is how long to wait before the single retry after an
	// HTTP 429 response. Defaults to 2 seconds.
	RetryWait time.Duration

	// HTTPClient overrides the HTTP client used for delivery. Optional;
	// mainly for tests.
	HTTPClient *http.Client
}

// DiscordNotifier delivers events as rich embeds to a Discord-compatible
// webhook.
//
// The embed carries the event title (with a status emoji prefix), the
// message as description, a color derived from the event status, the
// dispatch timestamp, and a field block with the current statistics
// snapshot.
//
// Delivery fails softly: network errors and non-2xx responses are returned
// as a [DeliveryError] for the caller to log and count. A 429 response is
// retried once after RetryWait.
type DiscordNotifier struct {
	webhookURL string
	username   string
	avatarURL  string
	footerText string
	retryWait  time.Duration
	client     *http.Client
}

// NewDiscord creates a [DiscordNotifier] from the given configuration.
// Returns an error if the webhook URL is missing or not a valid http(s) URL.
func NewDiscord(cfg DiscordConfig) (*DiscordNotifier, error) {
	if cfg.WebhookURL == "" {
		return nil, errors.New("discord webhook url is required")
	}
	parsed, err := url.Parse(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid discord webhook url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("discord webhook url scheme must be http or https, got %q", parsed.Scheme)
	}

	username := cfg.Username
	if username == "" {
		username = defaultDiscordUsername
	}
	footerText := cfg.FooterText
	if footerText == "" {
		footerText = defaultFooterText
	}
	retryWait := cfg.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &DiscordNotifier{
		webhookURL: cfg.WebhookURL,
		username:   username,
		avatarURL:  cfg.AvatarURL,
		footerText: footerText,
		retryWait:  retryWait,
		client:     client,
	}, nil
}

// Name identifies this channel in logs.
func (d *DiscordNotifier) Name() string {
	return "discord"
}

// Notify posts the event to the webhook. A 429 response is retried once
// after the configured wait; any other non-2xx response or network error
// is returned as a [DeliveryError].
func (d *DiscordNotifier) Notify(ctx context.Context, event Event) error {
	payload, err := d.buildPayload(event)
	if err != nil {
		return &DeliveryError{Notifier: d.Name(), Err: err}
	}

	status, err := d.post(ctx, payload)
	if err == nil && status == http.StatusTooManyRequests {
		select {
		case <-time.After(d.retryWait):
		case <-ctx.Done():
			return &DeliveryError{Notifier: d.Name(), Err: ctx.Err()}
		}
		status, err = d.post(ctx, payload)
	}

	if err != nil {
		return &DeliveryError{Notifier: d.Name(), Err: err}
	}
	if status < 200 || status >= 300 {
		return &DeliveryError{Notifier: d.Name(), Err: fmt.Errorf("webhook returned status %d", status)}
	}
	return nil
}

// buildPayload renders the webhook JSON body for the event.
func (d *DiscordNotifier) buildPayload(event Event) ([]byte, error) {
	embed := discordwebhook.Embed{
		Title:       fmt.Sprintf("%s %s", event.Status.Emoji(), event.Title),
		Description: event.Message,
		Color:       event.Status.EmbedColor(),
		Timestamp:   event.Timestamp,
		Fields: []discordwebhook.Field{
			{
				Name: "Check Statistics",
				Value: fmt.Sprintf("Total Checks: %d\nIn Stock Count: %d\nOut of Stock Count: %d\nError Count: %d",
					event.Stats.Checks, event.Stats.InStock, event.Stats.OutOfStock, event.Stats.Errors),
				Inline: false,
			},
		},
		Footer: discordwebhook.Footer{
			Text:     d.footerText,
			Icon_url: d.avatarURL,
		},
	}

	hook := discordwebhook.Hook{
		Username:   d.username,
		Avatar_url: d.avatarURL,
		Embeds:     []discordwebhook.Embed{embed},
	}

	payload, err := json.Marshal(hook)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	return payload, nil
}

// post sends one delivery attempt and returns the response status code.
func (d *DiscordNotifier) post(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxWebhookResponseSize))

	return resp.StatusCode, nil
}
