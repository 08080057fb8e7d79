package stockwatch_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avelius/stockwatch"
	"github.com/avelius/stockwatch/console"
	"github.com/avelius/stockwatch/notify"
	"github.com/avelius/stockwatch/stats"
)

// slackNotifier is a caller-defined delivery channel written against the
// exported packages only, the way an importing program would add one.
type slackNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (s *slackNotifier) Name() string { return "slack" }

func (s *slackNotifier) Notify(_ context.Context, event notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// TestWatcher_CustomNotifierChannel wires a caller-defined channel and a
// built-in Discord channel into a watcher using only exported identifiers:
// no type in the flow below lives under internal/.
func TestWatcher_CustomNotifierChannel(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"available":true}`)
	}))
	defer vendor.Close()

	var webhookHits atomic.Int32
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		webhookHits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer webhook.Close()

	product, err := stockwatch.NewProduct("Charcoal Grey 650ml", vendor.URL, stockwatch.Variant{
		CartID:       "cart-123",
		BottleHandle: "bottle-tritan-650ml-charcoal-grey",
		FlavorHandle: "pods-cherry-cola",
		Country:      "it",
		Language:     "en",
	})
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	discord, err := notify.NewDiscord(notify.DiscordConfig{WebhookURL: webhook.URL})
	if err != nil {
		t.Fatalf("NewDiscord() error = %v", err)
	}

	slack := &slackNotifier{}
	w, err := stockwatch.New(product,
		stockwatch.WithPollInterval(time.Second),
		stockwatch.WithNotifiers(slack, discord),
		stockwatch.WithStopOnRestock(true),
		stockwatch.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		stockwatch.WithConsole(console.New(console.WithWriter(io.Discard), console.WithoutTitleUpdates())),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	slack.mu.Lock()
	got := len(slack.events)
	slack.mu.Unlock()
	if got != 1 {
		t.Fatalf("custom notifier events = %d, want 1", got)
	}
	if hits := webhookHits.Load(); hits != 1 {
		t.Errorf("webhook requests = %d, want 1", hits)
	}

	var snap stats.Snapshot = w.Stats()
	if snap.Checks != 1 || snap.InStock != 1 {
		t.Errorf("Stats() = %+v, want one in-stock check", snap)
	}
}
