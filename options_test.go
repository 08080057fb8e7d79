package stockwatch

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avelius/stockwatch/console"
	"github.com/avelius/stockwatch/notify"
)

// nopNotifier is a no-op channel for option wiring tests.
type nopNotifier struct{ name string }

func (n *nopNotifier) Name() string { return n.name }

func (n *nopNotifier) Notify(_ context.Context, _ notify.Event) error { return nil }

func TestNew_Defaults(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	w, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.interval != 5*time.Minute {
		t.Errorf("default interval = %v, want 5m", w.interval)
	}
	if w.logger == nil {
		t.Error("default logger is nil")
	}
	if w.console == nil {
		t.Error("default console is nil")
	}
	if len(w.notifiers) != 0 {
		t.Errorf("default notifiers = %d, want 0", len(w.notifiers))
	}
	if w.stopOnRestock {
		t.Error("stopOnRestock should default to false")
	}
}

func TestWithPollInterval(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	w, err := New(p, WithPollInterval(30*time.Second))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", w.interval)
	}
}

func TestWithPollInterval_TooShort(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	for _, d := range []time.Duration{0, 500 * time.Millisecond, -time.Second} {
		if _, err := New(p, WithPollInterval(d)); err == nil {
			t.Errorf("New(WithPollInterval(%v)) expected error, got nil", d)
		}
	}
}

func TestWithNotifier(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	w, err := New(p,
		WithNotifier(&nopNotifier{name: "a"}),
		WithNotifier(&nopNotifier{name: "b"}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(w.notifiers) != 2 {
		t.Errorf("notifiers = %d, want 2", len(w.notifiers))
	}
}

func TestWithNotifier_Nil(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	if _, err := New(p, WithNotifier(nil)); err == nil {
		t.Error("New(WithNotifier(nil)) expected error, got nil")
	}
}

func TestWithNotifiers(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	w, err := New(p, WithNotifiers(&nopNotifier{name: "a"}, &nopNotifier{name: "b"}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(w.notifiers) != 2 {
		t.Errorf("notifiers = %d, want 2", len(w.notifiers))
	}

	if _, err := New(p, WithNotifiers(&nopNotifier{name: "a"}, nil)); err == nil {
		t.Error("New(WithNotifiers(..., nil)) expected error, got nil")
	}
}

func TestWithLogger(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(p, WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.logger != logger {
		t.Error("WithLogger did not set the logger")
	}

	if _, err := New(p, WithLogger(nil)); err == nil {
		t.Error("New(WithLogger(nil)) expected error, got nil")
	}
}

func TestWithConsole(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	c := console.New(console.WithWriter(io.Discard))
	w, err := New(p, WithConsole(c))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.console != c {
		t.Error("WithConsole did not set the console logger")
	}

	if _, err := New(p, WithConsole(nil)); err == nil {
		t.Error("New(WithConsole(nil)) expected error, got nil")
	}
}

func TestWithStopOnRestock(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	w, err := New(p, WithStopOnRestock(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !w.stopOnRestock {
		t.Error("WithStopOnRestock(true) did not set the flag")
	}
}

func TestWithCheckCallback_Nil(t *testing.T) {
	p, err := NewProduct("P", "https://shop.example.com", testVariant())
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	if _, err := New(p, WithCheckCallback(nil)); err == nil {
		t.Error("New(WithCheckCallback(nil)) expected error, got nil")
	}
}
