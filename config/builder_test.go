package config

import (
	"testing"
	"time"

	"github.com/avelius/stockwatch"
)

func testConfig(t *testing.T, yaml string) *Config {
	t.Helper()
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg
}

func TestBuildProduct(t *testing.T) {
	cfg := testConfig(t, `
request_timeout: 5s
product:
  name: Charcoal Grey 650ml
  url: https://shop.example.com/api
  cart_id: cart-123
  bottle_handle: bottle-650ml
  flavor_handle: flavor-pack
  country: it
  language: en
  headers:
    next-action: token123
  availability: marker:OUT_OF_STOCK
`)

	p, err := BuildProduct(cfg)
	if err != nil {
		t.Fatalf("BuildProduct() error = %v", err)
	}

	if p.Name() != "Charcoal Grey 650ml" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.URL() != "https://shop.example.com/api" {
		t.Errorf("URL() = %q", p.URL())
	}

	v := p.Variant()
	if v.CartID != "cart-123" || v.Country != "it" || v.Language != "en" {
		t.Errorf("Variant() = %+v", v)
	}

	if p.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", p.Timeout())
	}
	if got := p.Headers()["next-action"]; got != "token123" {
		t.Errorf("Headers()[next-action] = %q, want %q", got, "token123")
	}

	extractor := p.Extractor()
	if extractor == nil {
		t.Fatal("Extractor() = nil, want the configured marker extractor")
	}
	if got := extractor([]byte("body with OUT_OF_STOCK inside"), 200); got != stockwatch.OutOfStock {
		t.Errorf("extractor = %v, want %v", got, stockwatch.OutOfStock)
	}
}

func TestBuildProduct_DefaultExtractor(t *testing.T) {
	cfg := testConfig(t, minimalYAML)

	p, err := BuildProduct(cfg)
	if err != nil {
		t.Fatalf("BuildProduct() error = %v", err)
	}
	if p.Extractor() != nil {
		t.Error("Extractor() != nil, empty config should leave the default in place")
	}
}

func TestBuildProduct_JSONExtractor(t *testing.T) {
	yaml := minimalYAML + "  availability: json:variant.available\n"
	cfg := testConfig(t, yaml)

	p, err := BuildProduct(cfg)
	if err != nil {
		t.Fatalf("BuildProduct() error = %v", err)
	}

	extractor := p.Extractor()
	if extractor == nil {
		t.Fatal("Extractor() = nil, want the configured json extractor")
	}
	if got := extractor([]byte(`{"variant": {"available": true}}`), 200); got != stockwatch.InStock {
		t.Errorf("extractor = %v, want %v", got, stockwatch.InStock)
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := testConfig(t, `
poll_interval: 30s
stop_on_restock: true
product:
  name: P
  url: https://shop.example.com/api
  cart_id: c
  bottle_handle: b
  flavor_handle: f
  country: it
  language: en
notify:
  desktop:
    enabled: true
  discord:
    webhook_url: https://discord.com/api/webhooks/1/x
console:
  no_color: true
  no_title: true
`)

	opts, err := BuildOptions(cfg, nil)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	// the options must apply cleanly to a watcher
	p, err := BuildProduct(cfg)
	if err != nil {
		t.Fatalf("BuildProduct() error = %v", err)
	}
	if _, err := stockwatch.New(p, opts...); err != nil {
		t.Errorf("New() with built options error = %v", err)
	}
}

func TestBuildOptions_InvalidInterval(t *testing.T) {
	cfg := testConfig(t, minimalYAML)
	cfg.PollInterval = Duration(500 * time.Millisecond) // below the SDK minimum

	opts, err := BuildOptions(cfg, nil)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	p, err := BuildProduct(cfg)
	if err != nil {
		t.Fatalf("BuildProduct() error = %v", err)
	}
	if _, err := stockwatch.New(p, opts...); err == nil {
		t.Error("New() expected error for sub-second interval, got nil")
	}
}

func TestNotifierCount(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"none", minimalYAML, 0},
		{"desktop only", minimalYAML + "\nnotify:\n  desktop:\n    enabled: true\n", 1},
		{"discord only", minimalYAML + "\nnotify:\n  discord:\n    webhook_url: https://discord.com/api/webhooks/1/x\n", 1},
		{"both", minimalYAML + "\nnotify:\n  desktop:\n    enabled: true\n  discord:\n    webhook_url: https://discord.com/api/webhooks/1/x\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.yaml)
			if got := NotifierCount(cfg); got != tt.want {
				t.Errorf("NotifierCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMapToKeyValuePairs(t *testing.T) {
	pairs := mapToKeyValuePairs(map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	})

	want := []string{"a", "1", "b", "2", "c", "3"}
	if len(pairs) != len(want) {
		t.Fatalf("pairs = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %q, want %q (keys must be sorted)", i, pairs[i], want[i])
		}
	}
}
