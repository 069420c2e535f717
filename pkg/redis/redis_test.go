package redis

import (
	"context"
	"testing"
)

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"quote", QuoteKey("AAPL"), "quote:AAPL"},
		{"ohlcv", OHLCVKey("MSFT", "1y"), "ohlcv:MSFT:1y"},
		{"statements", StatementsKey("NVDA"), "statements:NVDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	// Redis 비활성화 시 캐시는 항상 miss + no-op
	client := &Client{enabled: false}
	cache := NewCache(client, "aurelius")
	ctx := context.Background()

	var dest map[string]float64
	found, err := cache.Get(ctx, QuoteKey("AAPL"), &dest)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("disabled cache should never report a hit")
	}

	if err := cache.Set(ctx, QuoteKey("AAPL"), map[string]float64{"price": 123}, TTLQuote); err != nil {
		t.Errorf("Set() on disabled cache should be a no-op, got %v", err)
	}
	if err := cache.Delete(ctx, QuoteKey("AAPL")); err != nil {
		t.Errorf("Delete() on disabled cache should be a no-op, got %v", err)
	}
}
