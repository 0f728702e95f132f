package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voicecart/search-backend/internal/cfg"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
)

type testLogger struct{}

func (testLogger) Debugf(_ string, _ ...any)          {}
func (testLogger) Infof(_ string, _ ...any)           {}
func (testLogger) Warnf(_ string, _ ...any)           {}
func (testLogger) Errorf(_ error, _ string, _ ...any) {}

func newTestProvider(baseURL string) *HTTPProvider {
	return NewHTTPProvider(&cfg.ProviderCfg{
		BaseURL:    baseURL,
		Timeout:    time.Second,
		MaxResults: 20,
	}, testLogger{})
}

func priceBound(v int64) *int64 { return &v }

// Ценовые предпочтения уходят провайдеру параметрами запроса, но его ответ
// не фильтруется: сохраняется всё, что провайдер вернул, включая позиции
// вне диапазона. Фильтры применяются при чтении результатов.
func TestSearchKeepsItemsOutsidePricePreferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("min_price"); got != "100.00" {
			t.Errorf("min_price param = %q, want 100.00", got)
		}
		if got := r.URL.Query().Get("max_price"); got != "400.00" {
			t.Errorf("max_price param = %q, want 400.00", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"title": "Budget", "url": "https://shop.example.com/budget", "price": 150},
			{"title": "Mid", "url": "https://shop.example.com/mid", "price": 399.99},
			{"title": "Premium", "url": "https://shop.example.com/premium", "price": 999}
		]}`))
	}))
	defer srv.Close()

	items, err := newTestProvider(srv.URL).Search(context.Background(), &usecase.ProviderSearchReq{
		SearchText:    "wireless headphones",
		MinPriceCents: priceBound(10000),
		MaxPriceCents: priceBound(40000),
		MaxResults:    20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[2].Title != "Premium" || items[2].PriceCents != 99900 {
		t.Errorf("out-of-range item must be kept as-is, got %+v", items[2])
	}
}

func TestSearchDropsOnlyUnusableItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"title": "Good", "url": "https://shop.example.com/good", "price": "12.34"},
			{"title": "Free", "url": "https://shop.example.com/free", "price": 0},
			{"url": "https://shop.example.com/untitled", "price": 10}
		]`))
	}))
	defer srv.Close()

	items, err := newTestProvider(srv.URL).Search(context.Background(), &usecase.ProviderSearchReq{
		SearchText: "anything",
		MaxResults: 20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(items) != 1 || items[0].Title != "Good" {
		t.Fatalf("got %+v, want only the usable item", items)
	}
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"title": "A", "url": "https://shop.example.com/a", "price": 10},
			{"title": "B", "url": "https://shop.example.com/b", "price": 11},
			{"title": "C", "url": "https://shop.example.com/c", "price": 12}
		]}`))
	}))
	defer srv.Close()

	items, err := newTestProvider(srv.URL).Search(context.Background(), &usecase.ProviderSearchReq{
		SearchText: "anything",
		MaxResults: 2,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(items) != 2 {
		t.Errorf("got %d items, want the configured cap of 2", len(items))
	}
}

func TestSearchErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Search(context.Background(), &usecase.ProviderSearchReq{
		SearchText: "anything",
		MaxResults: 20,
	})
	if !errors.Is(err, e.ErrProviderUnavailable) {
		t.Errorf("got %v, want %v", err, e.ErrProviderUnavailable)
	}
}

func TestSearchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Search(context.Background(), &usecase.ProviderSearchReq{
		SearchText: "anything",
		MaxResults: 20,
	})
	if !errors.Is(err, e.ErrProviderBadPayload) {
		t.Errorf("got %v, want %v", err, e.ErrProviderBadPayload)
	}
}
