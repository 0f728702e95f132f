package provider

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func i32Ptr(v int32) *int32     { return &v }
func boolPtr(v bool) *bool      { return &v }

func TestNormalizePriceForms(t *testing.T) {
	cases := []struct {
		name         string
		raw          string
		wantCents    int64
		wantCurrency string
	}{
		{"bare integer", `50`, 5000, ""},
		{"bare decimal", `12.34`, 1234, ""},
		{"quoted plain", `"12.34"`, 1234, ""},
		{"dollar sign", `"$12.34"`, 1234, ""},
		{"thousands separator", `"1,299.00"`, 129900, ""},
		{"comma decimal", `"12,99"`, 1299, ""},
		{"euro suffix", `"12.99 EUR"`, 1299, ""},
		{"object with value", `{"value": 12.34, "currency": "eur"}`, 1234, "eur"},
		{"object with amount", `{"amount": "15.00"}`, 1500, ""},
		{"object with string value", `{"value": "$9.99", "currency": "USD"}`, 999, "USD"},
		{"empty", ``, 0, ""},
		{"null", `null`, 0, ""},
		{"garbage", `"free"`, 0, ""},
		{"malformed object", `{"value": [1]}`, 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cents, currency := normalizePrice(json.RawMessage(tc.raw))
			if cents != tc.wantCents || currency != tc.wantCurrency {
				t.Errorf("normalizePrice(%s) = (%d, %q), want (%d, %q)", tc.raw, cents, currency, tc.wantCents, tc.wantCurrency)
			}
		})
	}
}

func TestParsePriceStringRounding(t *testing.T) {
	if got := parsePriceString("10.999"); got != 1100 {
		t.Errorf("parsePriceString(10.999) = %d, want 1100", got)
	}
	if got := parsePriceString("-5.00"); got != -500 {
		t.Errorf("parsePriceString(-5.00) = %d, want -500", got)
	}
}

func TestNormalizeItemFieldAliases(t *testing.T) {
	raw := &rawItem{
		Name:     strPtr("Wireless Mouse"),
		Link:     strPtr("https://megastore.example.com/mouse"),
		Image:    strPtr("https://img.example.com/mouse.jpg"),
		Reviews:  i32Ptr(42),
		Price:    json.RawMessage(`19.99`),
		InStock:  boolPtr(false),
		Retailer: strPtr("megastore"),
	}

	item, ok := normalizeItem(raw, "http")
	if !ok {
		t.Fatal("item must survive normalization")
	}

	if item.Title != "Wireless Mouse" {
		t.Errorf("title = %q", item.Title)
	}
	if item.ProductURL != "https://megastore.example.com/mouse" {
		t.Errorf("product url = %q", item.ProductURL)
	}
	if item.ImageURL == nil || *item.ImageURL != "https://img.example.com/mouse.jpg" {
		t.Error("image alias was not applied")
	}
	if item.ReviewsCount == nil || *item.ReviewsCount != 42 {
		t.Error("reviews alias was not applied")
	}
	if item.Availability {
		t.Error("in_stock=false must map to availability=false")
	}
	if item.Source != "megastore" {
		t.Errorf("source = %q, want megastore", item.Source)
	}
	if item.PriceCents != 1999 {
		t.Errorf("price = %d, want 1999", item.PriceCents)
	}
}

func TestNormalizeItemDropsUnusableItems(t *testing.T) {
	cases := []struct {
		name string
		raw  *rawItem
	}{
		{"no title", &rawItem{Link: strPtr("https://x.example.com/p"), Price: json.RawMessage(`10`)}},
		{"no url", &rawItem{Title: strPtr("Item"), Price: json.RawMessage(`10`)}},
		{"zero price", &rawItem{Title: strPtr("Item"), Link: strPtr("https://x.example.com/p"), Price: json.RawMessage(`0`)}},
		{"negative price", &rawItem{Title: strPtr("Item"), Link: strPtr("https://x.example.com/p"), Price: json.RawMessage(`"-5.00"`)}},
		{"unparsable price", &rawItem{Title: strPtr("Item"), Link: strPtr("https://x.example.com/p"), Price: json.RawMessage(`"call us"`)}},
		{"missing price", &rawItem{Title: strPtr("Item"), Link: strPtr("https://x.example.com/p")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := normalizeItem(tc.raw, "http"); ok {
				t.Error("item must be dropped")
			}
		})
	}
}

func TestNormalizeItemCurrencyFallback(t *testing.T) {
	base := func() *rawItem {
		return &rawItem{
			Title: strPtr("Item"),
			URL:   strPtr("https://x.example.com/p"),
		}
	}

	raw := base()
	raw.Price = json.RawMessage(`{"value": 10, "currency": "eur"}`)
	item, _ := normalizeItem(raw, "http")
	if item.Currency != "EUR" {
		t.Errorf("price-object currency = %q, want EUR", item.Currency)
	}

	raw = base()
	raw.Price = json.RawMessage(`10`)
	raw.Currency = strPtr("gbp")
	item, _ = normalizeItem(raw, "http")
	if item.Currency != "GBP" {
		t.Errorf("item-level currency = %q, want GBP", item.Currency)
	}

	raw = base()
	raw.Price = json.RawMessage(`10`)
	item, _ = normalizeItem(raw, "http")
	if item.Currency != "USD" {
		t.Errorf("default currency = %q, want USD", item.Currency)
	}
}

func TestNormalizeItemDropsOutOfRangeRating(t *testing.T) {
	raw := &rawItem{
		Title:  strPtr("Item"),
		URL:    strPtr("https://x.example.com/p"),
		Price:  json.RawMessage(`10`),
		Rating: f64Ptr(7.5),
	}

	item, ok := normalizeItem(raw, "http")
	if !ok {
		t.Fatal("item must survive normalization")
	}
	if item.Rating != nil {
		t.Error("out-of-range rating must be dropped, not clamped")
	}
}

func TestNormalizeItemDefaultsAvailabilityAndSource(t *testing.T) {
	raw := &rawItem{
		Title: strPtr("Item"),
		URL:   strPtr("https://x.example.com/p"),
		Price: json.RawMessage(`10`),
	}

	item, ok := normalizeItem(raw, "http")
	if !ok {
		t.Fatal("item must survive normalization")
	}
	if !item.Availability {
		t.Error("availability must default to true")
	}
	if item.Source != "http" {
		t.Errorf("source = %q, want provider default", item.Source)
	}
}
