package provider

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/voicecart/search-backend/internal/usecase"
)

// rawItem — позиция из ответа провайдера до нормализации. Провайдеры
// агрегируют разные ритейлеры, поэтому одно и то же поле приходит под
// разными именами, а цена — в трёх разных формах.
type rawItem struct {
	Title        *string         `json:"title"`
	Name         *string         `json:"name"`
	ProductURL   *string         `json:"product_url"`
	Link         *string         `json:"link"`
	URL          *string         `json:"url"`
	ImageURL     *string         `json:"image_url"`
	Image        *string         `json:"image"`
	Description  *string         `json:"description"`
	Rating       *float64        `json:"rating"`
	ReviewsCount *int32          `json:"reviews_count"`
	Reviews      *int32          `json:"reviews"`
	Price        json.RawMessage `json:"price"`
	Currency     *string         `json:"currency"`
	Availability *bool           `json:"availability"`
	InStock      *bool           `json:"in_stock"`
	Source       *string         `json:"source"`
	Retailer     *string         `json:"retailer"`
}

// priceObject — структурная форма цены: {"value": ..., "currency": "..."}.
type priceObject struct {
	Value    json.RawMessage `json:"value"`
	Amount   json.RawMessage `json:"amount"`
	Currency *string         `json:"currency"`
}

// normalizeItem приводит сырую позицию к канонической форме.
// Возвращает false для позиций, непригодных к сохранению: без названия,
// без URL товара или с неположительной ценой.
func normalizeItem(raw *rawItem, defaultSource string) (usecase.ProviderItem, bool) {
	title := firstNonEmpty(raw.Title, raw.Name)
	productURL := firstNonEmpty(raw.ProductURL, raw.Link, raw.URL)
	if title == "" || productURL == "" {
		return usecase.ProviderItem{}, false
	}

	priceCents, currency := normalizePrice(raw.Price)
	if priceCents <= 0 {
		return usecase.ProviderItem{}, false
	}
	if currency == "" {
		if raw.Currency != nil && *raw.Currency != "" {
			currency = *raw.Currency
		} else {
			currency = "USD"
		}
	}

	rating := raw.Rating
	if rating != nil && (*rating < 0 || *rating > 5) {
		rating = nil
	}

	reviews := raw.ReviewsCount
	if reviews == nil {
		reviews = raw.Reviews
	}

	availability := true
	if raw.Availability != nil {
		availability = *raw.Availability
	} else if raw.InStock != nil {
		availability = *raw.InStock
	}

	source := firstNonEmpty(raw.Source, raw.Retailer)
	if source == "" {
		source = defaultSource
	}

	imageURL := raw.ImageURL
	if imageURL == nil {
		imageURL = raw.Image
	}

	return usecase.ProviderItem{
		Title:        title,
		ProductURL:   productURL,
		ImageURL:     imageURL,
		Description:  raw.Description,
		Rating:       rating,
		ReviewsCount: reviews,
		PriceCents:   priceCents,
		Currency:     strings.ToUpper(currency),
		Availability: availability,
		Source:       source,
	}, true
}

// normalizePrice парсит цену любой из поддерживаемых форм в центы.
// Непарсибельная цена нормализуется в 0, и позиция отбрасывается выше.
func normalizePrice(raw json.RawMessage) (int64, string) {
	if len(raw) == 0 {
		return 0, ""
	}

	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		var obj priceObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, ""
		}
		value := obj.Value
		if len(value) == 0 {
			value = obj.Amount
		}
		cents, _ := normalizePrice(value)
		currency := ""
		if obj.Currency != nil {
			currency = *obj.Currency
		}
		return cents, currency

	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ""
		}
		return parsePriceString(s), ""

	default:
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return 0, ""
		}
		return toCents(d), ""
	}
}

// parsePriceString вычищает из строки валютные символы и разделители
// разрядов, после чего парсит её как десятичное число.
func parsePriceString(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	// Запятая — либо десятичный разделитель ("12,99"), либо разделитель
	// разрядов ("1,299.00"); решает наличие точки
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}

	return toCents(d)
}

func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func firstNonEmpty(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}

	return ""
}
