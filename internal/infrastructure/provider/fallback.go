package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strings"

	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/usecase"
)

// fallbackRetailers — фиксированный набор источников резервного каталога.
var fallbackRetailers = []string{"shopmart", "megastore", "pricehub", "dealzone"}

var fallbackModifiers = []string{"Pro", "Classic", "Max", "Lite", "Plus", "Ultra"}

// FallbackProvider — резервный генератор каталога на случай отсутствия
// сконфигурированного внешнего провайдера. Выдача детерминирована текстом
// запроса: одинаковый запрос даёт одинаковые товары, что держит повторную
// диспетчеризацию идемпотентной по URL.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

func (p *FallbackProvider) Name() string {
	return domain.SourceFallback
}

func (p *FallbackProvider) Search(_ context.Context, req *usecase.ProviderSearchReq) ([]usecase.ProviderItem, error) {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(req.SearchText))))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	minCents := int64(500)
	maxCents := int64(50000)
	if req.MinPriceCents != nil && *req.MinPriceCents > minCents {
		minCents = *req.MinPriceCents
	}
	if req.MaxPriceCents != nil && *req.MaxPriceCents < maxCents {
		maxCents = *req.MaxPriceCents
	}
	if minCents > maxCents {
		return nil, nil
	}

	count := req.MaxResults
	if count > 12 {
		count = 12
	}

	items := make([]usecase.ProviderItem, 0, count)
	for i := 0; i < count; i++ {
		retailer := fallbackRetailers[rng.Intn(len(fallbackRetailers))]
		modifier := fallbackModifiers[rng.Intn(len(fallbackModifiers))]
		title := fmt.Sprintf("%s %s", strings.TrimSpace(req.SearchText), modifier)

		price := minCents + rng.Int63n(maxCents-minCents+1)
		rating := float64(rng.Intn(21)+30) / 10 // 3.0 .. 5.0
		reviews := int32(rng.Intn(2000))
		available := rng.Intn(10) > 1

		slug := url.PathEscape(strings.ToLower(strings.ReplaceAll(title, " ", "-")))
		productURL := fmt.Sprintf("https://%s.example.com/p/%s-%d", retailer, slug, i+1)
		imageURL := fmt.Sprintf("https://%s.example.com/img/%s-%d.jpg", retailer, slug, i+1)
		description := fmt.Sprintf("%s from %s", title, retailer)

		items = append(items, usecase.ProviderItem{
			Title:        title,
			ProductURL:   productURL,
			ImageURL:     &imageURL,
			Description:  &description,
			Rating:       &rating,
			ReviewsCount: &reviews,
			PriceCents:   price,
			Currency:     "USD",
			Availability: available,
			Source:       retailer,
		})
	}

	return items, nil
}
