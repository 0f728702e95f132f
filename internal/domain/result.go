package domain

import (
	"sort"
	"time"
)

// SourceFallback — сентинел источника для результатов резервного генератора.
const SourceFallback = "fallback"

// Result описывает один нормализованный товар, привязанный ровно к одной записи поиска.
type Result struct {
	ID             string // uuid
	QueryID        string
	Title          string
	ProductURL     string
	ImageURL       *string
	ImageObjectKey *string // ключ зеркальной копии изображения в MinIO
	Description    *string
	Rating         *float64
	ReviewsCount   *int32
	PriceCents     int64 // Цена хранится в центах
	Currency       string
	Availability   bool
	Source         string
	SearchRank     int32
	SystemRank     int32
	CreatedAt      time.Time
}

// RankStrategy — стратегия пересчёта system_rank для результатов одной записи поиска.
type RankStrategy string

const (
	RankPriceAsc          RankStrategy = "price_asc"
	RankPriceDesc         RankStrategy = "price_desc"
	RankRatingDesc        RankStrategy = "rating_desc"
	RankReviewsDesc       RankStrategy = "reviews_desc"
	RankAvailabilityFirst RankStrategy = "availability_first"
)

// ParseRankStrategy валидирует строковое значение стратегии.
func ParseRankStrategy(s string) (RankStrategy, bool) {
	switch RankStrategy(s) {
	case RankPriceAsc, RankPriceDesc, RankRatingDesc, RankReviewsDesc, RankAvailabilityFirst:
		return RankStrategy(s), true
	}
	return "", false
}

// Rank сортирует результаты по стратегии и проставляет новый SystemRank (с единицы).
// Сортировка стабильная: при равенстве ключа сохраняется прежний относительный порядок.
func Rank(results []*Result, strategy RankStrategy) {
	sort.SliceStable(results, func(i, j int) bool {
		return rankLess(results[i], results[j], strategy)
	})

	for i, r := range results {
		r.SystemRank = int32(i + 1)
	}
}

func rankLess(a, b *Result, strategy RankStrategy) bool {
	switch strategy {
	case RankPriceAsc:
		return a.PriceCents < b.PriceCents
	case RankPriceDesc:
		return a.PriceCents > b.PriceCents
	case RankRatingDesc:
		// Товары без рейтинга уходят в конец.
		return floatPtrVal(a.Rating, -1) > floatPtrVal(b.Rating, -1)
	case RankReviewsDesc:
		return int32PtrVal(a.ReviewsCount, -1) > int32PtrVal(b.ReviewsCount, -1)
	case RankAvailabilityFirst:
		return a.Availability && !b.Availability
	}
	return false
}

func floatPtrVal(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func int32PtrVal(p *int32, fallback int32) int32 {
	if p == nil {
		return fallback
	}
	return *p
}
