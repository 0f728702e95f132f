package domain

import "testing"

func newRankResult(id string, price int64, rating *float64, reviews *int32, available bool) *Result {
	return &Result{
		ID:           id,
		PriceCents:   price,
		Rating:       rating,
		ReviewsCount: reviews,
		Availability: available,
	}
}

func f(v float64) *float64 { return &v }
func i32(v int32) *int32   { return &v }

func assertOrder(t *testing.T, results []*Result, want []string) {
	t.Helper()
	for idx, r := range results {
		if r.ID != want[idx] {
			t.Fatalf("position %d: got %s, want %s", idx, r.ID, want[idx])
		}
		if r.SystemRank != int32(idx+1) {
			t.Fatalf("position %d: system rank = %d, want %d", idx, r.SystemRank, idx+1)
		}
	}
}

func TestRankPriceAsc(t *testing.T) {
	results := []*Result{
		newRankResult("a", 3000, nil, nil, true),
		newRankResult("b", 1000, nil, nil, true),
		newRankResult("c", 2000, nil, nil, true),
	}

	Rank(results, RankPriceAsc)
	assertOrder(t, results, []string{"b", "c", "a"})
}

func TestRankPriceDesc(t *testing.T) {
	results := []*Result{
		newRankResult("a", 3000, nil, nil, true),
		newRankResult("b", 1000, nil, nil, true),
		newRankResult("c", 2000, nil, nil, true),
	}

	Rank(results, RankPriceDesc)
	assertOrder(t, results, []string{"a", "c", "b"})
}

func TestRankRatingDescPutsUnratedLast(t *testing.T) {
	results := []*Result{
		newRankResult("unrated", 1000, nil, nil, true),
		newRankResult("low", 1000, f(3.1), nil, true),
		newRankResult("high", 1000, f(4.9), nil, true),
	}

	Rank(results, RankRatingDesc)
	assertOrder(t, results, []string{"high", "low", "unrated"})
}

func TestRankReviewsDesc(t *testing.T) {
	results := []*Result{
		newRankResult("none", 1000, nil, nil, true),
		newRankResult("many", 1000, nil, i32(500), true),
		newRankResult("few", 1000, nil, i32(10), true),
	}

	Rank(results, RankReviewsDesc)
	assertOrder(t, results, []string{"many", "few", "none"})
}

func TestRankAvailabilityFirst(t *testing.T) {
	results := []*Result{
		newRankResult("out", 1000, nil, nil, false),
		newRankResult("in", 1000, nil, nil, true),
	}

	Rank(results, RankAvailabilityFirst)
	assertOrder(t, results, []string{"in", "out"})
}

// Стабильность: при равном ключе сортировки сохраняется исходный порядок.
func TestRankIsStable(t *testing.T) {
	results := []*Result{
		newRankResult("first", 1500, nil, nil, true),
		newRankResult("second", 1500, nil, nil, true),
		newRankResult("third", 1500, nil, nil, true),
	}

	Rank(results, RankPriceAsc)
	assertOrder(t, results, []string{"first", "second", "third"})
}

func TestParseRankStrategy(t *testing.T) {
	for _, valid := range []string{"price_asc", "price_desc", "rating_desc", "reviews_desc", "availability_first"} {
		if _, ok := ParseRankStrategy(valid); !ok {
			t.Errorf("ParseRankStrategy(%q) must succeed", valid)
		}
	}

	for _, invalid := range []string{"", "price", "PRICE_ASC", "random"} {
		if _, ok := ParseRankStrategy(invalid); ok {
			t.Errorf("ParseRankStrategy(%q) must fail", invalid)
		}
	}
}
