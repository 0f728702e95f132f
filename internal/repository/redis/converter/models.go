package converter

import "time"

type QueryStatusRedisModel struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	SearchText      string     `json:"search_text"`
	Status          string     `json:"status"`
	FailureReason   *string    `json:"failure_reason,omitempty"`
	MinPriceCents   *int64     `json:"min_price_cents,omitempty"`
	MaxPriceCents   *int64     `json:"max_price_cents,omitempty"`
	MinRating       *float64   `json:"min_rating,omitempty"`
	TargetRetailers []string   `json:"target_retailers,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
