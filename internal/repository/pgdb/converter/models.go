package converter

import "time"

// QueryModel представляет запись таблицы queries в PostgreSQL.
type QueryModel struct {
	ID              string     `db:"id"`
	OwnerID         string     `db:"owner_id"`
	SearchText      string     `db:"search_text"`
	MinPriceCents   *int64     `db:"min_price_cents"`
	MaxPriceCents   *int64     `db:"max_price_cents"`
	MinRating       *float64   `db:"min_rating"`
	TargetRetailers []string   `db:"target_retailers"`
	Status          string     `db:"status"`
	FailureReason   *string    `db:"failure_reason"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// ResultModel представляет запись таблицы results в PostgreSQL.
type ResultModel struct {
	ID             string    `db:"id"`
	QueryID        string    `db:"query_id"`
	Title          string    `db:"title"`
	ProductURL     string    `db:"product_url"`
	ImageURL       *string   `db:"image_url"`
	ImageObjectKey *string   `db:"image_object_key"`
	Description    *string   `db:"description"`
	Rating         *float64  `db:"rating"`
	ReviewsCount   *int32    `db:"reviews_count"`
	PriceCents     int64     `db:"price_cents"`
	Currency       string    `db:"currency"`
	Availability   bool      `db:"availability"`
	Source         string    `db:"source"`
	SearchRank     int32     `db:"search_rank"`
	SystemRank     int32     `db:"system_rank"`
	CreatedAt      time.Time `db:"created_at"`
}

// SavedItemModel представляет запись таблицы saved_items в PostgreSQL.
type SavedItemModel struct {
	ID         string    `db:"id"`
	OwnerID    string    `db:"owner_id"`
	ResultID   string    `db:"result_id"`
	QueryID    string    `db:"query_id"`
	Title      string    `db:"title"`
	ProductURL string    `db:"product_url"`
	ImageURL   *string   `db:"image_url"`
	PriceCents int64     `db:"price_cents"`
	Currency   string    `db:"currency"`
	Source     string    `db:"source"`
	CreatedAt  time.Time `db:"created_at"`
}
