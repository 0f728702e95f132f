package domain

import "time"

// SavedItem — сохранённый пользователем товар: снимок полей результата,
// который переживает удаление исходной записи поиска.
type SavedItem struct {
	ID         string // uuid
	OwnerID    string
	ResultID   string
	QueryID    string
	Title      string
	ProductURL string
	ImageURL   *string
	PriceCents int64
	Currency   string
	Source     string
	CreatedAt  time.Time
}

func NewSavedItem(id string, ownerID string, result *Result) *SavedItem {
	return &SavedItem{
		ID:         id,
		OwnerID:    ownerID,
		ResultID:   result.ID,
		QueryID:    result.QueryID,
		Title:      result.Title,
		ProductURL: result.ProductURL,
		ImageURL:   result.ImageURL,
		PriceCents: result.PriceCents,
		Currency:   result.Currency,
		Source:     result.Source,
	}
}
