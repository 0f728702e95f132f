package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrEmptySearchText):
		return http.StatusBadRequest, e.ErrEmptySearchText.Error()
	case errors.Is(err, e.ErrInvalidPriceRange):
		return http.StatusBadRequest, e.ErrInvalidPriceRange.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrInvalidRating):
		return http.StatusBadRequest, e.ErrInvalidRating.Error()
	case errors.Is(err, e.ErrInvalidStatusFilter):
		return http.StatusBadRequest, e.ErrInvalidStatusFilter.Error()
	case errors.Is(err, e.ErrUnknownRankStrategy):
		return http.StatusBadRequest, e.ErrUnknownRankStrategy.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrUnauthenticated):
		return http.StatusUnauthorized, e.ErrUnauthenticated.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrQueryNotFound):
		return http.StatusNotFound, e.ErrQueryNotFound.Error()
	case errors.Is(err, e.ErrResultNotFound):
		return http.StatusNotFound, e.ErrResultNotFound.Error()
	case errors.Is(err, e.ErrSavedItemNotFound):
		return http.StatusNotFound, e.ErrSavedItemNotFound.Error()
	case errors.Is(err, e.ErrQueryNotTerminal):
		return http.StatusConflict, e.ErrQueryNotTerminal.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents конвертирует строку вида "599.99" или "600" в центы.
// Отклоняет отрицательные значения, цены точнее двух знаков и значения
// за разумным верхним пределом.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrInvalidPrice
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// parseJSONPrice парсит цену из тела запроса: JSON-число или строка.
func parseJSONPrice(raw json.RawMessage) (*int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, e.ErrInvalidPrice
		}
	}

	cents, err := parsePriceToCents(s)
	if err != nil {
		return nil, err
	}

	return &cents, nil
}

// parseOptionalPriceParam парсит необязательный ценовой query-параметр в центы.
func parseOptionalPriceParam(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	cents, err := parsePriceToCents(v)
	if err != nil {
		return nil, err
	}

	return &cents, nil
}

// parseOptionalRatingParam парсит необязательный параметр минимального рейтинга.
func parseOptionalRatingParam(r *http.Request, name string) (*float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	rating, err := strconv.ParseFloat(v, 64)
	if err != nil || rating < 0 || rating > 5 {
		return nil, e.ErrInvalidRating
	}

	return &rating, nil
}

// parseLimitParam парсит параметр limit с значением по умолчанию и потолком.
func parseLimitParam(r *http.Request, defaultLimit, maxLimit int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}

	return limit
}

// centsToPrice форматирует цену в центах как строку с двумя знаками.
func centsToPrice(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func centsToPricePtr(cents *int64) *string {
	if cents == nil {
		return nil
	}
	s := centsToPrice(*cents)
	return &s
}

// RESPONSE DTO

type PreferencesResponse struct {
	MinPrice        *string  `json:"min_price,omitempty"`
	MaxPrice        *string  `json:"max_price,omitempty"`
	MinRating       *float64 `json:"min_rating,omitempty"`
	TargetRetailers []string `json:"target_retailers,omitempty"`
}

type QueryResponse struct {
	ID            string              `json:"id"`
	SearchText    string              `json:"search_text"`
	Status        string              `json:"status"`
	FailureReason *string             `json:"failure_reason,omitempty"`
	Preferences   PreferencesResponse `json:"preferences"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
}

type ResultResponse struct {
	ID             string    `json:"id"`
	QueryID        string    `json:"query_id"`
	Title          string    `json:"title"`
	ProductURL     string    `json:"product_url"`
	ImageURL       *string   `json:"image_url,omitempty"`
	ImageObjectKey *string   `json:"image_object_key,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	ReviewsCount   *int32    `json:"reviews_count,omitempty"`
	Price          string    `json:"price"`
	Currency       string    `json:"currency"`
	Availability   bool      `json:"availability"`
	Source         string    `json:"source"`
	SearchRank     int32     `json:"search_rank"`
	SystemRank     int32     `json:"system_rank"`
	CreatedAt      time.Time `json:"created_at"`
}

type SavedItemResponse struct {
	ID         string    `json:"id"`
	ResultID   string    `json:"result_id"`
	QueryID    string    `json:"query_id"`
	Title      string    `json:"title"`
	ProductURL string    `json:"product_url"`
	ImageURL   *string   `json:"image_url,omitempty"`
	Price      string    `json:"price"`
	Currency   string    `json:"currency"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

func toQueryResponse(info *usecase.QueryStatusInfo) *QueryResponse {
	return &QueryResponse{
		ID:            info.ID,
		SearchText:    info.SearchText,
		Status:        string(info.Status),
		FailureReason: info.FailureReason,
		Preferences: PreferencesResponse{
			MinPrice:        centsToPricePtr(info.Preferences.MinPriceCents),
			MaxPrice:        centsToPricePtr(info.Preferences.MaxPriceCents),
			MinRating:       info.Preferences.MinRating,
			TargetRetailers: info.Preferences.TargetRetailers,
		},
		CreatedAt: info.CreatedAt,
		UpdatedAt: info.UpdatedAt,
	}
}

func toArrQueryResponse(infos []*usecase.QueryStatusInfo) []*QueryResponse {
	responses := make([]*QueryResponse, 0, len(infos))
	for _, info := range infos {
		responses = append(responses, toQueryResponse(info))
	}

	return responses
}

func toResultResponse(result *domain.Result) *ResultResponse {
	return &ResultResponse{
		ID:             result.ID,
		QueryID:        result.QueryID,
		Title:          result.Title,
		ProductURL:     result.ProductURL,
		ImageURL:       result.ImageURL,
		ImageObjectKey: result.ImageObjectKey,
		Description:    result.Description,
		Rating:         result.Rating,
		ReviewsCount:   result.ReviewsCount,
		Price:          centsToPrice(result.PriceCents),
		Currency:       result.Currency,
		Availability:   result.Availability,
		Source:         result.Source,
		SearchRank:     result.SearchRank,
		SystemRank:     result.SystemRank,
		CreatedAt:      result.CreatedAt,
	}
}

func toArrResultResponse(results []*domain.Result) []*ResultResponse {
	responses := make([]*ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, toResultResponse(result))
	}

	return responses
}

func toSavedItemResponse(item *domain.SavedItem) *SavedItemResponse {
	return &SavedItemResponse{
		ID:         item.ID,
		ResultID:   item.ResultID,
		QueryID:    item.QueryID,
		Title:      item.Title,
		ProductURL: item.ProductURL,
		ImageURL:   item.ImageURL,
		Price:      centsToPrice(item.PriceCents),
		Currency:   item.Currency,
		Source:     item.Source,
		CreatedAt:  item.CreatedAt,
	}
}

func toArrSavedItemResponse(items []*domain.SavedItem) []*SavedItemResponse {
	responses := make([]*SavedItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toSavedItemResponse(item))
	}

	return responses
}
