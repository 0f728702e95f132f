package usecase

import (
	"time"

	"github.com/voicecart/search-backend/internal/domain"
)

// SEARCH USECASE

// SubmitSearchReq — запрос на создание новой записи поиска.
type SubmitSearchReq struct {
	OwnerID     string
	SearchText  string
	Preferences domain.Preferences
}

// SubmitSearchRes — ответ на создание записи поиска.
type SubmitSearchRes struct {
	QueryID string
	Status  domain.QueryStatus
}

// QueryStatusInfo — DTO статуса записи поиска; эта же структура кэшируется в Redis.
type QueryStatusInfo struct {
	ID            string
	OwnerID       string
	SearchText    string
	Status        domain.QueryStatus
	FailureReason *string
	Preferences   domain.Preferences
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ListQueriesReq — запрос списка записей поиска вызывающего пользователя.
type ListQueriesReq struct {
	CallerID string
	Status   *domain.QueryStatus
	Limit    int
}

// ResultFilter — клиентские фильтры чтения результатов. Цены в центах.
type ResultFilter struct {
	MinPriceCents *int64
	MaxPriceCents *int64
	MinRating     *float64
	Source        *string
	Limit         int
}

// ListResultsReq — запрос результатов одной записи поиска.
type ListResultsReq struct {
	CallerID string
	QueryID  string
	Filter   *ResultFilter
}

// DeleteQueryRes — результат каскадного удаления записи поиска.
type DeleteQueryRes struct {
	DeletedResultCount int64
}

// RerankReq — запрос пересчёта system_rank результатов.
type RerankReq struct {
	CallerID string
	QueryID  string
	Strategy domain.RankStrategy
}

// INFRASTRUCTURE

// ProviderSearchReq — вход внешнего поискового провайдера.
type ProviderSearchReq struct {
	SearchText    string
	MinPriceCents *int64
	MaxPriceCents *int64
	MaxResults    int
}

// ProviderItem — канонизированная позиция из ответа провайдера.
// Нормализация цен и полей уже выполнена адаптером провайдера.
type ProviderItem struct {
	Title        string
	ProductURL   string
	ImageURL     *string
	Description  *string
	Rating       *float64
	ReviewsCount *int32
	PriceCents   int64
	Currency     string
	Availability bool
	Source       string
}

// QueryUpdate — событие для наблюдателей записи поиска (watch).
type QueryUpdate struct {
	QueryID     string             `json:"query_id"`
	Status      domain.QueryStatus `json:"status"`
	ResultCount int64              `json:"result_count"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// LifecycleEvent — событие терминального перехода для внешних потребителей (Kafka).
type LifecycleEvent struct {
	EventID     string             `json:"event_id"`
	QueryID     string             `json:"query_id"`
	OwnerID     string             `json:"owner_id"`
	Status      domain.QueryStatus `json:"status"`
	ResultCount int64              `json:"result_count"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// MAPPERS

func NewSubmitSearchReq(ownerID string, searchText string, prefs domain.Preferences) *SubmitSearchReq {
	return &SubmitSearchReq{
		OwnerID:     ownerID,
		SearchText:  searchText,
		Preferences: prefs,
	}
}

func NewSubmitSearchRes(queryID string, status domain.QueryStatus) *SubmitSearchRes {
	return &SubmitSearchRes{
		QueryID: queryID,
		Status:  status,
	}
}

func NewQueryStatusInfo(q *domain.Query) *QueryStatusInfo {
	return &QueryStatusInfo{
		ID:            q.ID,
		OwnerID:       q.OwnerID,
		SearchText:    q.SearchText,
		Status:        q.Status,
		FailureReason: q.FailureReason,
		Preferences:   q.Preferences,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func NewProviderSearchReq(searchText string, prefs domain.Preferences, maxResults int) *ProviderSearchReq {
	return &ProviderSearchReq{
		SearchText:    searchText,
		MinPriceCents: prefs.MinPriceCents,
		MaxPriceCents: prefs.MaxPriceCents,
		MaxResults:    maxResults,
	}
}

func NewQueryUpdate(queryID string, status domain.QueryStatus, resultCount int64) *QueryUpdate {
	return &QueryUpdate{
		QueryID:     queryID,
		Status:      status,
		ResultCount: resultCount,
		OccurredAt:  time.Now().UTC(),
	}
}

func NewLifecycleEvent(eventID string, q *domain.Query, resultCount int64) *LifecycleEvent {
	return &LifecycleEvent{
		EventID:     eventID,
		QueryID:     q.ID,
		OwnerID:     q.OwnerID,
		Status:      q.Status,
		ResultCount: resultCount,
		OccurredAt:  time.Now().UTC(),
	}
}

func NewDeleteQueryRes(deleted int64) *DeleteQueryRes {
	return &DeleteQueryRes{DeletedResultCount: deleted}
}
