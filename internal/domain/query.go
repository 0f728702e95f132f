package domain

import "time"

// QueryStatus — статус жизненного цикла записи поиска.
type QueryStatus string

const (
	QueryPending   QueryStatus = "pending"
	QuerySearching QueryStatus = "searching"
	QueryCompleted QueryStatus = "completed"
	QueryFailed    QueryStatus = "failed"
)

// allowedTransitions фиксирует монотонный порядок статусов:
// pending -> searching -> {completed, failed}. Обратных переходов нет.
var allowedTransitions = map[QueryStatus][]QueryStatus{
	QueryPending:   {QuerySearching},
	QuerySearching: {QueryCompleted, QueryFailed},
	QueryCompleted: {},
	QueryFailed:    {},
}

// CanTransitionTo сообщает, допустим ли переход из текущего статуса в next.
func (s QueryStatus) CanTransitionTo(next QueryStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для completed и failed.
func (s QueryStatus) IsTerminal() bool {
	return s == QueryCompleted || s == QueryFailed
}

// IsValid проверяет, что значение — один из четырёх известных статусов.
func (s QueryStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Preferences — необязательный фильтр, зафиксированный при создании записи поиска.
// Цены хранятся в центах.
type Preferences struct {
	MinPriceCents   *int64
	MaxPriceCents   *int64
	MinRating       *float64
	TargetRetailers []string
}

// Query описывает одну пользовательскую запись поиска и её жизненный цикл.
type Query struct {
	ID            string // uuid
	OwnerID       string
	SearchText    string
	Preferences   Preferences
	Status        QueryStatus
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewQuery(id string, ownerID string, searchText string, prefs Preferences) *Query {
	return &Query{
		ID:          id,
		OwnerID:     ownerID,
		SearchText:  searchText,
		Preferences: prefs,
		Status:      QueryPending,
	}
}
