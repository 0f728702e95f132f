package usecase

import (
	"context"

	"github.com/voicecart/search-backend/internal/domain"
)

type SearchUC interface {
	SubmitSearch(ctx context.Context, req *SubmitSearchReq) (*SubmitSearchRes, error)
	GetQueryStatus(ctx context.Context, queryID string, callerID string) (*QueryStatusInfo, error)
	ListQueries(ctx context.Context, req *ListQueriesReq) ([]*QueryStatusInfo, error)
	DeleteQuery(ctx context.Context, queryID string, callerID string) (*DeleteQueryRes, error)
	RefreshQuery(ctx context.Context, queryID string, callerID string) error

	ListResults(ctx context.Context, req *ListResultsReq) ([]*domain.Result, error)
	Rerank(ctx context.Context, req *RerankReq) ([]*domain.Result, error)

	SaveResult(ctx context.Context, callerID string, resultID string) (*domain.SavedItem, error)
	ListSavedItems(ctx context.Context, callerID string, limit int) ([]*domain.SavedItem, error)
	DeleteSavedItem(ctx context.Context, callerID string, savedItemID string) error

	WatchQuery(ctx context.Context, queryID string, callerID string) (<-chan QueryUpdate, func(), error)
}
