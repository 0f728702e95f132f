package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// SearchUseCase реализует клиентские операции над записями поиска.
// Каждая операция принимает callerID явно: владение записью проверяется
// транзитивно через Query.OwnerID, чужие записи недоступны.
type SearchUseCase struct {
	queryRepo  QueryRepository
	resultRepo ResultRepository
	savedRepo  SavedItemRepository
	cacheRepo  CacheRepository
	notifier   UpdateNotifier
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewSearchUC(
	queryRepo QueryRepository,
	resultRepo ResultRepository,
	savedRepo SavedItemRepository,
	cacheRepo CacheRepository,
	notifier UpdateNotifier,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		queryRepo:  queryRepo,
		resultRepo: resultRepo,
		savedRepo:  savedRepo,
		cacheRepo:  cacheRepo,
		notifier:   notifier,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// SubmitSearch создаёт запись поиска в статусе pending и будит воркер диспетчеризации.
// Сам вызов никогда не ждёт внешнего провайдера: исход поиска наблюдается
// асинхронно через статус записи.
func (s *SearchUseCase) SubmitSearch(ctx context.Context, req *SubmitSearchReq) (*SubmitSearchRes, error) {
	const op = "SearchUseCase.SubmitSearch"

	var err error
	if err = validateSubmit(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	query := domain.NewQuery(uuid.NewString(), req.OwnerID, strings.TrimSpace(req.SearchText), req.Preferences)
	created, err := s.queryRepo.Create(ctx, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSubmitSearchRes(created.ID, created.Status), nil
}

// GetQueryStatus возвращает статус записи поиска, сначала заглядывая в кэш.
// Проверка владельца выполняется и для кэшированного значения.
func (s *SearchUseCase) GetQueryStatus(ctx context.Context, queryID string, callerID string) (*QueryStatusInfo, error) {
	const op = "SearchUseCase.GetQueryStatus"

	cached, err := s.cacheRepo.GetQueryStatus(ctx, queryID)
	if err == nil && cached != nil {
		if cached.OwnerID != callerID {
			return nil, e.Wrap(op, e.ErrForbidden)
		}
		return cached, nil
	}

	query, err := s.getOwnedQuery(ctx, queryID, callerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewQueryStatusInfo(query)

	// Фоновое наполнение кэша
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := s.cacheRepo.SetQueryStatus(bgCtx, info); err != nil {
			s.logger.Warnf("Failed to cache query status in background: %v", e.Wrap(op, err))
		}
	}()

	return info, nil
}

// ListQueries возвращает записи поиска вызывающего пользователя, новые первыми.
func (s *SearchUseCase) ListQueries(ctx context.Context, req *ListQueriesReq) ([]*QueryStatusInfo, error) {
	const op = "SearchUseCase.ListQueries"

	if req.Status != nil && !req.Status.IsValid() {
		return nil, e.Wrap(op, e.ErrInvalidStatusFilter)
	}

	queries, err := s.queryRepo.ListByOwner(ctx, req.CallerID, req.Status, req.Limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	infos := make([]*QueryStatusInfo, 0, len(queries))
	for _, q := range queries {
		infos = append(infos, NewQueryStatusInfo(q))
	}

	return infos, nil
}

// DeleteQuery удаляет запись поиска вместе со всеми её результатами (каскад в одной транзакции).
func (s *SearchUseCase) DeleteQuery(ctx context.Context, queryID string, callerID string) (*DeleteQueryRes, error) {
	const op = "SearchUseCase.DeleteQuery"

	var err error
	if _, err = s.getOwnedQuery(ctx, queryID, callerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Сначала результаты, затем сама запись
	deleted, err := s.resultRepo.DeleteByQuery(ctx, queryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = s.queryRepo.Delete(ctx, queryID); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := s.cacheRepo.DeleteQueryStatus(ctx, []string{queryID}); err != nil {
		s.logger.Warnf("Failed to drop query status cache: %v", e.Wrap(op, err))
	}

	return NewDeleteQueryRes(deleted), nil
}

// RefreshQuery возвращает терминальную запись в pending для повторной диспетчеризации
// с теми же параметрами. Незавершённую запись обновить нельзя: параллельных
// попыток диспетчеризации для одной записи не существует.
func (s *SearchUseCase) RefreshQuery(ctx context.Context, queryID string, callerID string) error {
	const op = "SearchUseCase.RefreshQuery"

	var err error
	query, err := s.getOwnedQuery(ctx, queryID, callerID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if !query.Status.IsTerminal() {
		return e.Wrap(op, e.ErrQueryNotTerminal)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = s.queryRepo.ResetForRefresh(ctx, queryID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	if err := s.cacheRepo.DeleteQueryStatus(ctx, []string{queryID}); err != nil {
		s.logger.Warnf("Failed to drop query status cache: %v", e.Wrap(op, err))
	}

	if err := s.notifier.PublishQueryUpdate(ctx, NewQueryUpdate(queryID, domain.QueryPending, 0)); err != nil {
		s.logger.Warnf("Failed to publish refresh update: %v", e.Wrap(op, err))
	}

	return nil
}

// ListResults возвращает результаты записи поиска по system_rank с клиентскими фильтрами.
func (s *SearchUseCase) ListResults(ctx context.Context, req *ListResultsReq) ([]*domain.Result, error) {
	const op = "SearchUseCase.ListResults"

	if _, err := s.getOwnedQuery(ctx, req.QueryID, req.CallerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	results, err := s.resultRepo.ListByQuery(ctx, req.QueryID, req.Filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return results, nil
}

// Rerank пересчитывает system_rank результатов записи поиска по выбранной стратегии.
func (s *SearchUseCase) Rerank(ctx context.Context, req *RerankReq) ([]*domain.Result, error) {
	const op = "SearchUseCase.Rerank"

	var err error
	if _, err = s.getOwnedQuery(ctx, req.QueryID, req.CallerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	results, err := s.resultRepo.ListByQuery(ctx, req.QueryID, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	domain.Rank(results, req.Strategy)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = s.resultRepo.UpdateSystemRanks(ctx, req.QueryID, results); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return results, nil
}

// SaveResult копирует результат в список сохранённых товаров пользователя.
func (s *SearchUseCase) SaveResult(ctx context.Context, callerID string, resultID string) (*domain.SavedItem, error) {
	const op = "SearchUseCase.SaveResult"

	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Владение результатом определяется владельцем его записи поиска
	if _, err := s.getOwnedQuery(ctx, result.QueryID, callerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	saved, err := s.savedRepo.Save(ctx, domain.NewSavedItem(uuid.NewString(), callerID, result))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return saved, nil
}

// ListSavedItems возвращает сохранённые товары пользователя, новые первыми.
func (s *SearchUseCase) ListSavedItems(ctx context.Context, callerID string, limit int) ([]*domain.SavedItem, error) {
	const op = "SearchUseCase.ListSavedItems"

	items, err := s.savedRepo.ListByOwner(ctx, callerID, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return items, nil
}

// DeleteSavedItem удаляет сохранённый товар вызывающего пользователя.
func (s *SearchUseCase) DeleteSavedItem(ctx context.Context, callerID string, savedItemID string) error {
	const op = "SearchUseCase.DeleteSavedItem"

	item, err := s.savedRepo.GetByID(ctx, savedItemID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if item.OwnerID != callerID {
		return e.Wrap(op, e.ErrForbidden)
	}

	if err := s.savedRepo.Delete(ctx, savedItemID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// WatchQuery подписывает наблюдателя на обновления записи поиска.
func (s *SearchUseCase) WatchQuery(ctx context.Context, queryID string, callerID string) (<-chan QueryUpdate, func(), error) {
	const op = "SearchUseCase.WatchQuery"

	if _, err := s.getOwnedQuery(ctx, queryID, callerID); err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	ch, unsubscribe, err := s.notifier.SubscribeQueryUpdates(ctx, queryID)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	return ch, unsubscribe, nil
}

// getOwnedQuery загружает запись поиска и проверяет владельца.
func (s *SearchUseCase) getOwnedQuery(ctx context.Context, queryID string, callerID string) (*domain.Query, error) {
	query, err := s.queryRepo.GetByID(ctx, queryID)
	if err != nil {
		return nil, err
	}

	if query.OwnerID != callerID {
		return nil, e.ErrForbidden
	}

	return query, nil
}

// validateSubmit проверяет корректность входных данных запроса на создание записи поиска.
func validateSubmit(req *SubmitSearchReq) error {
	if req.OwnerID == "" {
		return e.ErrUnauthenticated
	}

	if strings.TrimSpace(req.SearchText) == "" {
		return e.ErrEmptySearchText
	}

	prefs := req.Preferences
	if prefs.MinPriceCents != nil && *prefs.MinPriceCents < 0 {
		return e.ErrInvalidPrice
	}
	if prefs.MaxPriceCents != nil && *prefs.MaxPriceCents < 0 {
		return e.ErrInvalidPrice
	}
	if prefs.MinPriceCents != nil && prefs.MaxPriceCents != nil && *prefs.MinPriceCents > *prefs.MaxPriceCents {
		return e.ErrInvalidPriceRange
	}
	if prefs.MinRating != nil && (*prefs.MinRating < 0 || *prefs.MinRating > 5) {
		return e.ErrInvalidRating
	}

	return nil
}
