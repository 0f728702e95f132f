package usecase

import (
	"context"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// Dispatcher выполняет одноразовую диспетчеризацию записи поиска:
// вызов внешнего провайдера, идемпотентная загрузка результатов и перевод
// записи в терминальный статус. Повторных попыток нет: либо батч ложится
// целиком и запись становится completed, либо не ложится ничего и запись
// становится failed.
type Dispatcher struct {
	queryRepo       QueryRepository
	resultRepo      ResultRepository
	cacheRepo       CacheRepository
	provider        SearchProvider
	notifier        UpdateNotifier
	producer        EventProducer
	mirror          ImageMirror
	dbPool          transaction.Transactional
	logger          logger.Logger
	providerTimeout time.Duration
	maxResults      int
}

func NewDispatcher(
	queryRepo QueryRepository,
	resultRepo ResultRepository,
	cacheRepo CacheRepository,
	provider SearchProvider,
	notifier UpdateNotifier,
	producer EventProducer,
	mirror ImageMirror,
	dbPool transaction.Transactional,
	logger logger.Logger,
	providerTimeout time.Duration,
	maxResults int,
) *Dispatcher {
	return &Dispatcher{
		queryRepo:       queryRepo,
		resultRepo:      resultRepo,
		cacheRepo:       cacheRepo,
		provider:        provider,
		notifier:        notifier,
		producer:        producer,
		mirror:          mirror,
		dbPool:          dbPool,
		logger:          logger,
		providerTimeout: providerTimeout,
		maxResults:      maxResults,
	}
}

// ClaimBatch атомарно забирает пачку pending-записей, переводя их в searching.
func (d *Dispatcher) ClaimBatch(ctx context.Context, limit int) ([]*domain.Query, error) {
	return d.queryRepo.ClaimPending(ctx, limit)
}

// Dispatch обрабатывает одну уже захваченную (searching) запись поиска.
// Ошибка провайдера не пробрасывается наружу: она становится статусом failed.
func (d *Dispatcher) Dispatch(ctx context.Context, query *domain.Query) {
	const op = "Dispatcher.Dispatch"

	providerCtx, cancel := context.WithTimeout(ctx, d.providerTimeout)
	items, err := d.provider.Search(providerCtx, NewProviderSearchReq(query.SearchText, query.Preferences, d.maxResults))
	cancel()

	if err != nil {
		d.logger.Warnf("provider %s failed for query %s: %v", d.provider.Name(), query.ID, err)
		d.finish(ctx, query, domain.QueryFailed, failureReason(err), 0, nil)
		return
	}

	results := buildResults(query.ID, items)

	// Пустой ответ провайдера — валидный успех: запись становится completed без результатов.
	stored := int64(0)
	if len(results) > 0 {
		stored, err = d.storeBatch(ctx, query.ID, results)
		if err != nil {
			d.logger.Errorf(err, "failed to store results for query %s", query.ID)
			d.finish(ctx, query, domain.QueryFailed, failureReason(err), 0, nil)
			return
		}
	}

	d.finish(ctx, query, domain.QueryCompleted, nil, stored, results)
}

// storeBatch кладёт весь батч результатов в одной транзакции: частичной загрузки не бывает.
// Коммит батча происходит строго до перевода статуса в completed, поэтому наблюдатель
// не может увидеть completed без соответствующих результатов.
func (d *Dispatcher) storeBatch(ctx context.Context, queryID string, results []*domain.Result) (int64, error) {
	const op = "Dispatcher.storeBatch"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, d.dbPool)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	stored, err := d.resultRepo.UpsertBatch(ctx, queryID, results)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, e.Wrap(op, err)
	}

	return stored, nil
}

// finish переводит запись в терминальный статус и рассылает уведомления.
func (d *Dispatcher) finish(ctx context.Context, query *domain.Query, status domain.QueryStatus, reason *string, resultCount int64, results []*domain.Result) {
	const op = "Dispatcher.finish"

	if err := d.queryRepo.UpdateStatus(ctx, query.ID, domain.QuerySearching, status, reason); err != nil {
		// Недопустимый переход здесь означает дефект диспетчеризации, а не ошибку пользователя.
		d.logger.Errorf(err, "status transition %s -> %s failed for query %s", domain.QuerySearching, status, query.ID)
		return
	}
	query.Status = status
	query.FailureReason = reason

	if err := d.cacheRepo.DeleteQueryStatus(ctx, []string{query.ID}); err != nil {
		d.logger.Warnf("Failed to drop query status cache: %v", e.Wrap(op, err))
	}

	if err := d.notifier.PublishQueryUpdate(ctx, NewQueryUpdate(query.ID, status, resultCount)); err != nil {
		d.logger.Warnf("Failed to publish query update: %v", e.Wrap(op, err))
	}

	if err := d.producer.PublishLifecycleEvent(ctx, NewLifecycleEvent(uuid.NewString(), query, resultCount)); err != nil {
		d.logger.Warnf("Failed to publish lifecycle event: %v", e.Wrap(op, err))
	}

	if status == domain.QueryCompleted && len(results) > 0 {
		d.mirror.MirrorImages(query.ID, results)
	}
}

// buildResults превращает канонизированные позиции провайдера в доменные результаты.
// Дубликаты по product_url схлопываются внутри батча (последняя запись побеждает,
// позиция первой сохраняется), иначе upsert одного батча конфликтовал бы сам с собой.
func buildResults(queryID string, items []ProviderItem) []*domain.Result {
	results := make([]*domain.Result, 0, len(items))
	byURL := make(map[string]int, len(items))

	for _, item := range items {
		currency := item.Currency
		if currency == "" {
			currency = "USD"
		}

		result := &domain.Result{
			ID:           uuid.NewString(),
			QueryID:      queryID,
			Title:        item.Title,
			ProductURL:   item.ProductURL,
			ImageURL:     item.ImageURL,
			Description:  item.Description,
			Rating:       item.Rating,
			ReviewsCount: item.ReviewsCount,
			PriceCents:   item.PriceCents,
			Currency:     currency,
			Availability: item.Availability,
			Source:       item.Source,
		}

		if idx, seen := byURL[item.ProductURL]; seen {
			result.ID = results[idx].ID
			result.SearchRank = results[idx].SearchRank
			result.SystemRank = results[idx].SystemRank
			results[idx] = result
			continue
		}

		result.SearchRank = int32(len(results) + 1)
		result.SystemRank = result.SearchRank
		byURL[item.ProductURL] = len(results)
		results = append(results, result)
	}

	return results
}

func failureReason(err error) *string {
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}
