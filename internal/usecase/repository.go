package usecase

import (
	"context"

	"github.com/voicecart/search-backend/internal/domain"
)

type QueryRepository interface {
	// Create вставляет запись в статусе pending и будит воркер диспетчеризации (NOTIFY).
	// Требует транзакции в контексте.
	Create(ctx context.Context, query *domain.Query) (*domain.Query, error)
	GetByID(ctx context.Context, id string) (*domain.Query, error)
	ListByOwner(ctx context.Context, ownerID string, status *domain.QueryStatus, limit int) ([]*domain.Query, error)
	// ClaimPending атомарно переводит пачку pending-записей в searching (SKIP LOCKED),
	// гарантируя, что одна запись не будет диспетчеризована дважды.
	ClaimPending(ctx context.Context, limit int) ([]*domain.Query, error)
	// UpdateStatus выполняет охраняемый переход from -> to; недопустимый переход — ошибка.
	UpdateStatus(ctx context.Context, id string, from, to domain.QueryStatus, failureReason *string) error
	// ResetForRefresh возвращает терминальную запись в pending для повторной диспетчеризации.
	// Требует транзакции в контексте.
	ResetForRefresh(ctx context.Context, id string) error
	// Delete удаляет запись поиска. Требует транзакции в контексте.
	Delete(ctx context.Context, id string) error
}

type ResultRepository interface {
	// UpsertBatch вставляет или обновляет результаты по натуральному ключу (query_id, product_url).
	// Требует транзакции в контексте. Возвращает число затронутых строк.
	UpsertBatch(ctx context.Context, queryID string, results []*domain.Result) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Result, error)
	ListByQuery(ctx context.Context, queryID string, filter *ResultFilter) ([]*domain.Result, error)
	// UpdateSystemRanks персистит пересчитанные system_rank. Требует транзакции в контексте.
	UpdateSystemRanks(ctx context.Context, queryID string, results []*domain.Result) error
	UpdateImageObjectKey(ctx context.Context, resultID string, objectKey string) error
	// DeleteByQuery используется только каскадом удаления записи поиска.
	// Требует транзакции в контексте. Возвращает число удалённых строк.
	DeleteByQuery(ctx context.Context, queryID string) (int64, error)
}

type SavedItemRepository interface {
	// Save идемпотентно сохраняет товар: повторное сохранение того же
	// результата тем же пользователем возвращает существующую запись.
	Save(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error)
	GetByID(ctx context.Context, id string) (*domain.SavedItem, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.SavedItem, error)
	Delete(ctx context.Context, id string) error
}

type ImageRepository interface {
	// Upload загружает изображение в объектное хранилище и возвращает ключ объекта.
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

type CacheRepository interface {
	GetQueryStatus(ctx context.Context, queryID string) (*QueryStatusInfo, error)
	SetQueryStatus(ctx context.Context, info *QueryStatusInfo) error
	DeleteQueryStatus(ctx context.Context, queryIDs []string) error
}
