package usecase

import (
	"context"

	"github.com/voicecart/search-backend/internal/domain"
)

// SearchProvider — адаптер внешнего поискового провайдера товаров.
// Реализация принимает сырые провайдер-специфичные ответы и возвращает
// уже канонизированные позиции; диспетчер о форматах провайдера не знает.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, req *ProviderSearchReq) ([]ProviderItem, error)
}

// UpdateNotifier — канал доставки изменений записи поиска активным наблюдателям.
type UpdateNotifier interface {
	PublishQueryUpdate(ctx context.Context, update *QueryUpdate) error
	// SubscribeQueryUpdates возвращает канал обновлений и функцию отписки.
	SubscribeQueryUpdates(ctx context.Context, queryID string) (<-chan QueryUpdate, func(), error)
}

// EventProducer публикует события жизненного цикла для внешних потребителей.
type EventProducer interface {
	PublishLifecycleEvent(ctx context.Context, event *LifecycleEvent) error
}

// ImageMirror зеркалирует изображения результатов в объектное хранилище.
// Работа фоновая и best-effort: на жизненный цикл записи поиска не влияет.
type ImageMirror interface {
	MirrorImages(queryID string, results []*domain.Result)
	WaitForCleanup(ctx context.Context) error
}
