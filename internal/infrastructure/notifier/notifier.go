package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/clients"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// RedisNotifier доставляет обновления записей поиска наблюдателям через
// Redis pub/sub: канал на запись, без персистентности. Наблюдатель, подключившийся
// после события, получает актуальное состояние начальным снапшотом, а не из канала.
type RedisNotifier struct {
	client *clients.RedisClient
	logger logger.Logger
}

func NewRedisNotifier(client *clients.RedisClient, logger logger.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: logger,
	}
}

// PublishQueryUpdate публикует обновление в канал записи поиска.
func (n *RedisNotifier) PublishQueryUpdate(ctx context.Context, update *usecase.QueryUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := n.client.Client.Publish(ctx, n.updateChannel(update.QueryID), data).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SubscribeQueryUpdates подписывается на обновления одной записи поиска.
// Возвращённая функция отписки идемпотентна; после её вызова канал закрывается.
func (n *RedisNotifier) SubscribeQueryUpdates(ctx context.Context, queryID string) (<-chan usecase.QueryUpdate, func(), error) {
	sub := n.client.Client.Subscribe(ctx, n.updateChannel(queryID))

	// Дожидаемся подтверждения подписки, чтобы не терять ранние публикации
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	out := make(chan usecase.QueryUpdate, 8)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var update usecase.QueryUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
					n.logger.Warnf("malformed query update: query=%s: %v", queryID, err)
					continue
				}

				select {
				case out <- update:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				n.logger.Warnf("pubsub close failed: query=%s: %v", queryID, err)
			}
		})
	}

	return out, unsubscribe, nil
}

// updateChannel возвращает имя pub/sub-канала одной записи поиска
func (n *RedisNotifier) updateChannel(queryID string) string {
	return fmt.Sprintf("query_updates:%s", queryID)
}
