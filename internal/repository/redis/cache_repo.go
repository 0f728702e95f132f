package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/voicecart/search-backend/internal/cfg"
	"github.com/voicecart/search-backend/internal/repository/redis/converter"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/clients"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// CacheRepo кэширует статусы записей поиска. Кэш сквозной: промах — не ошибка,
// любая запись в БД сопровождается инвалидацией ключа.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.QueryStatusConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.QueryStatusConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetQueryStatus возвращает закэшированный статус записи поиска.
// Промах кэша и битые данные возвращаются как (nil, nil): источник истины — БД.
func (c *CacheRepo) GetQueryStatus(ctx context.Context, queryID string) (*usecase.QueryStatusInfo, error) {
	data, err := c.client.Client.Get(ctx, c.statusKey(queryID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.QueryStatusRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), c.statusKey(queryID)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // cache miss
	}

	if model.ID != queryID {
		c.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", queryID, model.ID)
		if err := c.client.Client.Del(context.Background(), c.statusKey(queryID)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // cache miss
	}

	return c.conv.ToUseCase(&model), nil
}

// SetQueryStatus кэширует статус с TTL. Ошибки записи логируются и глотаются.
func (c *CacheRepo) SetQueryStatus(ctx context.Context, info *usecase.QueryStatusInfo) error {
	model := c.conv.ToRedisModel(info)

	data, err := json.Marshal(model)
	if err != nil {
		c.logger.Warnf("Failed to marshal query status for caching (query ID: %s): %v",
			info.ID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, c.statusKey(info.ID), data, c.cfg.StatusTTL).Err(); err != nil {
		c.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteQueryStatus инвалидирует кэш статусов указанных записей.
func (c *CacheRepo) DeleteQueryStatus(ctx context.Context, queryIDs []string) error {
	if len(queryIDs) == 0 {
		return nil
	}

	keys := make([]string, len(queryIDs))
	for i, id := range queryIDs {
		keys[i] = c.statusKey(id)
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// statusKey возвращает Redis-ключ статуса одной записи поиска
func (c *CacheRepo) statusKey(queryID string) string {
	return fmt.Sprintf("query_status:%s", queryID)
}
