package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/jitter"
	"github.com/voicecart/search-backend/pkg/logger"
)

// Worker двигает записи поиска по жизненному циклу: забирает pending-пачки
// и прогоняет каждую через диспетчер. Будится по NOTIFY search_pending,
// страхуется периодическим тайм-аутом ожидания.
type Worker struct {
	dispatcher *usecase.Dispatcher
	logger     logger.Logger
	stop       chan struct{}
	wg         sync.WaitGroup
	dbConnStr  string
	batchSize  int
}

func NewWorker(
	dispatcher *usecase.Dispatcher,
	logger logger.Logger,
	dbConnStr string,
	batchSize int,
) *Worker {
	return &Worker{
		dispatcher: dispatcher,
		logger:     logger,
		stop:       make(chan struct{}),
		dbConnStr:  dbConnStr,
		batchSize:  batchSize,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenPendingNotifications(ctx)
	}()
}

func (w *Worker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте: записи, оставшиеся pending
	// после перезапуска, диспетчеризуются без внешнего уведомления
	w.logger.Infof("Draining pending search queries on startup...")
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("startup batch failed: %v", err)
			return
		}
		if !hasMore {
			break
		}
	}

	<-ctx.Done()
	w.logger.Infof("Dispatch worker stopped by context cancellation")
}

func (w *Worker) listenPendingNotifications(ctx context.Context) {
	var conn *pgx.Conn
	var err error

	connect := func() error {
		conn, err = pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		_, err = conn.Exec(ctx, "LISTEN search_pending")
		if err != nil {
			conn.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		w.logger.Infof("Subscribed to 'search_pending' channel")
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Warnf("Initial connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	reconnectAttempt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
			notif, err := conn.WaitForNotification(ctxWithTimeout)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					// Страховочный проход: NOTIFY мог потеряться при обрыве соединения
					if _, err := w.processBatch(ctx); err != nil {
						w.logger.Warnf("Periodic batch processing failed: %v", err)
					}
					continue
				}
				w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
				conn.Close(ctx)

				time.Sleep(jitter.ExponentialBackoff(time.Second, 30*time.Second, reconnectAttempt, jitter.DefaultJitter))
				if err := connect(); err != nil {
					w.logger.Warnf("Reconnect failed: %v", err)
					reconnectAttempt++
				} else {
					reconnectAttempt = 0
				}
				continue
			}

			if notif != nil && notif.Channel == "search_pending" {
				w.logger.Debugf("Received pending notification, draining search queries")
				for {
					hasMore, err := w.processBatch(ctx)
					if err != nil {
						w.logger.Warnf("Batch processing failed: %v", err)
						break
					}
					if !hasMore {
						break
					}
				}
			}
		}
	}
}

// processBatch забирает и диспетчеризует одну пачку pending-записей.
// Возвращает true, если в очереди могли остаться ещё записи.
func (w *Worker) processBatch(ctx context.Context) (bool, error) {
	queries, err := w.dispatcher.ClaimBatch(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(queries) == 0 {
		return false, nil
	}

	for _, query := range queries {
		w.dispatcher.Dispatch(ctx, query)
	}

	return len(queries) == w.batchSize, nil
}
