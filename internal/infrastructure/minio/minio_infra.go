package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voicecart/search-backend/internal/cfg"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/infrastructure"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/jitter"
	"github.com/voicecart/search-backend/pkg/logger"
)

// maxImageBytes ограничивает размер скачиваемого изображения.
const maxImageBytes = 5 << 20

// MinioInfrastructure зеркалирует изображения результатов поиска в MinIO.
// Зеркалирование фоновое и best-effort: при любой ошибке результат продолжает
// ссылаться на внешний URL, на жизненный цикл записи поиска это не влияет.
type MinioInfrastructure struct {
	imageRepo   usecase.ImageRepository
	resultRepo  usecase.ResultRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	httpClient  *http.Client
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(
	imageRepo usecase.ImageRepository,
	resultRepo usecase.ResultRepository,
	cfg *cfg.MinIOCfg,
	logger logger.Logger,
	shutdownCtx context.Context,
) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:   imageRepo,
		resultRepo:  resultRepo,
		cfg:         cfg,
		logger:      logger,
		httpClient:  &http.Client{Timeout: cfg.MirrorTimeout},
		shutdownCtx: shutdownCtx,
	}
}

// MirrorImages запускает фоновое зеркалирование изображений результатов
// с ограничением одновременных загрузок.
func (m *MinioInfrastructure) MirrorImages(queryID string, results []*domain.Result) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		sem := make(chan struct{}, m.cfg.MirrorImagesLimit)
		var mirrorWg sync.WaitGroup

		for _, result := range results {
			if result.ImageURL == nil || *result.ImageURL == "" {
				continue
			}

			mirrorWg.Add(1)
			go func(result *domain.Result) {
				defer mirrorWg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				select {
				case <-m.shutdownCtx.Done():
					return
				default:
				}

				if err := m.mirrorOne(queryID, result); err != nil {
					m.logger.Warnf("image mirror failed: query=%s result=%s: %v", queryID, result.ID, err)
				}
			}(result)
		}

		mirrorWg.Wait()
	}()
}

// mirrorOne скачивает изображение результата и перекладывает его в MinIO.
func (m *MinioInfrastructure) mirrorOne(queryID string, result *domain.Result) error {
	const op = "MinioInfrastructure.mirrorOne"

	ctx, cancel := context.WithTimeout(m.shutdownCtx, m.cfg.MirrorTimeout)
	defer cancel()

	data, mimeType, err := m.download(ctx, *result.ImageURL)
	if err != nil {
		return e.Wrap(op, err)
	}

	ext, err := infrastructure.GetExtensionFromMIME(mimeType)
	if err != nil {
		return e.Wrap(op, fmt.Errorf("invalid mime type %s: %w", mimeType, err))
	}

	size := int64(len(data))
	objKey := fmt.Sprintf("queries/%s/%s-%s.%s", queryID, result.ID, uuid.NewString(), ext)
	image := domain.NewImage(result.ID, m.cfg.BucketName, objKey, data, &size, &mimeType)

	key, err := m.imageRepo.Upload(ctx, image)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := m.resultRepo.UpdateImageObjectKey(ctx, result.ID, key); err != nil {
		// Объект уже в бакете, но строка на него не ссылается: подчищаем
		m.wg.Add(1)
		go m.cleanupUploadedKeys([]string{key})
		return e.Wrap(op, err)
	}

	return nil
}

func (m *MinioInfrastructure) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", int64(maxImageBytes))
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// cleanupUploadedKeys удаляет осиротевшие объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < 3; attempt++ {
			if err := m.imageRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < 2 {
				sleepTime := jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)
				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач зеркалирования с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
