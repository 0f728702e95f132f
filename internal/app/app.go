package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/voicecart/search-backend/internal/cfg"
	v1Http "github.com/voicecart/search-backend/internal/delivery/v1/http"
	"github.com/voicecart/search-backend/internal/infrastructure/dispatch"
	"github.com/voicecart/search-backend/internal/infrastructure/kafka"
	minioInfra "github.com/voicecart/search-backend/internal/infrastructure/minio"
	"github.com/voicecart/search-backend/internal/infrastructure/notifier"
	"github.com/voicecart/search-backend/internal/infrastructure/provider"
	s3Repo "github.com/voicecart/search-backend/internal/repository/minio"
	"github.com/voicecart/search-backend/internal/repository/pgdb"
	pgdbConv "github.com/voicecart/search-backend/internal/repository/pgdb/converter/generated"
	"github.com/voicecart/search-backend/internal/repository/redis"
	redisConv "github.com/voicecart/search-backend/internal/repository/redis/converter/generated"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/clients"
	"github.com/voicecart/search-backend/pkg/closer"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
	"github.com/voicecart/search-backend/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// App держит собранный граф зависимостей и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db          *postgres.PgDatabase
	redisClient *clients.RedisClient
	producer    *kafka.Producer
	mirror      *minioInfra.MinioInfrastructure
	worker      *dispatch.Worker
	httpSrv     *v1Http.Server
	closer      *closer.Closer

	shutdownCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Контекст фоновых задач: живёт дольше запросов, отменяется на shutdown
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	queryConv := pgdbConv.NewQueryConverterImpl()
	resultConv := pgdbConv.NewResultConverterImpl()
	savedConv := pgdbConv.NewSavedItemConverterImpl()
	statusConv := redisConv.NewQueryStatusConverterImpl()

	queryRepo := pgdb.NewQueryRepo(db.Pool, queryConv)
	resultRepo := pgdb.NewResultRepo(db.Pool, resultConv)
	savedRepo := pgdb.NewSavedItemRepo(db.Pool, savedConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		shutdownCancel()
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cacheRepo := redis.NewCacheRepo(redisClient, statusConv, cfg.Redis, log)
	updateNotifier := notifier.NewRedisNotifier(redisClient, log)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		shutdownCancel()
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		shutdownCancel()
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	mirror := minioInfra.NewMinioInfrastructure(imageRepo, resultRepo, cfg.Minio, log, shutdownCtx)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		shutdownCancel()
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Warnf("failed to ensure kafka topic: %v", err)
	}

	searchProvider := provider.New(cfg.Provider, log)

	dispatcher := usecase.NewDispatcher(
		queryRepo,
		resultRepo,
		cacheRepo,
		searchProvider,
		updateNotifier,
		producer,
		mirror,
		db.Pool,
		log,
		cfg.Provider.Timeout,
		cfg.Provider.MaxResults,
	)
	worker := dispatch.NewWorker(dispatcher, log, db.Dsn, cfg.Dispatch.BatchSize)

	searchUC := usecase.NewSearchUC(
		queryRepo,
		resultRepo,
		savedRepo,
		cacheRepo,
		updateNotifier,
		db.Pool,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(searchUC)

	return &App{
		cfg:            cfg,
		logger:         log,
		db:             db,
		redisClient:    redisClient,
		producer:       producer,
		mirror:         mirror,
		worker:         worker,
		httpSrv:        v1Http.NewServer(r, cfg.Http),
		closer:         closer.NewCloser(shutdownTimeout),
		shutdownCancel: shutdownCancel,
	}, nil
}

// Run запускает воркер и HTTP-сервер и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	a.registerClosers(workerCancel)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("graceful shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// registerClosers выстраивает порядок остановки. Closer закрывает ресурсы
// в порядке LIFO, поэтому регистрация идёт от соединений к серверам: сначала
// остановятся HTTP и воркер, затем фоновая очистка, последними — соединения.
func (a *App) registerClosers(workerCancel context.CancelFunc) {
	a.closer.Add(func(ctx context.Context) error {
		a.db.Close()
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.redisClient.Client.Close()
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.producer.Close()
	})

	a.closer.Add(func(ctx context.Context) error {
		a.shutdownCancel()
		if err := a.mirror.WaitForCleanup(ctx); err != nil {
			a.logger.Warnf("MinIO cleanup did not finish before shutdown: %v", err)
			return err
		}
		a.logger.Infof("MinIO cleanup completed")
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		workerCancel()
		a.worker.Stop()
		a.logger.Infof("Dispatch worker stopped")
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		err := a.httpSrv.Stop(ctx)
		if err == nil {
			a.logger.Infof("HTTP server stopped")
		}
		return err
	})
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
