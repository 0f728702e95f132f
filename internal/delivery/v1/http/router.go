package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "github.com/voicecart/search-backend/docs" // Импорт сгенерированных файлов
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(CallerIdentity)

		searchHandler := NewSearchHandler(searchUC, r.logger)
		resultHandler := NewResultHandler(searchUC, r.logger)
		savedHandler := NewSavedItemHandler(searchUC, r.logger)
		watchHandler := NewWatchHandler(searchUC, r.logger)

		registerSearchRoutes(v1, searchHandler, resultHandler, watchHandler)
		registerSavedItemRoutes(v1, savedHandler)
	})
}

func registerSearchRoutes(router chi.Router, searchHandler *SearchHandler, resultHandler *ResultHandler, watchHandler *WatchHandler) {
	router.Route("/searches", func(s chi.Router) {
		s.Post("/", searchHandler.submitSearch)
		s.Get("/", searchHandler.listQueries)
		s.Get("/{id}", searchHandler.getQueryStatus)
		s.Delete("/{id}", searchHandler.deleteQuery)
		s.Post("/{id}/refresh", searchHandler.refreshQuery)
		s.Get("/{id}/watch", watchHandler.watchQuery)
		s.Get("/{id}/results", resultHandler.listResults)
		s.Post("/{id}/rerank", resultHandler.rerank)
	})
}

func registerSavedItemRoutes(router chi.Router, savedHandler *SavedItemHandler) {
	router.Route("/saved-items", func(s chi.Router) {
		s.Post("/", savedHandler.saveResult)
		s.Get("/", savedHandler.listSavedItems)
		s.Delete("/{id}", savedHandler.deleteSavedItem)
	})
}
