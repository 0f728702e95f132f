package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

type ResultHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewResultHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *ResultHandler {
	return &ResultHandler{searchUsecase: searchUsecase, logger: logger}
}

// listResults
//
//	@Summary	Результаты записи поиска
//	@Tags		results
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"Идентификатор пользователя"
//	@Param		id			path	string	true	"ID записи поиска"
//	@Param		min_price	query	string	false	"Минимальная цена"
//	@Param		max_price	query	string	false	"Максимальная цена"
//	@Param		min_rating	query	number	false	"Минимальный рейтинг (товары без рейтинга исключаются)"
//	@Param		source		query	string	false	"Фильтр по источнику"
//	@Param		limit		query	int		false	"Максимум результатов"
//	@Success	200			{array}	ResultResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/searches/{id}/results [get]
func (h *ResultHandler) listResults(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	filter, err := h.parseResultFilter(r, defaultLimit, maxLimit)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	req := &usecase.ListResultsReq{
		CallerID: callerID(r),
		QueryID:  chi.URLParam(r, "id"),
		Filter:   filter,
	}

	results, err := h.searchUsecase.ListResults(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrResultResponse(results))
}

type rerankRequest struct {
	Strategy string `json:"strategy"`
}

// rerank
//
//	@Summary		Пересчёт порядка результатов
//	@Description	Сортирует результаты записи по выбранной стратегии и сохраняет новый system_rank
//	@Tags			results
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header	string			true	"Идентификатор пользователя"
//	@Param			id			path	string			true	"ID записи поиска"
//	@Param			request		body	rerankRequest	true	"Стратегия сортировки"
//	@Success		200			{array}	ResultResponse
//	@Failure		400			{object}	ErrorResponse	"Неизвестная стратегия"
//	@Router			/searches/{id}/rerank [post]
func (h *ResultHandler) rerank(w http.ResponseWriter, r *http.Request) {
	var req rerankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	strategy, ok := domain.ParseRankStrategy(req.Strategy)
	if !ok {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrUnknownRankStrategy.Error(), req.Strategy)
		WriteError(w, e.ErrUnknownRankStrategy)
		return
	}

	results, err := h.searchUsecase.Rerank(r.Context(), &usecase.RerankReq{
		CallerID: callerID(r),
		QueryID:  chi.URLParam(r, "id"),
		Strategy: strategy,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrResultResponse(results))
}

func (h *ResultHandler) parseResultFilter(r *http.Request, defaultLimit, maxLimit int) (*usecase.ResultFilter, error) {
	minPrice, err := parseOptionalPriceParam(r, "min_price")
	if err != nil {
		return nil, err
	}

	maxPrice, err := parseOptionalPriceParam(r, "max_price")
	if err != nil {
		return nil, err
	}

	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return nil, e.ErrInvalidPriceRange
	}

	minRating, err := parseOptionalRatingParam(r, "min_rating")
	if err != nil {
		return nil, err
	}

	var source *string
	if v := r.URL.Query().Get("source"); v != "" {
		source = &v
	}

	return &usecase.ResultFilter{
		MinPriceCents: minPrice,
		MaxPriceCents: maxPrice,
		MinRating:     minRating,
		Source:        source,
		Limit:         parseLimitParam(r, defaultLimit, maxLimit),
	}, nil
}
