package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

type submitSearchRequest struct {
	SearchText  string `json:"search_text"`
	Preferences struct {
		MinPrice        json.RawMessage `json:"min_price"`
		MaxPrice        json.RawMessage `json:"max_price"`
		MinRating       *float64        `json:"min_rating"`
		TargetRetailers []string        `json:"target_retailers"`
	} `json:"preferences"`
}

// submitSearch
//
//	@Summary		Создание записи поиска
//	@Description	Принимает поисковый запрос и ставит его в очередь диспетчеризации
//	@Tags			searches
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string					true	"Идентификатор пользователя"
//	@Param			request		body		submitSearchRequest		true	"Поисковый запрос"
//	@Success		202			{object}	map[string]interface{}	"Запись принята"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/searches [post]
func (h *SearchHandler) submitSearch(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req submitSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	minPrice, err := parseJSONPrice(req.Preferences.MinPrice)
	if err != nil {
		h.logger.Warnf("%d %s: min_price", http.StatusBadRequest, e.ErrInvalidPrice.Error())
		WriteError(w, err)
		return
	}

	maxPrice, err := parseJSONPrice(req.Preferences.MaxPrice)
	if err != nil {
		h.logger.Warnf("%d %s: max_price", http.StatusBadRequest, e.ErrInvalidPrice.Error())
		WriteError(w, err)
		return
	}

	prefs := domain.Preferences{
		MinPriceCents:   minPrice,
		MaxPriceCents:   maxPrice,
		MinRating:       req.Preferences.MinRating,
		TargetRetailers: req.Preferences.TargetRetailers,
	}

	res, err := h.searchUsecase.SubmitSearch(r.Context(), usecase.NewSubmitSearchReq(callerID(r), req.SearchText, prefs))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, map[string]interface{}{
		"query_id": res.QueryID,
		"status":   string(res.Status),
	})
}

// getQueryStatus
//
//	@Summary	Статус записи поиска
//	@Tags		searches
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"Идентификатор пользователя"
//	@Param		id			path		string	true	"ID записи поиска"
//	@Success	200			{object}	QueryResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/searches/{id} [get]
func (h *SearchHandler) getQueryStatus(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "id")

	info, err := h.searchUsecase.GetQueryStatus(r.Context(), queryID, callerID(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toQueryResponse(info))
}

// listQueries
//
//	@Summary	Список записей поиска пользователя
//	@Tags		searches
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"Идентификатор пользователя"
//	@Param		status		query	string	false	"Фильтр по статусу"
//	@Param		limit		query	int		false	"Максимум записей"
//	@Success	200			{array}	QueryResponse
//	@Router		/searches [get]
func (h *SearchHandler) listQueries(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	var status *domain.QueryStatus
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		s := domain.QueryStatus(v)
		if !s.IsValid() {
			h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidStatusFilter.Error(), v)
			WriteError(w, e.ErrInvalidStatusFilter)
			return
		}
		status = &s
	}

	req := &usecase.ListQueriesReq{
		CallerID: callerID(r),
		Status:   status,
		Limit:    parseLimitParam(r, defaultLimit, maxLimit),
	}

	infos, err := h.searchUsecase.ListQueries(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrQueryResponse(infos))
}

// deleteQuery
//
//	@Summary	Удаление записи поиска вместе с её результатами
//	@Tags		searches
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"Идентификатор пользователя"
//	@Param		id			path		string	true	"ID записи поиска"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	404			{object}	ErrorResponse
//	@Router		/searches/{id} [delete]
func (h *SearchHandler) deleteQuery(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "id")

	res, err := h.searchUsecase.DeleteQuery(r.Context(), queryID, callerID(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"deleted_result_count": res.DeletedResultCount,
	})
}

// refreshQuery
//
//	@Summary		Повторная диспетчеризация завершённой записи поиска
//	@Description	Возвращает терминальную запись в pending; свежие результаты заменят устаревшие по URL товара
//	@Tags			searches
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"Идентификатор пользователя"
//	@Param			id			path		string	true	"ID записи поиска"
//	@Success		202			{object}	map[string]interface{}
//	@Failure		409			{object}	ErrorResponse	"Запись ещё в обработке"
//	@Router			/searches/{id}/refresh [post]
func (h *SearchHandler) refreshQuery(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "id")

	if err := h.searchUsecase.RefreshQuery(r.Context(), queryID, callerID(r)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, map[string]interface{}{
		"query_id": queryID,
		"status":   string(domain.QueryPending),
	})
}
