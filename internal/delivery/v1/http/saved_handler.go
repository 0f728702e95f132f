package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

type SavedItemHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSavedItemHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SavedItemHandler {
	return &SavedItemHandler{searchUsecase: searchUsecase, logger: logger}
}

type saveResultRequest struct {
	ResultID string `json:"result_id"`
}

// saveResult
//
//	@Summary		Сохранение результата поиска
//	@Description	Снимает копию результата в список сохранённых товаров пользователя. Идемпотентно.
//	@Tags			saved-items
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"Идентификатор пользователя"
//	@Param			request		body		saveResultRequest	true	"Сохраняемый результат"
//	@Success		201			{object}	SavedItemResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/saved-items [post]
func (h *SavedItemHandler) saveResult(w http.ResponseWriter, r *http.Request) {
	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if req.ResultID == "" {
		h.logger.Warnf("%d %s: result_id", http.StatusBadRequest, e.ErrMissingFields.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	item, err := h.searchUsecase.SaveResult(r.Context(), callerID(r), req.ResultID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toSavedItemResponse(item))
}

// listSavedItems
//
//	@Summary	Сохранённые товары пользователя
//	@Tags		saved-items
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"Идентификатор пользователя"
//	@Param		limit		query	int		false	"Максимум записей"
//	@Success	200			{array}	SavedItemResponse
//	@Router		/saved-items [get]
func (h *SavedItemHandler) listSavedItems(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	items, err := h.searchUsecase.ListSavedItems(r.Context(), callerID(r), parseLimitParam(r, defaultLimit, maxLimit))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrSavedItemResponse(items))
}

// deleteSavedItem
//
//	@Summary	Удаление сохранённого товара
//	@Tags		saved-items
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"Идентификатор пользователя"
//	@Param		id			path		string	true	"ID сохранённого товара"
//	@Success	204			"Удалено"
//	@Failure	404			{object}	ErrorResponse
//	@Router		/saved-items/{id} [delete]
func (h *SavedItemHandler) deleteSavedItem(w http.ResponseWriter, r *http.Request) {
	if err := h.searchUsecase.DeleteSavedItem(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
