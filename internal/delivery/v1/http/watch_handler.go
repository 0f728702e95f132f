package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// heartbeatInterval — период SSE-комментариев, удерживающих соединение открытым.
const heartbeatInterval = 15 * time.Second

type WatchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewWatchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *WatchHandler {
	return &WatchHandler{searchUsecase: searchUsecase, logger: logger}
}

// watchQuery
//
//	@Summary		Наблюдение за записью поиска
//	@Description	SSE-поток: снапшот текущего состояния, затем события смены статуса. Поток закрывается после терминального события.
//	@Tags			searches
//	@Produce		text/event-stream
//	@Param			X-User-ID	header	string	true	"Идентификатор пользователя"
//	@Param			id			path	string	true	"ID записи поиска"
//	@Success		200			"Поток событий"
//	@Failure		404			{object}	ErrorResponse
//	@Router			/searches/{id}/watch [get]
func (h *WatchHandler) watchQuery(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Warnf("streaming unsupported by response writer")
		WriteError(w, e.ErrInternalServerError)
		return
	}

	// Подписка и снапшот выполняются внутри usecase в таком порядке,
	// чтобы не потерять переход между снапшотом и первой доставкой
	updates, unsubscribe, err := h.searchUsecase.WatchQuery(r.Context(), queryID, callerID(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	defer unsubscribe()

	info, err := h.searchUsecase.GetQueryStatus(r.Context(), queryID, callerID(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// Серверный WriteTimeout оборвал бы долгоживущий поток
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debugf("reset write deadline: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", toQueryResponse(info)); err != nil {
		return
	}
	flusher.Flush()

	if info.Status.IsTerminal() {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case update, ok := <-updates:
			if !ok {
				return
			}

			if err := writeEvent(w, "update", update); err != nil {
				return
			}
			flusher.Flush()

			if update.Status.IsTerminal() {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
