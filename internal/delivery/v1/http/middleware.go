package http

import (
	"context"
	"net/http"

	"github.com/voicecart/search-backend/pkg/e"
)

type ctxKey int

const callerIDKey ctxKey = iota

// CallerIdentity извлекает идентификатор вызывающего пользователя из заголовка
// X-User-ID. Запросы без идентификатора отклоняются: каждая операция проверяет
// владение данными, анонимного доступа нет.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := r.Header.Get("X-User-ID")
		if callerID == "" {
			WriteError(w, e.ErrUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), callerIDKey, callerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID возвращает идентификатор пользователя, положенный middleware.
func callerID(r *http.Request) string {
	id, _ := r.Context().Value(callerIDKey).(string)
	return id
}
