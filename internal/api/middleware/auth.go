package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID пользователя от внешнего сервиса аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя (user/manager/admin)
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный ID пользователя в заголовке X-User-ID"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth middleware проверяет наличие заголовка X-User-ID и кладёт
// идентификатор и роль вызывающего в контекст запроса.
// Проверка учётных данных - обязанность внешнего сервиса аутентификации,
// здесь заголовок считается доверенным.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)

		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole извлекает роль пользователя из контекста.
// Пустая строка означает, что роль не передана - вызывающий обычный пользователь.
func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
