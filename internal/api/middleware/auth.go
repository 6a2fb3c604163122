package middleware

import (
	"context"
	"net/http"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity аутентифицированная личность из identity-заголовков шлюза
type Identity struct {
	Email string
	Role  domain.Role
}

// Auth middleware извлекает личность запрашивающего из заголовков
// X-User-Email и X-User-Role. Сервис доверяет шлюзу: заголовки обязаны
// присутствовать и роль должна входить в закрытый набор ролей.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-User-Email")
		if email == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-Email")
			return
		}

		role, err := domain.ParseRole(r.Header.Get("X-User-Role"))
		if err != nil {
			handlers.RespondUnauthorized(w, "некорректный или отсутствующий заголовок X-User-Role")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{Email: email, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity извлекает личность запрашивающего из контекста
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
