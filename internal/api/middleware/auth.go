package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type contextKey int

const authStateKey contextKey = iota

// accessClaims полезная нагрузка access-токена портала
type accessClaims struct {
	UserID   int64  `json:"user_id"`
	ClientID *int64 `json:"client_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth извлекает опциональный Bearer токен в состояние аутентификации
//
// Мастер доступен гостям: отсутствие или невалидность токена не блокирует
// запрос, он просто идет анонимным. Учетные данные нужны только веткам,
// которые прикрепляют бронирование к аккаунту
func Auth(jwtSecret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, err := parseAuthHeader(r.Header.Get("Authorization"), jwtSecret)
			if err != nil {
				logger.Warn("Auth: invalid token for %s %s, continuing as guest: %v",
					r.Method, r.URL.Path, err)
				auth = domain.AuthState{}
			}

			ctx := context.WithValue(r.Context(), authStateKey, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthFromContext возвращает состояние аутентификации запроса
// Без middleware в цепочке возвращается анонимное состояние
func AuthFromContext(ctx context.Context) domain.AuthState {
	if auth, ok := ctx.Value(authStateKey).(domain.AuthState); ok {
		return auth
	}
	return domain.AuthState{}
}

func parseAuthHeader(header, jwtSecret string) (domain.AuthState, error) {
	if header == "" {
		return domain.AuthState{}, nil
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return domain.AuthState{}, fmt.Errorf("authorization header is not a bearer token")
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return domain.AuthState{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return domain.AuthState{}, fmt.Errorf("token is not valid")
	}

	return domain.AuthState{
		Authenticated: true,
		UserID:        claims.UserID,
		ClientID:      claims.ClientID,
		Role:          domain.Role(claims.Role),
		AccessToken:   raw,
	}, nil
}
