// Package middlewarectx содержит HTTP middleware защищённых маршрутов:
// проверку админской сессии по cookie и ограничение частоты запросов.
//
// SessionMiddleware читает токен сессии из cookie, загружает сессию из
// хранилища, проверяет таймаут простоя и кладёт сессию в контекст запроса.
// При любой неудаче возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Session — ключ для админской сессии в контексте
	Session Key = "admin_session"
	// SessionToken — ключ для токена сессии в контексте
	SessionToken Key = "admin_session_token"
)

// Service описывает интерфейс сервиса аутентификации для проверки сессии.
type Service interface {
	Current(ctx context.Context, token string) (*models.AdminSession, error)
	CheckTimeout(ctx context.Context, token string, sess *models.AdminSession) bool
}

// SessionMiddleware возвращает HTTP middleware, который проверяет админскую
// сессию по cookie.
//
// Если сессия существует и не истекла, добавляет её и токен в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(authService Service, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Info("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized access. Please login as admin."))
				return
			}

			sess, err := authService.Current(r.Context(), cookie.Value)
			if err != nil {
				log.Info("session not found or invalid")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized access. Please login as admin."))
				return
			}

			if authService.CheckTimeout(r.Context(), cookie.Value, sess) {
				log.Info("session expired", slog.String("username", sess.Username))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Session expired. Please login again."))
				return
			}

			ctx := context.WithValue(r.Context(), Session, sess)
			ctx = context.WithValue(ctx, SessionToken, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
