// Package logout реализует HTTP-обработчик выхода администратора.
package logout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/services/auth"
)

// Handler управляет HTTP-запросами на выход администратора.
type Handler struct {
	log     *slog.Logger
	service Service
	cookie  config.AdminSession
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// New создает новый Handler с переданными логгером, сервисом и настройками cookie.
func New(log *slog.Logger, service Service, cookie config.AdminSession) *Handler {
	return &Handler{log: log, service: service, cookie: cookie}
}

// ServeHTTP godoc
// @Summary Выход администратора
// @Description Уничтожает серверную сессию и сбрасывает cookie. Выход без действующей сессии — ошибка 400.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 400 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var token string
	if cookie, err := r.Cookie(h.cookie.CookieName); err == nil {
		token = cookie.Value
	}

	err := h.service.Logout(r.Context(), token)
	if errors.Is(err, auth.ErrNoActiveSession) {
		log.Info("logout without active session")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("No active session found."))
		return
	}
	if err != nil {
		log.Error("logout failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred during logout."))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("admin logout successful")
	render.JSON(w, r, response.OK("Logout successful!"))
}
