// Package login реализует HTTP-обработчик входа администратора.
//
// Handler проверяет учётные данные через сервис аутентификации и при успехе
// выставляет cookie с токеном серверной сессии.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/http/request"
	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/services/auth"
	"github.com/yaicess/conference-registration/internal/validation"
)

// Handler управляет HTTP-запросами на вход администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validation.Engine
	cookie   config.AdminSession
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *models.AdminSession, error)
}

// New создает новый Handler с переданными логгером, сервисом и настройками cookie.
func New(log *slog.Logger, service Service, cookie config.AdminSession) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
		cookie:   cookie,
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Проверяет пару username/password и создает серверную сессию. Токен сессии возвращается в cookie.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.DummyCredentials true "Учётные данные"
// @Success 200 {object} response.Response "Вход выполнен"
// @Failure 400 {object} response.ErrorResponse "Не переданы учётные данные"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var creds models.DummyCredentials
	if err := request.Decode(r, &creds); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body."))
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Password = strings.TrimSpace(creds.Password)

	if msgs := h.validate.Credentials(creds); len(msgs) > 0 {
		log.Info("missing credentials")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorWithDetails("Username and password are required.", msgs))
		return
	}

	token, sess, err := h.service.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("failed login attempt", slog.String("username", creds.Username))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.ErrorWithDetails(
			"Invalid username or password.",
			[]string{"Login credentials are incorrect."},
		))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(
			"An error occurred during login.",
			[]string{"Internal server error."},
		))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((time.Duration(h.cookie.TimeoutMinutes) * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("admin login successful", slog.String("username", sess.Username))
	render.JSON(w, r, response.OKWithData("Login successful!", map[string]any{
		"admin_id":   sess.AdminID,
		"username":   sess.Username,
		"full_name":  sess.FullName,
		"role":       sess.Role,
		"session_id": token,
	}))
}
