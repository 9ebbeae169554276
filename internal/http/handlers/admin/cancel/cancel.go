// Package cancel реализует HTTP-обработчик отмены регистрации администратором.
//
// ID регистрации принимается из JSON-тела, HTML-формы или query-параметра,
// как для POST, так и для DELETE запросов. Отмена — мягкое удаление:
// запись переводится в статус cancelled и исчезает из списков и экспорта.
package cancel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

// Handler управляет HTTP-запросами на отмену регистрации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены регистрации.
type Service interface {
	Cancel(ctx context.Context, id int) (*models.Registration, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// cancelRequest принимает ID как число или числовую строку.
type cancelRequest struct {
	ID json.Number `json:"id"`
}

// extractID ищет ID регистрации в JSON-теле, форме и query-параметре.
func extractID(r *http.Request) (int, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req cancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.ID != "" {
			if id, err := strconv.Atoi(req.ID.String()); err == nil {
				return id, true
			}
			return 0, false
		}
	} else if err := r.ParseForm(); err == nil {
		if raw := r.PostForm.Get("id"); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				return id, true
			}
			return 0, false
		}
	}

	if raw := r.URL.Query().Get("id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id, true
		}
	}
	return 0, false
}

// ServeHTTP godoc
// @Summary Отменить регистрацию
// @Description Переводит регистрацию в статус cancelled. ID принимается в теле запроса или query-параметре.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id body int true "ID регистрации"
// @Success 200 {object} response.Response "Регистрация отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Регистрация не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/registrations/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := extractID(r)
	if !ok || id <= 0 {
		log.Info("invalid registration id")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Valid registration ID is required."))
		return
	}

	reg, err := h.service.Cancel(r.Context(), id)
	if errors.Is(err, repository.ErrRegistrationNotFound) {
		log.Info("registration not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Registration not found."))
		return
	}
	if err != nil {
		log.Error("failed to cancel registration", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to cancel registration."))
		return
	}

	log.Info("registration cancelled", slog.Int("id", id), slog.String("email", reg.Email))
	render.JSON(w, r, response.OKWithData("Registration cancelled successfully.", map[string]any{
		"id":             reg.ID,
		"full_name":      reg.FullName,
		"email":          reg.Email,
		"session_choice": reg.SessionChoice,
	}))
}
