// Package list реализует HTTP-обработчик списка регистраций для администратора.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
)

// Handler управляет HTTP-запросами на получение списка регистраций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка регистраций.
type Service interface {
	List(ctx context.Context) ([]*models.Registration, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// listResponse расширяет стандартный конверт полем total на верхнем уровне.
type listResponse struct {
	response.Response
	Total int `json:"total"`
}

// ServeHTTP godoc
// @Summary Список регистраций
// @Description Возвращает все действующие регистрации, новые первыми. Только для администратора.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response "Список регистраций"
// @Failure 401 {object} response.ErrorResponse "Нет доступа"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/registrations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to fetch registrations", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred while fetching registrations."))
		return
	}

	msg := "Registrations fetched successfully."
	if len(items) == 0 {
		msg = "No registrations found."
		items = []*models.Registration{}
	}

	render.JSON(w, r, listResponse{
		Response: response.OKWithData(msg, items),
		Total:    len(items),
	})
}
