// Package sessionlist реализует HTTP-обработчик списка секций конференции.
package sessionlist

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

// Handler управляет HTTP-запросами на получение списка секций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка секций.
type Service interface {
	Sessions(ctx context.Context) ([]*models.ConferenceSession, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список секций конференции
// @Description Возвращает справочник секций, доступных для выбора при регистрации.
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Response "Список секций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /sessions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.sessionlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Sessions(r.Context())
	if err != nil {
		log.Error("failed to fetch sessions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred while fetching sessions."))
		return
	}

	render.JSON(w, r, response.OKWithData("Sessions fetched successfully.", items))
}
