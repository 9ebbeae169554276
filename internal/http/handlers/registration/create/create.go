// Package create реализует HTTP-обработчик регистрации участника конференции.
//
// Handler принимает JSON или form-запрос с данными участника, передает их
// бизнес-логике и возвращает созданную регистрацию. Ошибки валидации и конфликт
// email транслируются в соответствующие HTTP-статусы с единым конвертом ответа.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/http/request"
	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/services/registration"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

// Handler управляет HTTP-запросами на регистрацию участников.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики регистраций
}

// Service описывает интерфейс бизнес-логики создания регистрации.
type Service interface {
	Create(ctx context.Context, req models.DummyRegistration) (*models.Registration, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Зарегистрировать участника
// @Description Создает регистрацию участника конференции. Принимает JSON или HTML-форму.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param request body models.DummyRegistration true "Данные участника"
// @Success 201 {object} response.Response "Регистрация создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegistration
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body."))
		return
	}

	reg, err := h.service.Create(r.Context(), req)

	var vErr *registration.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Info("validation failed", slog.Any("errors", vErr.Messages))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationFailed(vErr.Messages))
		return
	case errors.Is(err, repository.ErrEmailExists):
		log.Info("duplicate email", slog.String("email", req.Email))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.ErrorWithDetails(
			"Email address is already registered.",
			[]string{"This email address has already been used for registration."},
		))
		return
	case err != nil:
		log.Error("failed to create registration", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(
			"An error occurred while processing your registration.",
			[]string{"Internal server error."},
		))
		return
	}

	log.Info("registration created", slog.Int("id", reg.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData("Registration successful!", map[string]any{
		"registration_id": reg.ID,
		"full_name":       reg.FullName,
		"email":           reg.Email,
		"session_choice":  reg.SessionChoice,
	}))
}
