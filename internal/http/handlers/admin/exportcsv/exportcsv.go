// Package exportcsv реализует HTTP-обработчик выгрузки регистраций в CSV.
package exportcsv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/lib/sl"
)

// Handler управляет HTTP-запросами на экспорт регистраций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики экспорта.
type Service interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Экспорт регистраций в CSV
// @Description Выгружает действующие регистрации файлом CSV. Только для администратора.
// @Tags Admin
// @Produce text/csv
// @Success 200 {string} string "CSV-файл"
// @Failure 401 {object} response.ErrorResponse "Нет доступа"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/registrations/export.csv [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.exportcsv"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// CSV сначала собирается в буфер: при ошибке хранилища клиент получает
	// JSON-ошибку, а не обрезанный файл.
	var buf bytes.Buffer
	if err := h.service.WriteCSV(r.Context(), &buf); err != nil {
		log.Error("failed to export registrations", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred while exporting registrations."))
		return
	}

	filename := fmt.Sprintf("yaicess_registrations_%s.csv", time.Now().Format("2006-01-02_15-04-05"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-cache, must-revalidate")

	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("failed to write csv response", sl.Err(err))
	}
}
