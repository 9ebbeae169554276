package registrationapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/cancel"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/exportcsv"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/list"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/login"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/logout"
	"github.com/yaicess/conference-registration/internal/http/handlers/admin/stats"
	"github.com/yaicess/conference-registration/internal/http/handlers/registration/create"
	"github.com/yaicess/conference-registration/internal/http/handlers/registration/health"
	"github.com/yaicess/conference-registration/internal/http/handlers/registration/sessionlist"
	"github.com/yaicess/conference-registration/internal/http/middlewarectx"
	"github.com/yaicess/conference-registration/internal/http/response"
	authservice "github.com/yaicess/conference-registration/internal/services/auth"
	registrationservice "github.com/yaicess/conference-registration/internal/services/registration"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, registrationService *registrationservice.Service, authService *authservice.Service, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Неизвестный маршрут и неподдерживаемый метод отвечают тем же конвертом,
	// что и остальное API.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Endpoint not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not allowed."))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/register", create.New(logger, registrationService).ServeHTTP)
		r.Get("/sessions", sessionlist.New(logger, registrationService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Post("/admin/login", login.New(logger, authService, cfg.AdminSession).ServeHTTP)
		r.Post("/admin/logout", logout.New(logger, authService, cfg.AdminSession).ServeHTTP)

		// Группа с проверкой админской сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, cfg.AdminSession.CookieName, logger))
			r.Get("/admin/registrations", list.New(logger, registrationService).ServeHTTP)
			r.Get("/admin/stats", stats.New(logger, registrationService).ServeHTTP)
			r.Post("/admin/registrations/cancel", cancel.New(logger, registrationService).ServeHTTP)
			r.Delete("/admin/registrations/cancel", cancel.New(logger, registrationService).ServeHTTP)
			// URLFormat снимает расширение, поэтому маршрут объявлен без ".csv",
			// а публичный URL остаётся /admin/registrations/export.csv.
			r.Get("/admin/registrations/export", exportcsv.New(logger, registrationService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
