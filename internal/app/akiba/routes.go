package akiba

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрирует описание API для /docs.
	_ "github.com/magabrotheeeer/akiba-auth/docs"
	"github.com/magabrotheeeer/akiba-auth/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/akiba-auth/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/akiba-auth/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/akiba-auth/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/akiba-auth/internal/http/handlers/health"
	"github.com/magabrotheeeer/akiba-auth/internal/http/middlewarectx"
)

// AuthService объединяет операции сервиса, нужные обработчикам.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService AuthService, metrics *middlewarectx.Metrics, db health.Pinger) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	r.Post("/token", token.New(logger, authService).ServeHTTP)
	r.Get("/health", health.New(logger, db).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Get("/me", me.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
