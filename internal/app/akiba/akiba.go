// Package akiba собирает зависимости сервиса и запускает HTTP-сервер.
package akiba

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/akiba-auth/internal/cache"
	"github.com/magabrotheeeer/akiba-auth/internal/config"
	"github.com/magabrotheeeer/akiba-auth/internal/http/middlewarectx"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/jwt"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/password"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
	"github.com/magabrotheeeer/akiba-auth/internal/migrations"
	"github.com/magabrotheeeer/akiba-auth/internal/rabbitmq"
	"github.com/magabrotheeeer/akiba-auth/internal/services/auth"
	"github.com/magabrotheeeer/akiba-auth/internal/storage"
)

// App содержит собранный сервис: HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []func() error
}

// New подключается к хранилищу, применяет миграции, подключает необязательные
// кеш и брокер и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "akiba.New"
	app := &App{logger: logger}

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.closers = append(app.closers, db.Close)

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = storage.CheckDatabaseReady(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tokens, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.Algorithm, cfg.TokenTTL.Duration())
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("token issuer ready",
		slog.String("algorithm", tokens.Algorithm()),
		slog.Duration("default_ttl", tokens.DefaultTTL()))

	var userCache auth.Cache
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache.Close)
		userCache = redisCache
		logger.Info("user cache enabled", slog.String("address", cfg.AddressRedis))
	}

	var events auth.EventPublisher
	if cfg.URL != "" {
		conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, conn.Close)
		publisher, err := rabbitmq.NewPublisher(conn, cfg.Exchange)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, publisher.Close)
		events = publisher
		logger.Info("event publishing enabled", slog.String("exchange", cfg.Exchange))
	}

	authService := auth.NewAuthService(
		db,
		userCache,
		password.New(cfg.BcryptCost),
		tokens,
		events,
		cfg.UserCacheTTL,
		logger,
	)

	router := chi.NewRouter()
	metrics := middlewarectx.NewMetrics(prometheus.DefaultRegisterer)
	RegisterRoutes(router, logger, authService, metrics, db.DB)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

// close освобождает ресурсы в порядке, обратном открытию.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
