// Package middlewarectx содержит HTTP middleware: проверку токена доступа
// и сбор метрик запросов.
//
// JWTMiddleware проверяет заголовок Authorization, определяет пользователя по токену
// и кладет его в контекст запроса. В случае ошибки проверки возвращает
// HTTP 401 Unauthorized с заголовком WWW-Authenticate: Bearer.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/akiba-auth/internal/http/response"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/jwt"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
	"github.com/magabrotheeeer/akiba-auth/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User является ключом для текущего пользователя в контексте.
const User Key = "user"

// Service описывает интерфейс определения пользователя по токену.
type Service interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает пользователя, положенного JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or invalid authorization header")
				unauthorized(w, r, "missing or invalid authorization header")
				return
			}

			user, err := service.CurrentUser(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					log.Info("token expired")
					unauthorized(w, r, "token has expired")
					return
				}
				log.Info("invalid token", sl.Err(err))
				unauthorized(w, r, "could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken достает токен из заголовка Authorization. Схема сравнивается без учета регистра.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}
