// Package me реализует получение текущего пользователя по токену доступа.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/akiba-auth/internal/http/middlewarectx"
	"github.com/magabrotheeeer/akiba-auth/internal/http/response"
)

// Handler возвращает профиль пользователя, определенного JWTMiddleware.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя, которому выдан токен доступа.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserProfile} "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, истек или неверен"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.log.Error("user missing in request context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
