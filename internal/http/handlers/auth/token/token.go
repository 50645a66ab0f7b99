// Package token реализует OAuth2 password grant: обмен email и пароля на токен доступа.
//
// Любая ошибка проверки формы или учетных данных отвечает 401 с заголовком
// WWW-Authenticate: Bearer и не раскрывает, что именно не совпало.
package token

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/akiba-auth/internal/http/forms"
	"github.com/magabrotheeeer/akiba-auth/internal/http/response"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
	"github.com/magabrotheeeer/akiba-auth/internal/models"
	"github.com/magabrotheeeer/akiba-auth/internal/services/auth"
)

// MsgCredentials используется как единственное сообщение при отказе в выдаче токена.
const MsgCredentials = "could not validate credentials"

// Handler обрабатывает запросы на выдачу токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выдача токена (OAuth2 password grant)
// @Description Обменивает username (email) и password на токен доступа.
// @Tags Auth
// @Accept  x-www-form-urlencoded,mpfd,json
// @Produce  json
// @Param request body forms.TokenForm true "Учетные данные"
// @Success 200 {object} models.AccessToken "Токен выдан"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var form forms.TokenForm
	if err := forms.Decode(r, &form); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		unauthorized(w, r)
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		log.Info("validation failed", slog.Any("errors", errs))
		unauthorized(w, r)
		return
	}

	token, err := h.service.Login(r.Context(), form.Username, form.Password, 0)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidPassword) {
			log.Info("token request rejected", sl.Err(err))
			unauthorized(w, r)
			return
		}
		log.Error("failed to issue token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, models.AccessToken{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(MsgCredentials))
}
