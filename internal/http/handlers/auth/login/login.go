// Package login реализует HTTP-обработчик входа пользователя.
//
// Форма проверяется, затем сервис сверяет пароль и выпускает токен доступа.
// Ошибки формы и аутентификации накапливаются в списке errors ответа.
package login

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

// Сообщения об ошибках аутентификации.
const (
	MsgUserNotFound    = "User does not exist!"
	MsgInvalidPassword = "Invalid password!"
	msgLoginFailed     = "failed to log in"
)

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис аутентификации
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает токен доступа.
// @Tags Auth
// @Accept  json,x-www-form-urlencoded,mpfd
// @Produce  json
// @Param request body forms.LoginForm true "Учетные данные пользователя"
// @Success 200 {object} response.Response{data=models.AccessToken} "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var form forms.LoginForm
	if err := forms.Decode(r, &form); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		log.Info("validation failed", slog.Any("errors", errs))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FormErrors(errs))
		return
	}

	token, err := h.service.Login(r.Context(), form.Username, form.Password, 0)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			log.Info("login rejected: user not found")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.FormErrors([]string{MsgUserNotFound}))
		case errors.Is(err, auth.ErrInvalidPassword):
			log.Info("login rejected: invalid password")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.FormErrors([]string{MsgInvalidPassword}))
		default:
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.FormErrors([]string{msgLoginFailed}))
		}
		return
	}

	log.Info("login success")
	render.JSON(w, r, response.StatusOKWithData(models.AccessToken{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	}))
}
