// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Принимает JSON, urlencoded- или multipart-форму, проверяет поля и передает регистрацию сервису.
// Отправка формы после успеха перенаправляется на /login, JSON-клиент получает
// созданного пользователя со статусом 201.
package register

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/akiba-auth/internal/http/forms"
	"github.com/magabrotheeeer/akiba-auth/internal/http/response"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
	"github.com/magabrotheeeer/akiba-auth/internal/services/auth"
)

const (
	// MsgUserAlreadyExists возвращается в ошибках формы для занятого email.
	MsgUserAlreadyExists = "User already exists!"
	msgRegisterFailed    = "failed to register user"
)

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создает учетную запись. Форма перенаправляется на /login, JSON получает пользователя.
// @Tags Auth
// @Accept  json,x-www-form-urlencoded,mpfd
// @Produce  json
// @Param request body forms.RegisterForm true "Данные нового пользователя"
// @Success 201 {object} response.Response{data=models.UserProfile} "Пользователь создан"
// @Success 302 "Перенаправление на /login"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var form forms.RegisterForm
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

	user, err := h.service.Register(r.Context(), form.Firstname, form.Lastname, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			log.Info("user already exists")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.FormErrors([]string{MsgUserAlreadyExists}))
			return
		}
		if errors.Is(err, auth.ErrPasswordTooLong) {
			log.Info("password too long")
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FormErrors([]string{forms.MsgPasswordTooLong}))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.FormErrors([]string{msgRegisterFailed}))
		return
	}

	log.Info("user registered", slog.String("user_uid", user.UUID))

	if render.GetRequestContentType(r) == render.ContentTypeForm {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
