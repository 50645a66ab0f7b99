// Package forms описывает входные данные форм регистрации и входа и их проверку.
//
// Каждая форма проверяется тегами validator, а нарушения переводятся в упорядоченный
// список сообщений, который без изменений отдается клиенту.
package forms

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/akiba-auth/internal/lib/password"
)

// Сообщения об ошибках, которые видит пользователь.
const (
	MsgFieldRequired    = "Field is required"
	MsgEmailInvalid     = "A valid email is required"
	MsgPasswordShort    = "A valid password is required (more than 4 characters)"
	MsgPasswordTooLong  = "Password must be at most 72 bytes"
	MsgEmailRequired    = "Email is required"
	MsgPasswordRequired = "A valid password is required"
	MsgGrantType        = "Unsupported grant type"
)

var validate = newValidator()

// newValidator добавляет тег pwbytes: длина пароля в байтах не превышает предел bcrypt.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxLength
	}); err != nil {
		panic(err)
	}
	return v
}

// RegisterForm содержит данные формы регистрации.
type RegisterForm struct {
	Firstname string `json:"firstname" form:"firstname" validate:"required"`
	Lastname  string `json:"lastname" form:"lastname" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=5,pwbytes"`
}

// Validate возвращает ошибки формы регистрации в порядке полей.
func (f *RegisterForm) Validate() []string {
	f.Firstname = strings.TrimSpace(f.Firstname)
	f.Lastname = strings.TrimSpace(f.Lastname)
	f.Email = strings.TrimSpace(f.Email)

	return messages(validate.Struct(f), func(fe validator.FieldError) string {
		switch fe.Field() {
		case "Firstname", "Lastname":
			return MsgFieldRequired
		case "Email":
			if fe.Tag() == "required" {
				return MsgFieldRequired
			}
			return MsgEmailInvalid
		case "Password":
			if fe.Tag() == "pwbytes" {
				return MsgPasswordTooLong
			}
			return MsgPasswordShort
		}
		return MsgFieldRequired
	})
}

// LoginForm содержит данные формы входа. Username содержит email.
type LoginForm struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Validate возвращает ошибки формы входа в порядке полей.
func (f *LoginForm) Validate() []string {
	f.Username = strings.TrimSpace(f.Username)
	return messages(validate.Struct(f), loginMessage)
}

// TokenForm содержит форму OAuth2 password grant. Scope и данные клиента принимаются, но не используются.
type TokenForm struct {
	GrantType    string `json:"grant_type" form:"grant_type" validate:"omitempty,eq=password"`
	Username     string `json:"username" form:"username" validate:"required"`
	Password     string `json:"password" form:"password" validate:"required"`
	Scope        string `json:"scope" form:"scope"`
	ClientID     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
}

// Validate возвращает ошибки формы выдачи токена в порядке полей.
func (f *TokenForm) Validate() []string {
	f.Username = strings.TrimSpace(f.Username)
	return messages(validate.Struct(f), func(fe validator.FieldError) string {
		if fe.Field() == "GrantType" {
			return MsgGrantType
		}
		return loginMessage(fe)
	})
}

func loginMessage(fe validator.FieldError) string {
	if fe.Field() == "Username" {
		return MsgEmailRequired
	}
	return MsgPasswordRequired
}

// messages переводит ошибки validator в сообщения, убирая повторы.
func messages(err error, translate func(validator.FieldError) string) []string {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}
	var out []string
	for _, fe := range errs {
		msg := translate(fe)
		if !slices.Contains(out, msg) {
			out = append(out, msg)
		}
	}
	return out
}
