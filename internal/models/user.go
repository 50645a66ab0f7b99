// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату регистрации.
// Структуры используются в бизнес‑логике и при работе с хранилищем; в кеш попадает только UserProfile.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    `json:"uuid"`          // Уникальный идентификатор пользователя
	Firstname    string    `json:"firstname"`     // Имя
	Lastname     string    `json:"lastname"`      // Фамилия
	Email        string    `json:"email"`         // Электронная почта (уникальная, логин)
	PasswordHash string    `json:"password_hash"` // Хэш пароля пользователя
	RegisteredAt time.Time `json:"registered_at"` // Дата регистрации
}

// UserRegisteredEvent публикуется в брокер после успешной регистрации.
type UserRegisteredEvent struct {
	UserUID      string    `json:"user_uid"`
	Email        string    `json:"email"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UserProfile содержит данные пользователя, которые можно отдавать клиенту. Хэш пароля не входит.
type UserProfile struct {
	UUID         string    `json:"uuid"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Profile возвращает публичное представление пользователя.
func (u *User) Profile() UserProfile {
	return UserProfile{
		UUID:         u.UUID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		RegisteredAt: u.RegisteredAt,
	}
}

// User возвращает пользователя по профилю. Хэш пароля остается пустым.
func (p UserProfile) User() *User {
	return &User{
		UUID:         p.UUID,
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Email:        p.Email,
		RegisteredAt: p.RegisteredAt,
	}
}

// AccessToken описывает ответ с выпущенным токеном доступа.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenTypeBearer задает тип выдаваемых токенов.
const TokenTypeBearer = "bearer"
