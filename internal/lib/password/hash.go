// Package password реализует хеширование и проверку паролей пользователей.
//
// Hasher создает bcrypt-хеш пароля для безопасного хранения и сверяет
// введённый пароль с сохранённым хешем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength наибольшая длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

// ErrTooLong возвращается для пароля длиннее MaxLength байт.
var ErrTooLong = errors.New("password is too long")

// Hasher хеширует пароли bcrypt с заданной стоимостью.
type Hasher struct {
	cost int // Стоимость bcrypt (work factor)
}

// New создаёт Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Соль генерируется на каждый вызов, поэтому два хеша одного пароля различаются.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Verify сравнивает введённый пароль с bcrypt‑хэшем.
//
// Повреждённый или чужой хеш считается несовпадением.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
