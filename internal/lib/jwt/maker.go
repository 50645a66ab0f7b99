// Package jwt реализует выпуск и проверку подписанных JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с subject (email пользователя).
// MakerImpl является конкретной реализацией с секретным ключом, алгоритмом подписи и сроком жизни
// по умолчанию, которые задаются один раз при старте.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpiredToken возвращается, если срок действия токена истёк.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidSignature возвращается при неверной подписи или структуре токена.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrConfiguration возвращается при некорректных параметрах выпуска токенов.
	ErrConfiguration = errors.New("invalid token configuration")
)

// Maker описывает интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	// Issue выпускает токен для subject. ttl <= 0 означает срок жизни по умолчанию.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify проверяет токен и возвращает его subject.
	Verify(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа,
// HMAC-алгоритма подписи и времени жизни токена по умолчанию.
type MakerImpl struct {
	secretKey  []byte            // Секретный ключ для подписи токенов.
	method     jwt.SigningMethod // Алгоритм подписи.
	defaultTTL time.Duration     // Время жизни токена по умолчанию.
	now        func() time.Time
}

// NewJWTMaker создаёт MakerImpl. Пустой ключ, неподдерживаемый алгоритм или
// неположительный TTL по умолчанию являются ошибкой конфигурации.
func NewJWTMaker(secretKey, algorithm string, defaultTTL time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewJWTMaker"
	if secretKey == "" {
		return nil, fmt.Errorf("%s: %w: secret key is empty", op, ErrConfiguration)
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%s: %w: unsupported algorithm %q", op, ErrConfiguration, algorithm)
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("%s: %w: token ttl must be positive, got %s", op, ErrConfiguration, defaultTTL)
	}
	return &MakerImpl{
		secretKey:  []byte(secretKey),
		method:     method,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// DefaultTTL возвращает время жизни токена по умолчанию.
func (j *MakerImpl) DefaultTTL() time.Duration {
	return j.defaultTTL
}

// Algorithm возвращает имя алгоритма подписи.
func (j *MakerImpl) Algorithm() string {
	return j.method.Alg()
}
