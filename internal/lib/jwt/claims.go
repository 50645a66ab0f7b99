package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims описывает данные, хранящиеся в токене доступа.
// Subject (sub) содержит email пользователя.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue создает JWT токен для subject, подписывая его секретным ключом.
//
// Срок действия равен now + ttl; при ttl <= 0 используется срок по умолчанию.
func (j *MakerImpl) Issue(subject string, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	if ttl <= 0 {
		ttl = j.defaultTTL
	}
	now := j.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Verify парсит токен, проверяет алгоритм, подпись и срок действия,
// возвращает subject, если токен корректен.
func (j *MakerImpl) Verify(tokenStr string) (string, error) {
	const op = "jwt.Verify"
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return "", fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	return claims.Subject, nil
}
