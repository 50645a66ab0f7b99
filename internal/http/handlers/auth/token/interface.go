package token

import (
	"context"
	"time"
)

// Service описывает интерфейс выдачи токена по паролю.
type Service interface {
	Login(ctx context.Context, email, password string, ttl time.Duration) (string, error)
}
