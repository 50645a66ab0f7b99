package login

import (
	"context"
	"time"
)

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string, ttl time.Duration) (string, error)
}
