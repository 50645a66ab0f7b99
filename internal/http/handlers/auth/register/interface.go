package register

import (
	"context"

	"github.com/magabrotheeeer/akiba-auth/internal/models"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, firstname, lastname, email, password string) (*models.User, error)
}
