package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/akiba-auth/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает сохранённую запись.
//
// Идентификатор и дата регистрации выставляются здесь. Если пользователь с таким
// email уже существует (в том числе при гонке двух регистраций), возвращается ErrDuplicateEmail.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	user.UUID = uuid.NewString()
	user.RegisteredAt = time.Now().UTC()

	query := `INSERT INTO users (uid, firstname, lastname, email, password_hash, registered_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid, registered_at;`
	err := s.DB.QueryRowContext(ctx, query,
		user.UUID, user.Firstname, user.Lastname, user.Email, user.PasswordHash,
		user.RegisteredAt).Scan(&user.UUID, &user.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.RegisteredAt = user.RegisteredAt.UTC()
	return &user, nil
}

// GetUserByEmail возвращает пользователя по точному совпадению email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, firstname, lastname, email, password_hash, registered_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, email).Scan(
		&u.UUID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash, &u.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.RegisteredAt = u.RegisteredAt.UTC()
	return u, nil
}
