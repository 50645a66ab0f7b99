// Package auth содержит бизнес-логику регистрации и аутентификации пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/akiba-auth/internal/lib/password"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
	"github.com/magabrotheeeer/akiba-auth/internal/models"
	"github.com/magabrotheeeer/akiba-auth/internal/rabbitmq"
	"github.com/magabrotheeeer/akiba-auth/internal/storage"
)

var (
	// ErrUserAlreadyExists возвращается при регистрации уже занятого email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователя с таким email нет.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrInvalidPassword возвращается, если пароль не совпал с сохранённым хэшем.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordTooLong возвращается, если пароль нельзя захэшировать из-за длины.
	ErrPasswordTooLong = errors.New("password is too long")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя; занятый email даёт storage.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает кеш пользователей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer выпускает и проверяет токены доступа.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(tokenStr string) (string, error)
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// AuthService отвечает за регистрацию, вход и определение пользователя по токену.
//
// cache и events необязательны: nil отключает кеширование и публикацию событий.
type AuthService struct {
	users    UserRepository
	cache    Cache
	hasher   PasswordHasher
	tokens   TokenIssuer
	events   EventPublisher
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(
	users UserRepository,
	cache Cache,
	hasher PasswordHasher,
	tokens TokenIssuer,
	events EventPublisher,
	cacheTTL time.Duration,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		cache:    cache,
		hasher:   hasher,
		tokens:   tokens,
		events:   events,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userCacheKey(email string) string {
	return "user:" + email
}

// Register создает пользователя, если email ещё не занят.
//
// Проверка существования и вставка не атомарны: проигравший гонку получает ошибку,
// совпадающую и с ErrUserAlreadyExists, и с storage.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, firstname, lastname, email, rawPassword string) (*models.User, error) {
	const op = "auth.Register"
	email = NormalizeEmail(email)

	_, err := s.lookup(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", op, ErrUserAlreadyExists)
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrPasswordTooLong, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Firstname:    firstname,
		Lastname:     lastname,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUserAlreadyExists, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("user_uid", user.UUID))
	s.remember(ctx, user)

	if s.events != nil {
		event := models.UserRegisteredEvent{
			UserUID:      user.UUID,
			Email:        user.Email,
			Firstname:    user.Firstname,
			Lastname:     user.Lastname,
			RegisteredAt: user.RegisteredAt,
		}
		if err := s.events.Publish(ctx, rabbitmq.RoutingKeyUserRegistered, event); err != nil {
			s.log.Warn("failed to publish user registered event",
				slog.String("user_uid", user.UUID), sl.Err(err))
		}
	}

	return user, nil
}

// Authenticate проверяет пару email/пароль и возвращает пользователя.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "auth.Authenticate"

	user, err := s.load(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.hasher.Verify(rawPassword, user.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPassword)
	}
	return user, nil
}

// Login аутентифицирует пользователя и выпускает токен с subject = email.
// ttl <= 0 означает срок жизни по умолчанию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string, ttl time.Duration) (string, error) {
	const op = "auth.Login"

	user, err := s.Authenticate(ctx, email, rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.tokens.Issue(user.Email, ttl)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// CurrentUser проверяет токен и возвращает пользователя, указанного в нём.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.CurrentUser"

	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.lookup(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// lookup ищет пользователя сначала в кеше, затем в хранилище.
// Ошибки кеша не фатальны. В кеше лежит только профиль, поэтому пользователь из кеша
// приходит без хэша пароля; там, где нужен хэш, используется load.
func (s *AuthService) lookup(ctx context.Context, email string) (*models.User, error) {
	if s.cache != nil {
		var cached models.UserProfile
		found, err := s.cache.Get(ctx, userCacheKey(email), &cached)
		if err != nil {
			s.log.Warn("failed to read user from cache", sl.Err(err))
		}
		if found {
			return cached.User(), nil
		}
	}
	return s.load(ctx, email)
}

// load читает пользователя из хранилища и обновляет кеш.
func (s *AuthService) load(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.remember(ctx, user)
	return user, nil
}

func (s *AuthService) remember(ctx context.Context, user *models.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userCacheKey(user.Email), user.Profile(), s.cacheTTL); err != nil {
		s.log.Warn("failed to cache user", sl.Err(err))
	}
}
