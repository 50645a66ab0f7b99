// Package config предоставляет структуры и функции для загрузки и проверки конфигурации.
//
// Конфигурация читается один раз при старте: из YAML-файла (если задан CONFIG_PATH)
// и из переменных окружения, которые имеют приоритет над файлом.
package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку.
var ErrInvalidConfig = errors.New("invalid configuration")

// Окружения, влияющие на формат логов.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Hashing                 `yaml:"password"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для выпуска jwt-токенов
type JWTToken struct {
	JWTSecretKey string     `yaml:"secret_key" env:"SECRET_KEY" env-required:"true"`
	Algorithm    string     `yaml:"algorithm" env:"ALGORITHM" env-required:"true"`
	TokenTTL     Expiration `yaml:"token_ttl" env:"EXPIRATION" env-required:"true"`
}

// Hashing структура для настройки хеширования паролей
type Hashing struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш пользователей.
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"3s"`
	UserCacheTTL time.Duration `yaml:"user_cache_ttl" env:"REDIS_USER_CACHE_TTL" env-default:"10m"`
}

// RabbitMQ структура для публикации событий.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"users"`
	Retries    int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// maxMinutes наибольшее число минут, которое помещается в time.Duration.
const maxMinutes = math.MaxInt64 / int64(time.Minute)

// Expiration задает срок жизни токена. Принимает целое число минут (как EXPIRATION=30)
// или длительность в формате Go (30m, 1h).
type Expiration time.Duration

// SetValue реализует cleanenv.Setter.
func (e *Expiration) SetValue(s string) error {
	s = strings.TrimSpace(s)
	if minutes, err := strconv.ParseInt(s, 10, 64); err == nil {
		if minutes > maxMinutes || minutes < -maxMinutes {
			return fmt.Errorf("%w: expiration %q is out of range", ErrInvalidConfig, s)
		}
		*e = Expiration(time.Duration(minutes) * time.Minute)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("expiration %q: expected minutes or duration", s)
	}
	*e = Expiration(d)
	return nil
}

// UnmarshalText позволяет задавать значение в YAML.
func (e *Expiration) UnmarshalText(text []byte) error {
	return e.SetValue(string(text))
}

// Duration возвращает значение как time.Duration.
func (e Expiration) Duration() time.Duration {
	return time.Duration(e)
}

// MustLoad загружает конфиг и завершает процесс при любой ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

// Load читает конфиг из CONFIG_PATH (если задан) и окружения и проверяет его.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет значения, которые cleanenv проверить не может.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: unknown env %q", ErrInvalidConfig, c.Env)
	}
	if c.JWTSecretKey == "" {
		return fmt.Errorf("%w: secret key is empty", ErrInvalidConfig)
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("%w: unsupported signing algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
	if c.TokenTTL.Duration() <= 0 {
		return fmt.Errorf("%w: token expiration must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  Algorithm: %s\n"+
			"  TokenTTL: %s\n"+
			"Password:\n"+
			"  BcryptCost: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  UserCacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Algorithm,
		c.TokenTTL.Duration(),
		c.BcryptCost,
		c.AddressRedis,
		c.DB,
		c.UserCacheTTL,
		c.URL != "",
		c.Exchange,
	)
}
