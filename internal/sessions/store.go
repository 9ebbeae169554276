// Package sessions реализует серверное хранилище админских сессий.
//
// Store — явная зависимость сервиса аутентификации: сессия создаётся при входе,
// читается на каждом защищённом запросе и уничтожается при выходе или по таймауту.
// Токен — непрозрачный криптослучайный идентификатор, клиент получает его в cookie.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/models"
)

// ErrSessionNotFound — сессия с таким токеном не существует или уже уничтожена.
var ErrSessionNotFound = errors.New("session not found")

// Store описывает хранилище сессий администраторов.
type Store interface {
	// Create сохраняет сессию и возвращает новый токен.
	Create(ctx context.Context, sess models.AdminSession) (string, error)
	// Get возвращает сессию по токену или ErrSessionNotFound.
	Get(ctx context.Context, token string) (*models.AdminSession, error)
	// Destroy уничтожает сессию. Уничтожение отсутствующей сессии — не ошибка.
	Destroy(ctx context.Context, token string) error
}

// RedisStore хранит сессии в Redis в виде JSON со временем жизни,
// равным таймауту простоя сессии.
type RedisStore struct {
	db  *redis.Client
	ttl time.Duration
}

// NewRedisStore подключается к Redis и возвращает хранилище сессий.
func NewRedisStore(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*RedisStore, error) {
	const op = "sessions.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db, ttl: ttl}, nil
}

func sessionKey(token string) string {
	return "admin_session:" + token
}

// Create сохраняет сессию под свежим uuid-токеном.
func (s *RedisStore) Create(ctx context.Context, sess models.AdminSession) (string, error) {
	const op = "sessions.Create"
	token := uuid.NewString()

	jsonData, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, sessionKey(token), jsonData, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get читает сессию по токену.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.AdminSession, error) {
	const op = "sessions.Get"
	val, err := s.db.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sess models.AdminSession
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Destroy удаляет сессию по токену.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	const op = "sessions.Destroy"
	if err := s.db.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
