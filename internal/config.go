package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	APIBaseURL        string        `env:"API_BASE_URL,default=http://localhost:8000"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	CredentialBackend string        `env:"CREDENTIAL_BACKEND,default=badger"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,default=.chatctl"`
	RedisAddr         string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisKeyPrefix    string        `env:"REDIS_KEY_PREFIX,default=love-story-chat:"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT,default=10s"`
	DebugPort         int           `env:"DEBUG_PORT,default=0"`
}

// BaseURL returns the service address without its trailing slash; every
// endpoint path starts with one.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.APIBaseURL, "/")
}

func (c Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout}
}

// OpenCredentialStore builds the store selected by CREDENTIAL_BACKEND. The
// returned close function releases the underlying database or connection.
func OpenCredentialStore(ctx context.Context, cfg Config, log *slog.Logger) (repositories.ICredentialRepository, func() error, error) {
	switch strings.ToLower(cfg.CredentialBackend) {
	case BackendBadger:
		db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).WithLoggingLevel(badger.ERROR))
		if err != nil {
			return nil, nil, fmt.Errorf("open badger at %s: %w", cfg.BadgerFilepath, err)
		}
		return repositories.NewCredentialRepository(db, log), db.Close, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return repositories.NewRedisCredentialRepository(client, cfg.RedisKeyPrefix, log), client.Close, nil
	case BackendMemory:
		return repositories.NewMemoryCredentialRepository(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown CREDENTIAL_BACKEND %q (want badger, redis or memory)", cfg.CredentialBackend)
	}
}
