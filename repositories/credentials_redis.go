package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCredentialRepository stores the pair under <prefix>access and <prefix>refresh.
type RedisCredentialRepository struct {
	client *redis.Client
	prefix string
	log    *slog.Logger
}

func NewRedisCredentialRepository(client *redis.Client, prefix string, log *slog.Logger) ICredentialRepository {
	return &RedisCredentialRepository{client: client, prefix: prefix, log: log}
}

func (r *RedisCredentialRepository) accessKey() string  { return r.prefix + "access" }
func (r *RedisCredentialRepository) refreshKey() string { return r.prefix + "refresh" }

func (r *RedisCredentialRepository) Save(ctx context.Context, pair domain.CredentialPair) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.accessKey(), pair.AccessToken, 0)
		pipe.Set(ctx, r.refreshKey(), pair.RefreshToken, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save credentials: %w", err)
	}
	return nil
}

// SaveAccessToken only overwrites an existing slot (SET XX). Clear removes
// both keys at once, so a missing access key means the pair is gone.
func (r *RedisCredentialRepository) SaveAccessToken(ctx context.Context, accessToken string) error {
	err := r.client.SetArgs(ctx, r.accessKey(), accessToken, redis.SetArgs{Mode: "XX"}).Err()
	if stderrors.Is(err, redis.Nil) {
		return errors.ErrNoCredentials
	}
	if err != nil {
		return fmt.Errorf("redis save access token: %w", err)
	}
	return nil
}

func (r *RedisCredentialRepository) Read(ctx context.Context) (*domain.CredentialPair, error) {
	values, err := r.client.MGet(ctx, r.accessKey(), r.refreshKey()).Result()
	if err != nil && !stderrors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis read credentials: %w", err)
	}
	if len(values) != 2 || values[0] == nil {
		return nil, nil
	}
	access, _ := values[0].(string)
	refresh, _ := values[1].(string)
	return &domain.CredentialPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (r *RedisCredentialRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.accessKey(), r.refreshKey()).Err(); err != nil {
		return fmt.Errorf("redis clear credentials: %w", err)
	}
	r.log.Debug("Credentials cleared", "backend", "redis")
	return nil
}
