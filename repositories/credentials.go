//go:generate go run go.uber.org/mock/mockgen -source=credentials.go -destination=../mocks/mock_credentials_repository.go -package=mocks
package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
)

// ICredentialRepository is the durable slot holding the current credential pair.
// Read returns nil, nil when no pair is stored. SaveAccessToken fails with
// errors.ErrNoCredentials once the pair has been cleared.
type ICredentialRepository interface {
	Save(ctx context.Context, pair domain.CredentialPair) error
	SaveAccessToken(ctx context.Context, accessToken string) error
	Read(ctx context.Context) (*domain.CredentialPair, error)
	Clear(ctx context.Context) error
}

const (
	accessTokenKey  = "credentials:access"
	refreshTokenKey = "credentials:refresh"
)

type CredentialRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewCredentialRepository(db *badger.DB, log *slog.Logger) ICredentialRepository {
	return &CredentialRepository{db: db, log: log}
}

// Save replaces both slots in a single transaction so readers never observe
// an access token paired with a stale refresh token.
func (c *CredentialRepository) Save(_ context.Context, pair domain.CredentialPair) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(accessTokenKey), []byte(pair.AccessToken)); err != nil {
			return err
		}
		return txn.Set([]byte(refreshTokenKey), []byte(pair.RefreshToken))
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (c *CredentialRepository) SaveAccessToken(_ context.Context, accessToken string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(refreshTokenKey)); err != nil {
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrNoCredentials
			}
			return err
		}
		return txn.Set([]byte(accessTokenKey), []byte(accessToken))
	})
	if stderrors.Is(err, errors.ErrNoCredentials) {
		return err
	}
	if err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	return nil
}

func (c *CredentialRepository) Read(_ context.Context) (*domain.CredentialPair, error) {
	var pair domain.CredentialPair
	err := c.db.View(func(txn *badger.Txn) error {
		access, err := readValue(txn, accessTokenKey)
		if err != nil {
			return err
		}
		refresh, err := readValue(txn, refreshTokenKey)
		if err != nil && !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		pair = domain.CredentialPair{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return &pair, nil
}

func (c *CredentialRepository) Clear(_ context.Context) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(accessTokenKey)); err != nil {
			return err
		}
		return txn.Delete([]byte(refreshTokenKey))
	})
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	c.log.Debug("Credentials cleared")
	return nil
}

func readValue(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(value), nil
}
