package repositories

import (
	"context"
	"sync"

	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
)

// MemoryCredentialRepository keeps the pair for the lifetime of the process only.
type MemoryCredentialRepository struct {
	mu   sync.RWMutex
	pair *domain.CredentialPair
}

func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{}
}

func (m *MemoryCredentialRepository) Save(_ context.Context, pair domain.CredentialPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = &pair
	return nil
}

func (m *MemoryCredentialRepository) SaveAccessToken(_ context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return errors.ErrNoCredentials
	}
	m.pair.AccessToken = accessToken
	return nil
}

func (m *MemoryCredentialRepository) Read(_ context.Context) (*domain.CredentialPair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pair == nil {
		return nil, nil
	}
	pair := *m.pair
	return &pair, nil
}

func (m *MemoryCredentialRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = nil
	return nil
}
