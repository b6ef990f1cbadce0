//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ngongtopro/love-story-chat/auth"
	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/ngongtopro/love-story-chat/runtime"
)

// Fallback messages when the service gives no detail.
const (
	LoginFailedMessage    = "Login failed"
	RegisterFailedMessage = "Registration failed"
)

type IAuthService interface {
	contract.SessionReader
	Start(ctx context.Context) domain.Session
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, input auth.RegisterRequest) error
	Logout(ctx context.Context)
}

// AuthService owns the session state machine:
// Loading -> Anonymous | Authenticated at startup, then Anonymous <-> Authenticated.
type AuthService struct {
	api         client.IAuthAPI
	credentials repositories.ICredentialRepository
	log         *slog.Logger

	mu      sync.RWMutex
	session domain.Session
	changes *runtime.Registry[domain.Session]
}

func NewAuthService(api client.IAuthAPI, credentials repositories.ICredentialRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		api:         api,
		credentials: credentials,
		log:         log,
		session:     domain.Session{State: domain.SessionLoading},
		changes:     runtime.NewRegistry[domain.Session](),
	}
}

func (s *AuthService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *AuthService) Subscribe() (<-chan domain.Session, func()) {
	return s.changes.Subscribe()
}

// Start resolves the Loading state from the stored credentials. A stored token
// the service no longer accepts is dropped; startup never fails.
func (s *AuthService) Start(ctx context.Context) domain.Session {
	if s.Current().State != domain.SessionLoading {
		return s.Current()
	}

	pair, err := s.credentials.Read(ctx)
	if err != nil {
		s.log.Error("Cannot read stored credentials", "error", err)
		return s.setSession(domain.Session{State: domain.SessionAnonymous})
	}
	if pair == nil || pair.AccessToken == "" {
		return s.setSession(domain.Session{State: domain.SessionAnonymous})
	}

	if err = s.api.Verify(ctx, pair.AccessToken); err != nil {
		s.log.Info("Stored token rejected, signing out", "error", err)
		if clearErr := s.credentials.Clear(ctx); clearErr != nil {
			s.log.Error("Cannot clear credentials", "error", clearErr)
		}
		return s.setSession(domain.Session{State: domain.SessionAnonymous})
	}

	return s.setSession(domain.Session{
		State:     domain.SessionAuthenticated,
		Principal: auth.PrincipalFromToken(pair.AccessToken, ""),
	})
}

// Login exchanges credentials for a token pair. On failure the session stays
// where it was and the returned *errors.Failure carries a displayable message.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if err := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); err != nil {
		return errors.NewFailure(err, LoginFailedMessage)
	}

	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.log.Info("Login rejected", "username", username, "error", err)
		return errors.NewFailure(err, LoginFailedMessage)
	}
	if err = s.credentials.Save(ctx, pair); err != nil {
		s.log.Error("Cannot persist credentials", "error", err)
		return errors.NewFailure(err, LoginFailedMessage)
	}

	s.setSession(domain.Session{
		State:     domain.SessionAuthenticated,
		Principal: auth.PrincipalFromToken(pair.AccessToken, username),
	})
	s.log.Info("Logged in", "username", username)
	return nil
}

// Register creates an account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, input auth.RegisterRequest) error {
	if err := auth.ValidateRegister(input); err != nil {
		return errors.NewFailure(err, RegisterFailedMessage)
	}
	err := s.api.Register(ctx, client.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		s.log.Info("Registration rejected", "username", input.Username, "error", err)
		return errors.NewFailure(err, RegisterFailedMessage)
	}
	return nil
}

// Logout is local and cannot fail: whatever happens to the store, the session
// ends up Anonymous. Calls already in flight are not cancelled.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.credentials.Clear(ctx); err != nil {
		s.log.Error("Cannot clear credentials on logout", "error", err)
	}
	s.setSession(domain.Session{State: domain.SessionAnonymous})
	s.log.Info("Logged out")
}

// Invalidate ends an authenticated session whose credentials were revoked
// elsewhere, typically by a failed token refresh. The store is left alone.
func (s *AuthService) Invalidate() {
	s.mu.Lock()
	if s.session.State != domain.SessionAuthenticated {
		s.mu.Unlock()
		return
	}
	s.session = domain.Session{State: domain.SessionAnonymous}
	s.mu.Unlock()

	s.changes.Publish(domain.Session{State: domain.SessionAnonymous})
	s.log.Info("Session expired, signed out")
}

func (s *AuthService) setSession(session domain.Session) domain.Session {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	s.changes.Publish(session)
	return session
}
