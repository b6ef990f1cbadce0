package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/auth"
	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/ngongtopro/love-story-chat/mocks"
	"github.com/ngongtopro/love-story-chat/observability"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Start(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should become anonymous without stored credentials", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		store := mocks.NewMockICredentialRepository(ctrl)
		store.EXPECT().Read(gomock.Any()).Return(nil, nil)
		api.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAuthService(api, store, log)
		req.Equal(domain.SessionLoading, svc.Current().State)

		req.Equal(domain.SessionAnonymous, svc.Start(ctx).State)
	})

	t.Run("should drop a token the service rejects", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		store := mocks.NewMockICredentialRepository(ctrl)
		store.EXPECT().Read(gomock.Any()).Return(&domain.CredentialPair{AccessToken: "expired", RefreshToken: "r"}, nil)
		api.EXPECT().Verify(gomock.Any(), "expired").Return(errors.FromStatus(401, "Token is invalid or expired"))
		store.EXPECT().Clear(gomock.Any()).Return(nil)

		svc := NewAuthService(api, store, log)

		req.Equal(domain.SessionAnonymous, svc.Start(ctx).State)
	})

	t.Run("should become anonymous when the store cannot be read", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockICredentialRepository(ctrl)
		store.EXPECT().Read(gomock.Any()).Return(nil, stderrors.New("disk gone"))

		svc := NewAuthService(mocks.NewMockIAuthAPI(ctrl), store, log)

		req.Equal(domain.SessionAnonymous, svc.Start(ctx).State)
	})

	t.Run("should run only once", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockICredentialRepository(ctrl)
		store.EXPECT().Read(gomock.Any()).Return(nil, nil).Times(1)

		svc := NewAuthService(mocks.NewMockIAuthAPI(ctrl), store, log)
		svc.Start(ctx)

		req.Equal(domain.SessionAnonymous, svc.Start(ctx).State)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should persist the pair and authenticate", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		store := repositories.NewMemoryCredentialRepository()
		pair := domain.CredentialPair{AccessToken: "a", RefreshToken: "r"}
		api.EXPECT().Login(gomock.Any(), "alice", "wonderland").Return(pair, nil)

		svc := NewAuthService(api, store, log)

		req.NoError(svc.Login(ctx, "alice", "wonderland"))
		req.True(svc.Current().IsAuthenticated())
		req.Equal("alice", svc.Current().Principal.Username)
		stored, err := store.Read(ctx)
		req.NoError(err)
		req.Equal(pair, *stored)
	})

	t.Run("should surface the service message and stay anonymous", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		store := mocks.NewMockICredentialRepository(ctrl)
		api.EXPECT().Login(gomock.Any(), "alice", "nope").
			Return(domain.CredentialPair{}, errors.FromStatus(401, "No active account found with the given credentials"))
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAuthService(api, store, log)
		err := svc.Login(ctx, "alice", "nope")

		var failure *errors.Failure
		req.ErrorAs(err, &failure)
		req.Equal("No active account found with the given credentials", failure.Message)
		req.ErrorIs(err, errors.ErrAuth)
		req.False(svc.Current().IsAuthenticated())
	})

	t.Run("should fall back to a generic message", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.CredentialPair{}, errors.Transport(stderrors.New("connection refused")))

		svc := NewAuthService(api, mocks.NewMockICredentialRepository(ctrl), log)

		req.EqualError(svc.Login(ctx, "alice", "wonderland"), LoginFailedMessage)
	})

	t.Run("should reject empty fields before calling the service", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		svc := NewAuthService(api, mocks.NewMockICredentialRepository(ctrl), log)

		err := svc.Login(ctx, "", "wonderland")

		req.ErrorIs(err, errors.ErrValidation)
		req.EqualError(err, "Username is required")
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	valid := auth.RegisterRequest{
		Username:        "carol",
		Email:           "carol@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}

	t.Run("should create the account without signing in", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		api.EXPECT().Register(gomock.Any(), client.RegisterRequest{
			Username: "carol", Email: "carol@example.com", Password: "longenough",
		}).Return(nil)

		svc := NewAuthService(api, mocks.NewMockICredentialRepository(ctrl), log)

		req.NoError(svc.Register(ctx, valid))
		req.Equal(domain.SessionLoading, svc.Current().State)
	})

	t.Run("should reject mismatched confirmation", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		api.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		input := valid
		input.ConfirmPassword = "different"
		err := NewAuthService(api, mocks.NewMockICredentialRepository(ctrl), log).Register(ctx, input)

		req.ErrorIs(err, errors.ErrPasswordMismatch)
		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should surface the service message", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		api := mocks.NewMockIAuthAPI(ctrl)
		api.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(errors.FromStatus(400, "A user with that username already exists."))

		err := NewAuthService(api, mocks.NewMockICredentialRepository(ctrl), log).Register(ctx, valid)

		req.EqualError(err, "A user with that username already exists.")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tests := []struct {
		name  string
		setup func(t *testing.T, svc *AuthService, api *mocks.MockIAuthAPI)
	}{
		{"from loading", func(*testing.T, *AuthService, *mocks.MockIAuthAPI) {}},
		{"from anonymous", func(_ *testing.T, svc *AuthService, _ *mocks.MockIAuthAPI) {
			svc.setSession(domain.Session{State: domain.SessionAnonymous})
		}},
		{"from authenticated", func(t *testing.T, svc *AuthService, api *mocks.MockIAuthAPI) {
			api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.CredentialPair{AccessToken: "a", RefreshToken: "r"}, nil)
			require.NoError(t, svc.Login(ctx, "alice", "wonderland"))
		}},
	}
	for _, tt := range tests {
		t.Run("should end anonymous with an empty store "+tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			api := mocks.NewMockIAuthAPI(ctrl)
			store := repositories.NewMemoryCredentialRepository()
			svc := NewAuthService(api, store, log)
			tt.setup(t, svc, api)

			svc.Logout(ctx)

			req.Equal(domain.SessionAnonymous, svc.Current().State)
			pair, err := store.Read(ctx)
			req.NoError(err)
			req.Nil(pair)
		})
	}

	t.Run("should end anonymous even if the store fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockICredentialRepository(ctrl)
		store.EXPECT().Clear(gomock.Any()).Return(stderrors.New("disk gone"))

		svc := NewAuthService(mocks.NewMockIAuthAPI(ctrl), store, log)
		svc.Logout(ctx)

		req.Equal(domain.SessionAnonymous, svc.Current().State)
	})
}

func TestAuthService_Subscribe(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	svc := NewAuthService(mocks.NewMockIAuthAPI(ctrl), repositories.NewMemoryCredentialRepository(), log)

	changes, cancel := svc.Subscribe()
	defer cancel()
	svc.Logout(context.Background())

	req.Equal(domain.SessionAnonymous, (<-changes).State)
}

func TestAuthService_Invalidate(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should only end an authenticated session", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		svc := NewAuthService(mocks.NewMockIAuthAPI(ctrl), mocks.NewMockICredentialRepository(ctrl), log)

		svc.Invalidate()
		req.Equal(domain.SessionLoading, svc.Current().State)

		svc.setSession(domain.Session{State: domain.SessionAuthenticated, Principal: &domain.Principal{Username: "alice"}})
		svc.Invalidate()
		req.Equal(domain.SessionAnonymous, svc.Current().State)
		req.Nil(svc.Current().Principal)
	})
}

func TestAuthService_FailedRefreshEndsTheSession(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.chat.Run(ctx) }()

	// Given bob's conversation is on screen
	f.router.Navigate(domain.ChatPath(f.bob))
	req.Eventually(func() bool {
		_, ok := f.chat.ActiveThread()
		return ok
	}, time.Second, 5*time.Millisecond)

	// When both tokens stop being accepted
	f.server.ExpireAccessTokens()
	f.server.RevokeRefreshTokens()
	_, err := f.chat.Threads(context.Background())

	// Then the client is signed out, not only redirected
	req.True(errors.IsUnauthorized(err))
	req.Equal(domain.SessionAnonymous, f.auth.Current().State)
	req.Equal(domain.LoginPath, f.router.Current())
	pair, readErr := f.store.Read(context.Background())
	req.NoError(readErr)
	req.Nil(pair)
	req.Eventually(func() bool {
		_, ok := f.chat.ActiveThread()
		return !ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	req.NoError(<-done)
}

func TestAuthService_LogoutDuringRefresh(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newChatFixture(t)
	f.server.ExpireAccessTokens()
	f.server.SetRefreshDelay(200 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := f.chat.Threads(ctx)
		done <- err
	}()
	req.Eventually(func() bool { return f.server.RefreshCalls() == 1 }, time.Second, 5*time.Millisecond)

	f.auth.Logout(ctx)
	err := <-done

	req.True(errors.IsUnauthorized(err))
	pair, readErr := f.store.Read(ctx)
	req.NoError(readErr)
	req.Nil(pair, "a refresh finishing after logout leaves the store empty")
	req.Equal(domain.SessionAnonymous, f.auth.Current().State)

	// A restart does not sign the user back in
	restarted := NewAuthService(client.NewAuthAPI(client.NewPipeline(f.server.URL, f.server.Client(), f.store,
		f.router, observability.NewClientMetrics(nil), logs.GetLoggerFromLevel(slog.LevelDebug))), f.store,
		logs.GetLoggerFromLevel(slog.LevelDebug))
	req.Equal(domain.SessionAnonymous, restarted.Start(ctx).State)
}
