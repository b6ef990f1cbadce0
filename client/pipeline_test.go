package client_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/ngongtopro/love-story-chat/internal/apitest"
	"github.com/ngongtopro/love-story-chat/mocks"
	"github.com/ngongtopro/love-story-chat/observability"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	server   *apitest.Server
	pipeline *client.Pipeline
	store   *repositories.MemoryCredentialRepository
	router  *client.Router
	metrics *observability.ClientMetrics
	chat    *client.ChatAPI
	auth    *client.AuthAPI
	aliceID int64
	bobID   int64
}

// newFixture starts the fake service with alice signed in and bob as her only contact.
func newFixture(t *testing.T, navigator ...contract.Navigator) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := apitest.New()
	t.Cleanup(server.Close)

	f := &fixture{
		server:  server,
		store:   repositories.NewMemoryCredentialRepository(),
		router:  client.NewRouter("/chat/2", log),
		metrics: observability.NewClientMetrics(nil),
	}
	f.aliceID = server.AddUser("alice", "wonderland")
	f.bobID = server.AddUser("bob", "builder1")
	access, refresh := server.IssueTokens("alice")
	require.NoError(t, f.store.Save(context.Background(), domain.CredentialPair{AccessToken: access, RefreshToken: refresh}))

	var nav contract.Navigator = f.router
	if len(navigator) > 0 {
		nav = navigator[0]
	}
	f.pipeline = client.NewPipeline(server.URL, server.Client(), f.store, nav, f.metrics, log)
	f.auth = client.NewAuthAPI(f.pipeline)
	f.chat = client.NewChatAPI(f.pipeline, staticSession{userID: domain.ParticipantID(f.aliceID)})
	return f
}

type staticSession struct {
	userID domain.ParticipantID
}

func (s staticSession) Current() domain.Session {
	return domain.Session{
		State:     domain.SessionAuthenticated,
		Principal: &domain.Principal{UserID: s.userID},
	}
}

func (s staticSession) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session)
	return ch, func() {}
}

func TestPipeline_AttachesAccessToken(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	participants, err := f.chat.ListParticipants(context.Background())

	req.NoError(err)
	req.Len(participants, 1)
	req.Equal("bob", participants[0].Username)
	req.Equal(int64(1), f.server.Hits("users"))
	req.Zero(f.server.RefreshCalls())
}

func TestPipeline_PublicCallsNeverRefresh(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.server.ExpireAccessTokens()

	// When
	_, err := f.auth.Login(context.Background(), "alice", "wrong-password")

	// Then
	req.ErrorIs(err, errors.ErrAuth)
	req.Equal("No active account found with the given credentials", errors.UserMessage(err, "Login failed"))
	req.Zero(f.server.RefreshCalls())
	pair, err := f.store.Read(context.Background())
	req.NoError(err)
	req.NotNil(pair)
	req.Equal("/chat/2", f.router.Current())
}

func TestPipeline_RecoversFromExpiredAccessToken(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	before, _ := f.store.Read(context.Background())
	f.server.ExpireAccessTokens()

	participants, err := f.chat.ListParticipants(context.Background())

	req.NoError(err)
	req.Len(participants, 1)
	req.Equal(int64(2), f.server.Hits("users"))
	req.Equal(int64(1), f.server.RefreshCalls())

	after, err := f.store.Read(context.Background())
	req.NoError(err)
	req.NotEqual(before.AccessToken, after.AccessToken)
	req.Equal(before.RefreshToken, after.RefreshToken)
	req.Equal(float64(1), f.metrics.RefreshCount(observability.RefreshSucceeded))
	req.Equal(float64(1), f.metrics.RetryCount())
}

func TestPipeline_RetriesOnlyOnce(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.server.ExpireAccessTokens()
	f.server.SetRefreshIssuesInvalidTokens(true)

	_, err := f.chat.ListParticipants(context.Background())

	req.Error(err)
	req.True(errors.IsUnauthorized(err))
	req.Equal(int64(1), f.server.RefreshCalls(), "a second 401 must not start another refresh")
	req.Equal(int64(2), f.server.Hits("users"), "original request plus one retry")
	req.Equal(float64(1), f.metrics.RetryCount())
}

func TestPipeline_ConcurrentFailuresShareOneRefresh(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.server.ExpireAccessTokens()
	f.server.SetRefreshDelay(100 * time.Millisecond)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.chat.ListParticipants(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		req.NoError(err)
	}
	req.Equal(int64(1), f.server.RefreshCalls())
	req.Equal(float64(1), f.metrics.RefreshCount(observability.RefreshSucceeded))
	req.LessOrEqual(f.metrics.RefreshCount(observability.RefreshShared), float64(callers-1),
		"the caller running the refresh is not counted as sharing it")
}

func TestPipeline_SingleRefreshIsNotShared(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.server.ExpireAccessTokens()

	_, err := f.chat.ListParticipants(context.Background())

	req.NoError(err)
	req.Zero(f.metrics.RefreshCount(observability.RefreshShared))
}

func TestPipeline_RefreshFailure(t *testing.T) {
	t.Run("should clear credentials and redirect to login", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.server.ExpireAccessTokens()
		f.server.RevokeRefreshTokens()

		_, err := f.chat.ListThreads(context.Background())

		req.True(errors.IsUnauthorized(err), "the original 401 is returned")
		req.Equal("Given token not valid for any token type", errors.UserMessage(err, ""))
		pair, readErr := f.store.Read(context.Background())
		req.NoError(readErr)
		req.Nil(pair)
		req.Equal(domain.LoginPath, f.router.Current())
		req.Equal(float64(1), f.metrics.RefreshCount(observability.RefreshFailed))
		req.Zero(f.metrics.RetryCount())
	})

	t.Run("should report revoked credentials before redirecting", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.server.ExpireAccessTokens()
		f.server.RevokeRefreshTokens()

		var revoked int
		var addressAtRevoke string
		var storedAtRevoke *domain.CredentialPair
		f.pipeline.OnCredentialsRevoked(func() {
			revoked++
			addressAtRevoke = f.router.Current()
			storedAtRevoke, _ = f.store.Read(context.Background())
		})

		_, err := f.chat.ListThreads(context.Background())

		req.True(errors.IsUnauthorized(err))
		req.Equal(1, revoked)
		req.Nil(storedAtRevoke)
		req.Equal("/chat/2", addressAtRevoke)
		req.Equal(domain.LoginPath, f.router.Current())
	})

	t.Run("should not redirect when signed out during the refresh", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.server.ExpireAccessTokens()
		f.server.SetRefreshDelay(200 * time.Millisecond)
		f.pipeline.OnCredentialsRevoked(func() { t.Error("credentials were not revoked") })

		done := make(chan error, 1)
		go func() {
			_, err := f.chat.ListThreads(context.Background())
			done <- err
		}()
		req.Eventually(func() bool { return f.server.RefreshCalls() == 1 }, time.Second, 5*time.Millisecond)
		req.NoError(f.store.Clear(context.Background()))

		err := <-done

		req.True(errors.IsUnauthorized(err))
		pair, readErr := f.store.Read(context.Background())
		req.NoError(readErr)
		req.Nil(pair, "the refreshed token is not written back")
		req.Equal("/chat/2", f.router.Current())
		req.Zero(f.metrics.RefreshCount(observability.RefreshFailed))
	})

	t.Run("should redirect once for concurrent failures", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		navigator := mocks.NewMockNavigator(ctrl)
		navigator.EXPECT().RedirectToLogin().Times(1)

		f := newFixture(t, navigator)
		f.server.ExpireAccessTokens()
		f.server.RevokeRefreshTokens()
		f.server.SetRefreshDelay(100 * time.Millisecond)

		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.chat.ListParticipants(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			req.True(errors.IsUnauthorized(err))
		}
		req.Equal(int64(1), f.server.RefreshCalls())
	})
}

func TestPipeline_MissingRefreshTokenPropagatesOriginalFailure(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	pair, _ := f.store.Read(context.Background())
	req.NoError(f.store.Save(context.Background(), domain.CredentialPair{AccessToken: pair.AccessToken}))
	f.server.ExpireAccessTokens()

	_, err := f.chat.ListParticipants(context.Background())

	req.True(errors.IsUnauthorized(err))
	req.Zero(f.server.RefreshCalls())
	req.Equal("/chat/2", f.router.Current())
}

func TestPipeline_ClassifiesOtherFailures(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.chat.ListMessages(context.Background(), domain.ThreadID(999))
	req.ErrorIs(err, errors.ErrNotFound)
	req.False(errors.IsUnauthorized(err))

	_, err = f.chat.CreateThread(context.Background(), domain.ParticipantID(f.aliceID))
	req.ErrorIs(err, errors.ErrTransport)
	req.Equal("Cannot chat with yourself", errors.UserMessage(err, ""))
	req.Zero(f.server.RefreshCalls())
}

func TestPipeline_TransportFailure(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := apitest.New()
	url := server.URL
	server.Close()

	pipeline := client.NewPipeline(url, nil, repositories.NewMemoryCredentialRepository(),
		client.NewRouter("/", log), observability.NewClientMetrics(nil), log)
	_, err := pipeline.Do(context.Background(), client.Call{Method: "GET", Path: "/users/"})

	req.ErrorIs(err, errors.ErrTransport)
	req.Equal("Could not load users", errors.UserMessage(err, "Could not load users"))
}
