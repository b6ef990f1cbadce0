package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/internal/apitest"
	"github.com/ngongtopro/love-story-chat/observability"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/ngongtopro/love-story-chat/services"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	fake   *apitest.Server
}

// SetupSuite loads the environment configuration and, when no service is
// configured, starts the in-process fake with both accounts.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.APIURL == "" {
		s.fake = apitest.New()
		s.fake.AddUser(s.Config.Username, s.Config.Password)
		s.fake.AddUser(s.Config.PeerUsername, "peer-password")
		s.Config.APIURL = s.fake.URL
	}
}

func (s *BaseHTTPSuite) TearDownSuite() {
	if s.fake != nil {
		s.fake.Close()
	}
}

// Client is one signed-out client instance with its own credential store and address.
type Client struct {
	Router  *client.Router
	Store   repositories.ICredentialRepository
	Metrics *observability.ClientMetrics
	Auth    *services.AuthService
	Chat    *services.ChatService
}

// NewClient wires a full client whose HTTP traffic is logged in the test output.
func (s *BaseHTTPSuite) NewClient() *Client {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: &loggingTransport{suite: s, next: http.DefaultTransport},
	}

	c := &Client{
		Router:  client.NewRouter("/", log),
		Store:   repositories.NewMemoryCredentialRepository(),
		Metrics: observability.NewClientMetrics(nil),
	}
	pipeline := client.NewPipeline(s.Config.APIURL, httpClient, c.Store, c.Router, c.Metrics, log)
	c.Auth = services.NewAuthService(client.NewAuthAPI(pipeline), c.Store, log)
	pipeline.OnCredentialsRevoked(c.Auth.Invalidate)
	c.Chat = services.NewChatService(client.NewChatAPI(pipeline, c.Auth), c.Router, c.Auth, log)
	return c
}

// Step prints a colorized header and runs fn with a bounded context.
func (s *BaseHTTPSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	fn(ctx)
}

type loggingTransport struct {
	suite *BaseHTTPSuite
	next  http.RoundTripper
}

func (l *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.next.RoundTrip(r)
	if err != nil {
		l.suite.T().Logf("HTTP %s %s failed in %v: %v", r.Method, r.URL.Path, time.Since(start), err)
		return nil, err
	}
	l.suite.T().Logf("HTTP %s %s [%d] in %v", r.Method, r.URL.Path, resp.StatusCode, time.Since(start))

	if l.suite.Config.DebugBodies {
		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		l.suite.T().Logf("RESPONSE: %s", body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}
	return resp, nil
}
