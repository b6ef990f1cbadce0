// Package client talks to the chat service over HTTP.
// Every call goes through a Pipeline which attaches the access token and
// recovers from an expired token with a single refresh-and-retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/ngongtopro/love-story-chat/observability"
	"github.com/ngongtopro/love-story-chat/repositories"
	"golang.org/x/sync/singleflight"
)

// maxAttempts bounds how many times one call reaches the service: the original
// request plus a single retry after a refresh.
const maxAttempts = 2

const refreshPath = "/api/auth/token/refresh/"

// Call describes one request to the service. It is never mutated once built;
// the attempt number travels next to it.
type Call struct {
	Method string
	Path   string
	Body   any
	// Public calls never carry a bearer token and never trigger a refresh.
	Public bool
}

// Response is a successful (2xx) answer from the service.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Transport(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

type Pipeline struct {
	baseURL     string
	httpClient  *http.Client
	credentials repositories.ICredentialRepository
	navigator   contract.Navigator
	metrics     *observability.ClientMetrics
	log         *slog.Logger
	refreshes   singleflight.Group
	onRevoked   func()
}

func NewPipeline(baseURL string, httpClient *http.Client,
	credentials repositories.ICredentialRepository, navigator contract.Navigator,
	metrics *observability.ClientMetrics, log *slog.Logger,
) *Pipeline {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Pipeline{
		baseURL:     baseURL,
		httpClient:  httpClient,
		credentials: credentials,
		navigator:   navigator,
		metrics:     metrics,
		log:         log,
	}
}

// OnCredentialsRevoked registers fn to run when a failed refresh has dropped
// the stored pair, before the redirect to login. It must be set before the
// first call.
func (p *Pipeline) OnCredentialsRevoked(fn func()) {
	p.onRevoked = fn
}

// Do sends call and returns its 2xx response. A 401 on a protected call is
// retried once after refreshing the access token.
func (p *Pipeline) Do(ctx context.Context, call Call) (*Response, error) {
	return p.do(ctx, call, 0)
}

func (p *Pipeline) do(ctx context.Context, call Call, attempt int) (*Response, error) {
	var accessToken string
	if !call.Public {
		pair, err := p.credentials.Read(ctx)
		if err != nil {
			return nil, errors.Transport(err)
		}
		if pair != nil {
			accessToken = pair.AccessToken
		}
	}

	resp, err := p.send(ctx, call, accessToken)
	if err == nil || call.Public || !errors.IsUnauthorized(err) {
		return resp, err
	}
	if attempt+1 >= maxAttempts {
		p.log.Debug("Authorization failed after retry", "path", call.Path)
		return nil, err
	}

	if refreshErr := p.refresh(ctx, accessToken); refreshErr != nil {
		p.log.Debug("Token refresh did not recover the call", "path", call.Path, "error", refreshErr)
		return nil, err
	}
	p.metrics.ObserveRetry()
	return p.do(ctx, call, attempt+1)
}

// refresh obtains a new access token, coalescing concurrent callers holding the
// same refresh token into one request. staleAccess is the token the failed call
// was sent with; when the store already holds another one, a refresh finished
// in between and the caller can simply retry.
func (p *Pipeline) refresh(ctx context.Context, staleAccess string) error {
	pair, err := p.credentials.Read(ctx)
	if err != nil {
		return err
	}
	if pair == nil || pair.RefreshToken == "" {
		return errors.ErrMissingRefreshToken
	}

	// The flight outlives the caller that started it; waiters must not inherit its cancellation.
	flightCtx := context.WithoutCancel(ctx)
	leader := false
	_, err, shared := p.refreshes.Do(pair.RefreshToken, func() (any, error) {
		leader = true
		// Re-read inside the flight: a previous flight for this refresh token may
		// have completed between our read above and this call.
		current, err := p.credentials.Read(flightCtx)
		if err != nil {
			return nil, err
		}
		if current == nil || current.RefreshToken == "" {
			return nil, errors.ErrMissingRefreshToken
		}
		if current.AccessToken != staleAccess {
			return nil, nil
		}
		return nil, p.exchangeRefreshToken(flightCtx, current.RefreshToken)
	})
	if shared && !leader {
		p.metrics.ObserveRefresh(observability.RefreshShared)
	}
	return err
}

type refreshResponse struct {
	Access string `json:"access"`
}

// exchangeRefreshToken runs once per flight. On failure the pair is dropped and
// the client is sent back to the login surface.
func (p *Pipeline) exchangeRefreshToken(ctx context.Context, refreshToken string) error {
	err := func() error {
		resp, err := p.send(ctx, Call{
			Method: http.MethodPost,
			Path:   refreshPath,
			Body:   map[string]string{"refresh": refreshToken},
			Public: true,
		}, "")
		if err != nil {
			return err
		}
		var body refreshResponse
		if err = resp.Decode(&body); err != nil {
			return err
		}
		if body.Access == "" {
			return errors.FromStatus(resp.Status, "refresh response carries no access token")
		}
		return p.credentials.SaveAccessToken(ctx, body.Access)
	}()
	if err == nil {
		p.metrics.ObserveRefresh(observability.RefreshSucceeded)
		p.log.Debug("Access token refreshed")
		return nil
	}

	if stderrors.Is(err, errors.ErrNoCredentials) {
		// Signed out while the refresh was in flight: the new token is dropped.
		p.log.Debug("Credentials cleared during refresh, discarding access token")
		return err
	}

	p.metrics.ObserveRefresh(observability.RefreshFailed)
	p.log.Info("Token refresh failed, redirecting to login", "error", err)
	if clearErr := p.credentials.Clear(ctx); clearErr != nil {
		p.log.Error("Failed to clear credentials", "error", clearErr)
	}
	if p.onRevoked != nil {
		p.onRevoked()
	}
	p.navigator.RedirectToLogin()
	return err
}

// send performs a single round trip. Non-2xx answers come back as *errors.RemoteError.
func (p *Pipeline) send(ctx context.Context, call Call, accessToken string) (*Response, error) {
	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, errors.Transport(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, call.Method, p.baseURL+call.Path, body)
	if err != nil {
		return nil, errors.Transport(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.metrics.ObserveRequest(call.Method, 0)
		return nil, errors.Transport(err)
	}
	defer func() { _ = httpResp.Body.Close() }()
	p.metrics.ObserveRequest(call.Method, httpResp.StatusCode)

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Transport(fmt.Errorf("read response: %w", err))
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, errors.FromStatus(httpResp.StatusCode, serviceMessage(payload))
	}
	return &Response{Status: httpResp.StatusCode, Body: payload}, nil
}

// serviceMessage extracts the human-readable message of an error payload.
func serviceMessage(payload []byte) string {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "error", "message"} {
		if msg, ok := body[key].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}
