// Package api wraps all traffic to the CRM backend: bearer attachment,
// envelope unwrapping and the refresh-once protocol on 401s.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/session"
)

const (
	genericErrorMessage   = "An error occurred"
	sessionExpiredMessage = "Session expired. Please login again."

	maxBodyBytes = 32 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Requests per second against the backend; 0 disables limiting.
	RateLimit        float64
	Session          *session.Session
	Notifier         notify.Notifier
	OnSessionExpired func()
}

type Client struct {
	baseURL          string
	hc               *http.Client
	session          *session.Session
	limiter          *rate.Limiter
	notifier         notify.Notifier
	onSessionExpired func()
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		hc:               &http.Client{Timeout: timeout},
		session:          cfg.Session,
		limiter:          limiter,
		notifier:         notifier,
		onSessionExpired: cfg.OnSessionExpired,
	}
}

// envelope is the uniform wrapper the backend places around JSON responses.
type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// request is a logical request. The body is kept unserialized so a retried
// attempt re-marshals it instead of reusing a spent reader.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, request{method: http.MethodPost, path: path, body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, request{method: http.MethodPatch, path: path, body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// call runs the request through the retry protocol and unwraps the envelope
// into out.
func (c *Client) call(ctx context.Context, req request, out any) error {
	resp, body, err := c.do(ctx, req, 0)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return c.failure(resp.StatusCode, body)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "malformed response envelope"}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode payload: %v", err)}
	}
	return nil
}

// do sends one attempt. attempt is immutable per invocation: 0 means the
// request may still be refreshed-and-retried, 1 means it already was.
func (c *Client) do(ctx context.Context, req request, attempt int) (*http.Response, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, &Error{Kind: KindNetwork, Message: err.Error()}
		}
	}

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		apiErr := &Error{Kind: KindNetwork, Message: genericErrorMessage}
		log.Printf("[api][do] %s %s: %v", req.method, req.path, err)
		c.notifier.Push(notify.LevelError, genericErrorMessage)
		return nil, nil, apiErr
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
	if err != nil {
		return nil, nil, &Error{Kind: KindNetwork, Message: genericErrorMessage}
	}

	if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
		if retryErr := c.refreshSession(ctx); retryErr != nil {
			return nil, nil, retryErr
		}
		return c.do(ctx, req, attempt+1)
	}
	return resp, body, nil
}

func (c *Client) build(ctx context.Context, req request) (*http.Request, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	var bodyReader io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.AccessToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// refreshSession runs the credential exchange. A non-nil return means the
// session is gone and the caller must not retry.
func (c *Client) refreshSession(ctx context.Context) error {
	if c.session == nil {
		return &Error{Kind: KindAuth, StatusCode: http.StatusUnauthorized, Message: sessionExpiredMessage}
	}
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.expireSession()
		return &Error{Kind: KindAuth, StatusCode: http.StatusUnauthorized, Message: sessionExpiredMessage}
	}

	pair, err := c.refreshExchange(ctx, refreshToken)
	if err != nil {
		log.Printf("[api][refresh] exchange failed: %v", err)
		c.expireSession()
		// propagate the refresh failure, not the original 401
		return err
	}
	if err := c.session.ApplyRefresh(pair.AccessToken, pair.RefreshToken); err != nil {
		log.Printf("[api][refresh] persist credentials: %v", err)
	}
	return nil
}

// refreshExchange posts to /auth/refresh outside the interceptor path so a
// failing exchange can never recurse into another refresh.
func (c *Client) refreshExchange(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	b, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, &Error{Kind: KindAuth, Message: err.Error()}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(b))
	if err != nil {
		return nil, &Error{Kind: KindAuth, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: genericErrorMessage}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: genericErrorMessage}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{Kind: KindAuth, StatusCode: resp.StatusCode, Message: envelopeMessage(body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "malformed refresh response"}
	}
	var pair models.RefreshResponse
	if err := json.Unmarshal(env.Data, &pair); err != nil {
		return nil, &Error{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "malformed refresh response"}
	}
	if pair.AccessToken == "" {
		return nil, &Error{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "refresh returned no access token"}
	}
	return &pair, nil
}

// failure classifies a non-2xx response and surfaces one notification for
// everything except auth failures (those either tore the session down
// already or are the retried attempt's verdict).
func (c *Client) failure(status int, body []byte) error {
	apiErr := &Error{Kind: kindFromStatus(status), StatusCode: status, Message: envelopeMessage(body)}
	if apiErr.Kind != KindAuth {
		c.notifier.Push(notify.LevelError, apiErr.Message)
	}
	return apiErr
}

// expireSession is the unrecoverable-auth path: clear everything, tell the
// operator, send them back to the login boundary.
func (c *Client) expireSession() {
	c.session.Logout()
	c.notifier.Push(notify.LevelError, sessionExpiredMessage)
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func envelopeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return genericErrorMessage
}
