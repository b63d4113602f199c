// Package client is the HTTP boundary to the hue-are-you service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"hueareyou/internal/api"
	"hueareyou/internal/models"
)

// DefaultTimeout bounds a single request when no deadline is set by the caller
const DefaultTimeout = 15 * time.Second

// Client issues JSON requests against a base URL
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for an absolute http(s) base URL. A trailing slash is added when missing.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved base URL
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var resp api.SessionPayload
	req := api.LoginRequest{Name: creds.Name, Password: creds.Password}
	if err := c.do(ctx, http.MethodPost, api.PathLogin, req, "", &resp); err != nil {
		return models.Session{}, err
	}
	return toSession(resp, creds.Name)
}

// SignUp registers an account and returns its first session
func (c *Client) SignUp(ctx context.Context, payload models.SignUpRequest) (models.Session, error) {
	var resp api.SessionPayload
	req := api.SignUpRequest{Name: payload.Name, Email: payload.Email, Password: payload.Password}
	if err := c.do(ctx, http.MethodPost, api.PathSignUp, req, "", &resp); err != nil {
		return models.Session{}, err
	}
	return toSession(resp, payload.Name)
}

// SaveResult stores a record. The session token authorizes the save.
func (c *Client) SaveResult(ctx context.Context, session models.Session, record models.Record) error {
	req := api.SaveResultRequest{Name: record.Name, Choice: record.Choice}
	return c.do(ctx, http.MethodPost, api.PathSaveResult, req, session.Token, nil)
}

// FetchRecords returns the records in the closed range r
func (c *Client) FetchRecords(ctx context.Context, session models.Session, r models.RecordRange) ([]models.Record, error) {
	req := api.GetDataRequest{
		Session:   api.SessionPayload{UserID: session.UserID, Token: session.Token},
		DataRange: []int{r.Begin, r.End},
	}

	var resp api.GetDataResponse
	if err := c.do(ctx, http.MethodGet, api.PathGetData, req, session.Token, &resp); err != nil {
		return nil, err
	}

	records := make([]models.Record, len(resp.Records))
	for i, rec := range resp.Records {
		records[i] = models.Record{Name: rec.Name, Choice: rec.Choice}
	}
	return records, nil
}

func toSession(resp api.SessionPayload, username string) (models.Session, error) {
	if strings.TrimSpace(resp.Token) == "" {
		return models.Session{}, ErrMissingToken
	}
	return models.Session{
		UserID:   resp.UserID,
		Token:    resp.Token,
		Username: username,
		Role:     models.Role(resp.Role),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	op := method + " " + path
	target := c.base.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("op", op), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	c.logger.Debug("request completed",
		zap.String("op", op),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newAPIError(res.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, err)
	}
	return nil
}

func newAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status, Body: data}

	var fields map[string]any
	if len(data) > 0 && json.Unmarshal(data, &fields) == nil {
		apiErr.Code = stringField(fields, "code")
		apiErr.Field = stringField(fields, "field")
		for _, key := range []string{"message", "error"} {
			if msg := stringField(fields, key); msg != "" {
				apiErr.Message = msg
				break
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return apiErr
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
