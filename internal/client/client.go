package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/govportal/portalctl/internal/model1"
)

const (
	// DefaultTimeout bounds a single API round trip.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per request correlation id.
	RequestIDHeader = "X-Request-ID"

	jsonPatchContentType = "application/json-patch+json"
	maxBodySize          = 32 << 20
)

// Connection represents a portal API connection.
type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity(context.Context) bool
	SwitchProfile(profile string) error
	ActiveProfile() string
	ProfileNames() []string
	ProfileURL(name string) string
	BaseURL() string
	MediaURL() string
	List(ctx context.Context, path string, q *model1.Query) (Envelope, error)
	Get(ctx context.Context, path string) (map[string]any, error)
	Patch(ctx context.Context, path string, patch []byte) (map[string]any, error)
	Delete(ctx context.Context, path string) error
}

// ClientConfig tracks the connection settings.
type ClientConfig struct {
	Profile   string
	BaseURL   string
	MediaURL  string
	Token     string
	DataPath  string
	TotalPath string
	Timeout   time.Duration
}

func (c *ClientConfig) clone() *ClientConfig {
	cp := *c
	return &cp
}

// APIClient talks to the portal REST API.
type APIClient struct {
	config   *ClientConfig
	settings ProfileSettings
	http     *http.Client
	flights  singleflight.Group
	log      *zap.Logger
	connOK   bool
	mx       sync.RWMutex
}

// NewAPIClient returns a new client.
func NewAPIClient(settings ProfileSettings, cfg *ClientConfig, log *zap.Logger) (*APIClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.clone()
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	if cfg.TotalPath == "" {
		cfg.TotalPath = DefaultTotalPath
	}
	if cfg.MediaURL == "" {
		cfg.MediaURL = cfg.BaseURL
	}

	return &APIClient{
		config:   cfg,
		settings: settings,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}, nil
}

// InitConnection creates a client and verifies the API is reachable.
func InitConnection(ctx context.Context, settings ProfileSettings, cfg *ClientConfig, log *zap.Logger) (*APIClient, error) {
	c, err := NewAPIClient(settings, cfg, log)
	if err != nil {
		return nil, err
	}
	if !c.CheckConnectivity(ctx) {
		return c, ErrNoConnection
	}

	return c, nil
}

// Config returns a copy of the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.config.clone()
}

// ConnectionOK returns true if the last connectivity check succeeded.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.connOK
}

// CheckConnectivity pings the API root. Any response below 500 counts.
func (c *APIClient) CheckConnectivity(ctx context.Context) bool {
	err := c.Ping(ctx)

	c.mx.Lock()
	c.connOK = err == nil
	c.mx.Unlock()

	if err != nil {
		c.log.Warn("Connectivity check failed", zap.Error(err))
	}

	return err == nil
}

// Ping checks the API root answers.
func (c *APIClient) Ping(ctx context.Context) error {
	u, err := c.url("", nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodGet, u, nil, "")
	var se *StatusError
	if errors.As(err, &se) && se.Code < http.StatusInternalServerError {
		return nil
	}

	return err
}

// SwitchProfile points the client at another API profile.
func (c *APIClient) SwitchProfile(profile string) error {
	if c.settings == nil {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, profile)
	}
	p, err := c.settings.GetProfile(profile)
	if err != nil {
		return err
	}
	if err := c.settings.SetActiveProfile(profile); err != nil {
		return err
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.config.Profile = p.Name
	c.config.BaseURL = p.BaseURL
	c.config.MediaURL = p.MediaURL
	c.config.Token = p.Token
	if p.DataPath != "" {
		c.config.DataPath = p.DataPath
	}
	if p.TotalPath != "" {
		c.config.TotalPath = p.TotalPath
	}
	c.connOK = false

	return nil
}

// ActiveProfile returns the active profile name.
func (c *APIClient) ActiveProfile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.config.Profile
}

// ProfileNames returns the known profile names.
func (c *APIClient) ProfileNames() []string {
	if c.settings == nil {
		return nil
	}

	return c.settings.ProfileNames()
}

// ProfileURL returns the base URL of a known profile.
func (c *APIClient) ProfileURL(name string) string {
	if c.settings == nil {
		return ""
	}
	p, err := c.settings.GetProfile(name)
	if err != nil {
		return ""
	}

	return p.BaseURL
}

// BaseURL returns the API base URL.
func (c *APIClient) BaseURL() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.config.BaseURL
}

// MediaURL returns the base URL for server relative media paths.
func (c *APIClient) MediaURL() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.config.MediaURL
}

// List fetches a collection. A nil query omits paging parameters.
func (c *APIClient) List(ctx context.Context, path string, q *model1.Query) (Envelope, error) {
	u, err := c.url(path, queryParams(q))
	if err != nil {
		return Envelope{}, err
	}
	body, err := c.shared(ctx, u)
	if err != nil {
		return Envelope{}, err
	}

	cfg := c.Config()
	return DecodeList(u, body, cfg.DataPath, cfg.TotalPath)
}

// Get fetches a single object.
func (c *APIClient) Get(ctx context.Context, path string) (map[string]any, error) {
	u, err := c.url(path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.shared(ctx, u)
	if err != nil {
		return nil, err
	}

	return DecodeObject(u, body, c.Config().DataPath)
}

// Patch applies a JSON patch document and returns the updated object.
func (c *APIClient) Patch(ctx context.Context, path string, patch []byte) (map[string]any, error) {
	u, err := c.url(path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPatch, u, patch, jsonPatchContentType)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	return DecodeObject(u, body, c.Config().DataPath)
}

// Delete removes an object.
func (c *APIClient) Delete(ctx context.Context, path string) error {
	u, err := c.url(path, nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, u, nil, "")

	return err
}

// shared coalesces identical concurrent GETs. The flight outlives a canceled
// caller so other waiters still get a response.
func (c *APIClient) shared(ctx context.Context, u string) ([]byte, error) {
	ch := c.flights.DoChan(u, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), http.MethodGet, u, nil, "")
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.log.Debug("Coalesced request", zap.String("url", u))
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *APIClient) do(ctx context.Context, method, u string, payload []byte, contentType string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Config().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.setConnOK(false)
		return nil, fmt.Errorf("%w: %w", ErrNoConnection, err)
	}
	defer resp.Body.Close()
	c.setConnOK(true)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNoConnection, err)
	}
	c.log.Debug("API call",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.String("requestID", reqID),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			URL:    u,
			Code:   resp.StatusCode,
			Body:   string(raw),
		}
	}

	return raw, nil
}

func (c *APIClient) setConnOK(ok bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.connOK = ok
}

func (c *APIClient) url(path string, params url.Values) (string, error) {
	base := c.BaseURL()
	if base == "" {
		return "", ErrNoBaseURL
	}
	u := strings.TrimRight(base, "/")
	if path != "" {
		u += "/" + strings.TrimLeft(path, "/")
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return u, nil
}

func queryParams(q *model1.Query) url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.Limit > 0 && q.Limit < model1.UnboundedLimit {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	return v
}
