package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// DefaultBaseURL is the production endpoint of the workspace API.
const DefaultBaseURL = "https://api.docspace.io"

// DefaultNamespace prefixes every cache key written by a client.
const DefaultNamespace = "docspace"

// Client calls the remote workspace API with a read cache in front of
// it. Construct one per integration token; the client owns its cache
// store unless one is supplied.
type Client struct {
	http    *http.Client
	baseURL *url.URL

	store   *cache.MemoryStore
	fetcher *cache.Fetcher
	keyer   cache.Keyer
	mw      *observe.Middleware
	retry   *retrier
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	namespace    string
	policy       cache.Policy
	store        *cache.MemoryStore
	retry        RetryConfig
	mw           *observe.Middleware
	singleFlight bool
}

// WithHTTPClient sets the underlying HTTP client. Its transport is
// wrapped with token injection.
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = h }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(raw string) Option {
	return func(c *clientConfig) { c.baseURL = raw }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) { c.userAgent = ua }
}

// WithNamespace sets the cache key namespace. Ignored when WithStore
// supplies a store, which carries its own namespace.
func WithNamespace(ns string) Option {
	return func(c *clientConfig) { c.namespace = ns }
}

// WithPolicy sets the cache TTL policy.
func WithPolicy(p cache.Policy) Option {
	return func(c *clientConfig) { c.policy = p }
}

// WithStore supplies an existing cache store, letting several clients
// share one table.
func WithStore(s *cache.MemoryStore) Option {
	return func(c *clientConfig) { c.store = s }
}

// WithRetry overrides the retry policy for transient remote failures.
func WithRetry(rc RetryConfig) Option {
	return func(c *clientConfig) { c.retry = rc }
}

// WithMiddleware attaches observability to every remote call.
func WithMiddleware(mw *observe.Middleware) Option {
	return func(c *clientConfig) { c.mw = mw }
}

// WithSingleFlight coalesces concurrent cache misses for the same key
// into one remote call. Off by default; without it concurrent misses
// each reach the remote API.
func WithSingleFlight() Option {
	return func(c *clientConfig) { c.singleFlight = true }
}

// New creates a workspace client for the given integration token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg := clientConfig{
		baseURL:   DefaultBaseURL,
		namespace: DefaultNamespace,
		policy:    cache.DefaultPolicy(),
		retry:     defaultRetryConfig(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	u, err := url.Parse(cfg.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBase, cfg.baseURL)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	// Shallow copy so wrapping the transport never mutates the
	// caller's client.
	wrapped := *httpClient
	wrapped.Transport = &tokenTransport{
		token:     token,
		userAgent: cfg.userAgent,
		base:      httpClient.Transport,
	}

	store := cfg.store
	if store == nil {
		store = cache.NewMemoryStore(cfg.namespace)
	}

	var fetcherOpts []cache.FetcherOption
	if cfg.singleFlight {
		fetcherOpts = append(fetcherOpts, cache.WithSingleFlight())
	}

	mw := cfg.mw
	if mw == nil {
		mw = observe.NoopMiddleware()
	}

	return &Client{
		http:    &wrapped,
		baseURL: u,
		store:   store,
		fetcher: cache.NewFetcher(store, cfg.policy, fetcherOpts...),
		keyer:   cache.NewOpKeyer(),
		mw:      mw,
		retry:   newRetrier(cfg.retry),
	}, nil
}

// Cache returns the client's store for direct control: stats, clear,
// enable/disable, targeted invalidation.
func (c *Client) Cache() *cache.MemoryStore {
	return c.store
}

// CallOption adjusts a single operation.
type CallOption func(*callOptions)

type callOptions struct {
	bypass bool
}

// NoCache bypasses the read cache for this call: the remote API is
// always consulted and the result is not stored.
func NoCache() CallOption {
	return func(o *callOptions) { o.bypass = true }
}

func applyCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// do performs one HTTP exchange. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, p string, query url.Values, body any) ([]byte, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("workspace: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(payload, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	return payload, nil
}

// call wraps do with retry and telemetry. All remote traffic funnels
// through here.
func (c *Client) call(ctx context.Context, meta observe.OpMeta, method, p string, query url.Values, body any) ([]byte, error) {
	return c.mw.Call(ctx, meta, func(ctx context.Context) ([]byte, error) {
		var out []byte
		err := c.retry.execute(ctx, func(ctx context.Context) error {
			payload, err := c.do(ctx, method, p, query, body)
			if err != nil {
				return err
			}
			out = payload
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

// cachedCall answers a read from the cache when fresh, otherwise calls
// the remote API and stores the result.
func (c *Client) cachedCall(ctx context.Context, meta observe.OpMeta, params map[string]any, ttl time.Duration, opts callOptions, method, p string, query url.Values, body any) ([]byte, error) {
	key, err := c.keyer.Key(meta.Op, params)
	if err != nil {
		return nil, err
	}

	produced := false
	producer := func(ctx context.Context) ([]byte, error) {
		produced = true
		return c.call(ctx, meta, method, p, query, body)
	}

	payload, err := c.fetcher.GetOrFetch(ctx, key, producer, cache.FetchOptions{
		TTL:    ttl,
		Bypass: opts.bypass,
	})
	if err == nil && !opts.bypass && c.store.Enabled() {
		c.mw.CacheLookup(ctx, meta, !produced)
	}
	return payload, err
}

// decode unmarshals an API payload into out.
func decode[T any](payload []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("workspace: failed to decode response: %w", err)
	}
	return &out, nil
}
