package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/cinesearch/internal/cache"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 10 * time.Second

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Client is an OMDb API client with a response cache.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache sets the response cache shared with other clients.
func WithCache(rc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "omdb")
	}
}

// NewClient creates a new OMDb client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New(cache.DefaultTTL)
	}
	return c
}

// SearchMovies searches movie titles. Pages start at 1.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &invalidInput{msg: "Search query cannot be empty"}
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("type", "movie")

	var resp SearchResponse
	if err := c.do(ctx, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDetails fetches the full record, with full plot, for an IMDb id.
func (c *Client) GetDetails(ctx context.Context, imdbID string) (*Details, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, &invalidInput{msg: "IMDb ID is required"}
	}

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var details Details
	if err := c.do(ctx, params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// envelope holds the fields every OMDb response carries.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// do serves params from the cache or performs the request, decoding into dest.
func (c *Client) do(ctx context.Context, params url.Values, dest any) error {
	key := cache.Key(params)

	if payload, ok := c.cache.Get(key); ok {
		if err := json.Unmarshal(payload, dest); err == nil {
			c.debug("cache hit", "key", key)
			return nil
		}
		// Undecodable entry: fall through and refetch
		c.warn("failed to decode cached payload", "key", key)
	}

	c.debug("cache miss, calling API", "key", key)

	payload, err := c.fetch(ctx, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response: %v", err), StatusCode: http.StatusOK}
	}

	c.cache.Set(key, payload)
	return nil
}

// fetch performs one GET and validates both the HTTP status and the
// Response flag. It returns the raw body on success.
func (c *Client) fetch(ctx context.Context, params url.Values) ([]byte, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	for k, vs := range params {
		q[k] = vs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, &APIError{Message: transportMessage(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &APIError{Message: transportMessage(err), StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{
			Message:    fmt.Sprintf("decode response: %v", err),
			StatusCode: resp.StatusCode,
		}
	}
	if strings.EqualFold(env.Response, "False") {
		msg := env.Error
		if msg == "" {
			msg = "Unknown API error"
		}
		c.debug("api returned error", "error", msg, "duration", time.Since(start))
		return nil, &APIError{Message: msg, StatusCode: resp.StatusCode}
	}

	c.debug("request complete", "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

// transportMessage strips the request URL (which carries the API key)
// from transport errors.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func (c *Client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

func (c *Client) warn(msg string, args ...any) {
	if c.log != nil {
		c.log.Warn(msg, args...)
	}
}
