// Package storage talks to the documentation storage service that serves
// rendered entity documentation.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quantmind-br/docprep/internal/cache"
	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

// Page is a rendered documentation page
type Page struct {
	URL         string
	StatusCode  int
	Body        []byte
	ContentType string
	FromCache   bool
}

// Client fetches rendered documentation from the storage service
type Client struct {
	apiOrigin  string
	httpClient *http.Client
	retrier    *Retrier
	cache      domain.Cache
	cacheTTL   time.Duration
	userAgent  string
	logger     *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	APIOrigin  string
	Timeout    time.Duration
	MaxRetries int
	Retry      RetrierOptions
	Cache      domain.Cache // optional page cache
	CacheTTL   time.Duration
	UserAgent  string
	HTTPClient *http.Client // optional custom HTTP client (e.g., for testing)
	Logger     *utils.Logger
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		APIOrigin:  "http://localhost:7000/api/techdocs/static/docs",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		CacheTTL:   time.Hour,
		UserAgent:  "docprep",
	}
}

// NewClient creates a storage client for opts.APIOrigin
func NewClient(opts ClientOptions) (*Client, error) {
	origin := strings.TrimRight(opts.APIOrigin, "/")
	if _, err := NewURLFormatter(origin); err != nil {
		return nil, domain.NewValidationError("storage.api_origin", err.Error())
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultClientOptions().Timeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := opts.Retry
	if opts.MaxRetries != 0 {
		retry.MaxRetries = opts.MaxRetries
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultClientOptions().UserAgent
	}

	return &Client{
		apiOrigin:  origin,
		httpClient: httpClient,
		retrier:    NewRetrier(retry),
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		userAgent:  userAgent,
		logger:     opts.Logger.OrNop().WithComponent("storage"),
	}, nil
}

// APIOrigin returns the storage origin without a trailing slash
func (c *Client) APIOrigin() string {
	return c.apiOrigin
}

// entityURL returns <origin>/<kind>/<namespace>/<name>/<path>
func (c *Client) entityURL(entity domain.EntityName, path string) string {
	segments := []string{
		url.PathEscape(entity.Kind),
		url.PathEscape(entity.Namespace),
		url.PathEscape(entity.Name),
	}
	return c.apiOrigin + "/" + strings.Join(segments, "/") + "/" + strings.TrimLeft(path, "/")
}

// GetEntityDocs fetches the index.html of path within the entity's documentation
func (c *Client) GetEntityDocs(ctx context.Context, entity domain.EntityName, path string) (*Page, error) {
	f, err := NewURLFormatter(c.entityURL(entity, path))
	if err != nil {
		return nil, err
	}
	target := f.FormatBaseURL() + "index.html"

	if page, ok := c.fromCache(ctx, target); ok {
		c.logger.Debug().Str("url", target).Msg("Storage cache hit")
		return page, nil
	}

	page, err := RetryWithValue(ctx, c.retrier, func() (*Page, error) {
		return c.doRequest(ctx, target)
	})
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, page)
	return page, nil
}

// BaseURL resolves ref against the entity's documentation location for path.
// A non-empty path is treated as a directory.
func (c *Client) BaseURL(ref string, entity domain.EntityName, path string) (string, error) {
	base := c.entityURL(entity, path)
	if path != "" && !strings.HasSuffix(path, "/") {
		base += "/"
	}

	f, err := NewURLFormatter(base)
	if err != nil {
		return "", err
	}
	return f.FormatURL(ref)
}

func (c *Client) doRequest(ctx context.Context, target string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	c.logger.Debug().Str("url", target).Msg("Fetching documentation page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(target, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchErr := domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
		if ShouldRetryStatus(resp.StatusCode) {
			return nil, &domain.RetryableError{
				Err:        fetchErr,
				RetryAfter: int(ParseRetryAfter(resp.Header.Get("Retry-After")) / time.Second),
			}
		}
		if resp.StatusCode == http.StatusNotFound {
			fetchErr.Err = fmt.Errorf("%w: HTTP %d", domain.ErrNotFound, resp.StatusCode)
		}
		return nil, fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	return &Page{
		URL:         target,
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// cachedPage is the stored form of a page. The content type is kept since it
// may carry the only charset declaration of the body.
type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func (c *Client) toCache(ctx context.Context, page *Page) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(cachedPage{ContentType: page.ContentType, Body: page.Body})
	if err == nil {
		err = c.cache.Set(ctx, cache.PageKey(page.URL), data, c.cacheTTL)
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("url", page.URL).Msg("Failed to cache page")
	}
}

func (c *Client) fromCache(ctx context.Context, target string) (*Page, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, cache.PageKey(target))
	if err != nil {
		return nil, false
	}
	var stored cachedPage
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Debug().Err(err).Str("url", target).Msg("Discarding unreadable cached page")
		return nil, false
	}
	return &Page{
		URL:         target,
		StatusCode:  http.StatusOK,
		Body:        stored.Body,
		ContentType: stored.ContentType,
		FromCache:   true,
	}, true
}
