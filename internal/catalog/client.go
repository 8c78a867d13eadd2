// Package catalog proxies the external movie catalog API with a Redis
// cache in front of it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinelog/internal/cache"
	"cinelog/internal/models"
	"cinelog/internal/observability"
)

// Client talks to the upstream catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a catalog client for the given base URL. The URL may
// be empty, in which case every call reports the catalog as unavailable.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// List fetches the catalog listing, optionally filtered by a search query.
// Responses are cached; the upstream payload passes through untouched.
func (c *Client) List(ctx context.Context, query string) (json.RawMessage, error) {
	path := "/movies"
	if query != "" {
		path += "?search=" + url.QueryEscape(query)
	}
	return c.fetch(ctx, "list", path)
}

// Get fetches a single catalog entry by its upstream id.
func (c *Client) Get(ctx context.Context, movieID string) (json.RawMessage, error) {
	if movieID == "" {
		return nil, models.NewValidationError("movie id is required")
	}
	return c.fetch(ctx, "get", "/movies/"+url.PathEscape(movieID))
}

// GetMany fetches several catalog entries. Individual failures are
// skipped so a watchlist page degrades instead of erroring.
func (c *Client) GetMany(ctx context.Context, movieIDs []string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(movieIDs))
	for _, id := range movieIDs {
		entry, err := c.Get(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "catalog lookup failed", "movie_id", id, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (c *Client) fetch(ctx context.Context, operation, path string) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, models.NewInternalError(fmt.Errorf("catalog service not configured"))
	}

	var payload json.RawMessage
	err := cache.Aside(ctx, cache.CatalogKey(path), &payload, cache.CatalogTTL, func() error {
		body, err := c.call(ctx, operation, path)
		if err != nil {
			return err
		}
		payload = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) call(ctx context.Context, operation, path string) (json.RawMessage, error) {
	fullURL := c.baseURL + path
	ctx, span := observability.TraceUpstreamCall(ctx, operation, fullURL)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "catalog request failed", "path", path, "error", err)
		return nil, models.NewInternalError(fmt.Errorf("catalog unavailable"))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NewNotFoundError("Movie", strings.TrimPrefix(path, "/movies/"))
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("catalog returned status %d", resp.StatusCode)
		span.RecordError(err)
		slog.ErrorContext(ctx, "catalog request failed", "path", path, "status", resp.StatusCode)
		return nil, models.NewInternalError(fmt.Errorf("catalog unavailable"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		span.RecordError(err)
		return nil, models.NewInternalError(err)
	}
	if !json.Valid(body) {
		return nil, models.NewInternalError(fmt.Errorf("catalog returned invalid payload"))
	}
	return json.RawMessage(body), nil
}
