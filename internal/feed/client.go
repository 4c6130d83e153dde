package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/config"
)

// Entry is one raw product entry from the content source: an opaque id plus
// an untyped field bag. Field values keep whatever type the source sent.
type Entry struct {
	ID     string
	Fields map[string]any
}

// Client fetches product entries from the external content source.
type Client interface {
	// FetchEntries performs one fetch against the source. It returns
	// apperr.FeedUnavailableErr on transport or HTTP-status failure and
	// apperr.FeedMalformedErr when the payload lacks the entry-list shape.
	// No retries; a failed fetch is a failed sync attempt.
	FetchEntries(ctx context.Context) ([]Entry, error)
}

type contentfulClient struct {
	cfg        config.Feed
	httpClient *http.Client
}

// NewContentfulClient creates a client for a Contentful-style CDN.
func NewContentfulClient(cfg config.Feed) Client {
	return &contentfulClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type entriesResponse struct {
	Items []struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
		Fields map[string]any `json:"fields"`
	} `json:"items"`
}

func (c *contentfulClient) FetchEntries(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.entriesURL(), nil)
	if err != nil {
		return nil, apperr.FeedUnavailableErr.WrapParent(fmt.Errorf("build request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.FeedUnavailableErr.WrapParent(fmt.Errorf("fetch entries: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.FeedUnavailableErr.WrapParent(fmt.Errorf("fetch entries: unexpected status %d", resp.StatusCode))
	}

	var payload entriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.FeedMalformedErr.WrapParent(fmt.Errorf("decode entries: %w", err))
	}
	if payload.Items == nil {
		return nil, apperr.FeedMalformedErr.WrapParent(fmt.Errorf("decode entries: missing items list"))
	}

	entries := make([]Entry, 0, len(payload.Items))
	for _, item := range payload.Items {
		entries = append(entries, Entry{
			ID:     item.Sys.ID,
			Fields: item.Fields,
		})
	}

	return entries, nil
}

func (c *contentfulClient) entriesURL() string {
	query := url.Values{}
	query.Set("access_token", c.cfg.AccessToken)
	query.Set("content_type", c.cfg.ContentType)

	return fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.cfg.BaseURL,
		url.PathEscape(c.cfg.SpaceID),
		url.PathEscape(c.cfg.Environment),
		query.Encode(),
	)
}
