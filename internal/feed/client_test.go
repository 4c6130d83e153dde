package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/config"
	"github.com/tuanvumaihuynh/catalog-sync/internal/feed"
)

func feedConfig(baseURL string) config.Feed {
	return config.Feed{
		BaseURL:     baseURL,
		SpaceID:     "space1",
		Environment: "master",
		AccessToken: "token1",
		ContentType: "product",
		Timeout:     5 * time.Second,
	}
}

func TestContentfulClientFetchEntries(t *testing.T) {
	t.Run("Should fetch and decode entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/spaces/space1/environments/master/entries", r.URL.Path)
			assert.Equal(t, "token1", r.URL.Query().Get("access_token"))
			assert.Equal(t, "product", r.URL.Query().Get("content_type"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [
					{"sys": {"id": "p1"}, "fields": {"name": "Watch", "price": 10.5}},
					{"sys": {"id": "p2"}, "fields": {"name": "Phone"}}
				]
			}`))
		}))
		defer server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		entries, err := client.FetchEntries(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "p1", entries[0].ID)
		assert.Equal(t, "Watch", entries[0].Fields["name"])
		assert.Equal(t, 10.5, entries[0].Fields["price"])
		assert.Equal(t, "p2", entries[1].ID)
	})

	t.Run("Should return empty slice for empty items list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"items": []}`))
		}))
		defer server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		entries, err := client.FetchEntries(context.Background())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Should report unavailable feed on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		_, err := client.FetchEntries(context.Background())
		assert.ErrorIs(t, err, apperr.FeedUnavailableErr)
	})

	t.Run("Should report unavailable feed on transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		_, err := client.FetchEntries(context.Background())
		assert.ErrorIs(t, err, apperr.FeedUnavailableErr)
	})

	t.Run("Should report malformed feed on invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"items": [`))
		}))
		defer server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		_, err := client.FetchEntries(context.Background())
		assert.ErrorIs(t, err, apperr.FeedMalformedErr)
	})

	t.Run("Should report malformed feed when items list is missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"total": 0}`))
		}))
		defer server.Close()

		client := feed.NewContentfulClient(feedConfig(server.URL))

		_, err := client.FetchEntries(context.Background())
		assert.ErrorIs(t, err, apperr.FeedMalformedErr)
	})
}
