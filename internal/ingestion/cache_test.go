package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`<html><body><main>Cached posting <a href="/a">A</a></main></body></html>`))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestPageCache_Hit(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK)
	cache := NewPageCache(0, 0)

	first, err := cache.Fetch(context.Background(), server.URL, PageOptions{})
	require.NoError(t, err)
	first.Links[0] = "mutated"

	second, err := cache.Fetch(context.Background(), server.URL, PageOptions{Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, "Cached posting A", second.Text)
	assert.Equal(t, []string{server.URL + "/a"}, second.Links)
}

func TestPageCache_ErrorsAreNotCached(t *testing.T) {
	server, hits := countingServer(t, http.StatusBadGateway)
	cache := NewPageCache(4, time.Minute)

	for range 2 {
		_, err := cache.Fetch(context.Background(), server.URL, PageOptions{})
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestPageCache_Expiry(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK)
	cache := NewPageCache(4, 20*time.Millisecond)

	_, err := cache.Fetch(context.Background(), server.URL, PageOptions{})
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = cache.Fetch(context.Background(), server.URL, PageOptions{})
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestPageCache_Nil(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK)
	var cache *PageCache

	for range 2 {
		_, err := cache.Fetch(context.Background(), server.URL, PageOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 0, cache.Len())
}
