package deepresearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilySearchRendersResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavilyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "secret", req.APIKey)
		assert.Equal(t, "quantum dots", req.Query)
		assert.Equal(t, 2, req.MaxResults)

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "T1", "url": "https://one", "content": "C1"},
				{"title": "T2", "url": "https://two", "content": "C2"},
			},
		})
	}))
	defer srv.Close()

	search := TavilySearch("secret", WithTavilyURL(srv.URL), WithTavilyMaxResults(2))
	out, err := search(context.Background(), "quantum dots")
	require.NoError(t, err)
	assert.Contains(t, out, "Results for: quantum dots")
	assert.Contains(t, out, "[T1] C1\nURL: https://one")
	assert.Contains(t, out, "[T2] C2\nURL: https://two")
}

func TestTavilySearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	search := TavilySearch("bad", WithTavilyURL(srv.URL))
	_, err := search(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 401")
	assert.ErrorContains(t, err, "invalid api key")
}

func TestTavilySearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	search := TavilySearch("k", WithTavilyURL(srv.URL))
	_, err := search(context.Background(), "q")
	require.Error(t, err)
}
