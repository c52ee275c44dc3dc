package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirPenguin555/Whats-That-Color/internal/config"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

func newApp(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		assert.NoError(t, a.Close(context.Background()))
	})
	return srv
}

func postScore(t *testing.T, srv *httptest.Server, body string) model.PlayResult {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/score", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.PlayResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func getBody(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestNew_LocalOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.RemoteEnabled = false
	srv := newApp(t, cfg)

	assert.JSONEq(t, `{"status":"ok"}`, getBody(t, srv.URL+"/health"))

	res := postScore(t, srv, `{"description":"blue","hexColor":"#3B82F6","apiKey":"ignored"}`)
	assert.Equal(t, model.SourceHeuristic, res.Source)
	assert.Equal(t, 1.7, res.Scores.Overall)

	assert.Contains(t, getBody(t, srv.URL+"/metrics"), `colorscore_scoring_requests_total{source="heuristic"} 1`)
}

func TestNew_EndpointScorerWithRedisCache(t *testing.T) {
	var calls atomic.Int32
	scorer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"funny":4.5,"accurate":4.0,"popular":3.5}`))
	}))
	defer scorer.Close()
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.AI.Provider = config.ProviderEndpoint
	cfg.AI.EndpointURL = scorer.URL
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Scoring.CacheBackend = config.CacheBackendRedis
	require.NoError(t, cfg.Validate())
	srv := newApp(t, cfg)

	body := `{"description":"sad robot tears","hexColor":"#3B82F6"}`
	first := postScore(t, srv, body)
	assert.Equal(t, model.SourceRemote, first.Source)
	assert.Equal(t, 4.0, first.Scores.Overall)
	assert.False(t, first.CachedHit)

	second := postScore(t, srv, body)
	assert.True(t, second.CachedHit)
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, int32(1), calls.Load())

	assert.JSONEq(t, `{"size":1,"maxSize":100}`, getBody(t, srv.URL+"/v1/cache/stats"))
	assert.Contains(t, getBody(t, srv.URL+"/metrics"), `colorscore_cache_lookups_total{result="hit"} 1`)
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = addr
	_, err := New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "ping redis")
}
