package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-management/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func limitedRouter(cfg utils.RateLimitConfig, rdb *redis.Client) http.Handler {
	r := chi.NewRouter()
	r.With(RateLimit(cfg, rdb, zap.NewNop())).Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})
	r.With(RateLimit(cfg, rdb, zap.NewNop())).Get("/api/rooms/{id}", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})
	return r
}

func hit(h http.Handler, method, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testLimitConfig() utils.RateLimitConfig {
	return utils.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Hour,
		Prefix:         "rl-test",
	}
}

func TestRateLimit_TokenBucket(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := limitedRouter(testLimitConfig(), rdb)

	for i := 0; i < 3; i++ {
		rec := hit(h, http.MethodPost, "/api/auth/login", "10.0.0.1:5000")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := hit(h, http.MethodPost, "/api/auth/login", "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

	// other clients have their own bucket
	rec = hit(h, http.MethodPost, "/api/auth/login", "10.0.0.2:5000")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_KeysByRoutePattern(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := limitedRouter(testLimitConfig(), rdb)
	for _, id := range []string{"a", "b", "c"} {
		require.Equal(t, http.StatusOK, hit(h, http.MethodGet, "/api/rooms/"+id, "10.0.0.3:1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(h, http.MethodGet, "/api/rooms/d", "10.0.0.3:1").Code)

	assert.True(t, mr.Exists("rl-test:ip:10.0.0.3:route:GET /api/rooms/{id}"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	h := limitedRouter(testLimitConfig(), rdb)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, http.MethodPost, "/api/auth/login", "10.0.0.4:1").Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := testLimitConfig()
	cfg.Enabled = false
	h := limitedRouter(cfg, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, http.MethodPost, "/api/auth/login", "10.0.0.5:1").Code)
	}
}
