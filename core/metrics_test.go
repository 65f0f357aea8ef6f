package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *RequestMetrics {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRequestMetrics(client)
}

func TestRequestMetricsRecordAndSnapshot(t *testing.T) {
	metrics := newTestMetrics(t)
	ctx := context.Background()

	metrics.Record(ctx, http.StatusOK)
	metrics.Record(ctx, http.StatusCreated)
	metrics.Record(ctx, http.StatusNotFound)
	metrics.Record(ctx, http.StatusInternalServerError)

	counts, err := metrics.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(2), counts.Success)
	assert.Equal(t, int64(1), counts.ClientError)
	assert.Equal(t, int64(1), counts.ServerError)
}

func TestRequestMetricsDisabled(t *testing.T) {
	metrics := NewRequestMetrics(nil)
	assert.False(t, metrics.Enabled())

	// Recording without a backend is a no-op, not a panic.
	metrics.Record(context.Background(), http.StatusOK)

	counts, err := metrics.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RequestCounts{}, counts)
}

func TestCollectSystemStatus(t *testing.T) {
	metrics := newTestMetrics(t)
	metrics.Record(context.Background(), http.StatusOK)

	st := CollectSystemStatus(context.Background(), metrics, time.Now().Add(-90*time.Second))
	assert.GreaterOrEqual(t, st.UptimeSeconds, int64(90))
	require.NotNil(t, st.Requests)
	assert.Equal(t, int64(1), st.Requests.Total)
}

func TestRouterRecordsMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := newTestMetrics(t)

	repo := newFakeUserRepo()
	hasher := NewBcryptHasher()
	tokens, err := NewTokenIssuer("test-secret")
	require.NoError(t, err)
	router := NewRouter(Config{JWTSecret: "test-secret"},
		NewAuthService(repo, hasher, tokens),
		NewUserService(repo, hasher),
		tokens, metrics)

	for _, path := range []string{"/healthz", "/healthz", "/users"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	counts, err := metrics.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(2), counts.Success)
	assert.Equal(t, int64(1), counts.ClientError) // /users without bearer -> 401
}
