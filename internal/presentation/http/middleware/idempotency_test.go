package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
)

type memIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	k, ok := r.keys[key+"/"+userID.String()]
	if !ok {
		return nil, nil
	}
	return k, nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, key *entity.IdempotencyKey) error {
	r.keys[key.Key+"/"+key.UserID.String()] = key
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(_ context.Context) error { return nil }

func newIdempotencyRouter(repo *memIdempotencyRepo, userID uuid.UUID) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	calls := 0
	router.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(201, gin.H{"success": true, "calls": calls})
		},
	)

	return router, &calls
}

func TestIdempotencyRequired(t *testing.T) {
	userID := uuid.New()

	t.Run("missing key is rejected", func(t *testing.T) {
		router, calls := newIdempotencyRouter(newMemIdempotencyRepo(), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.Zero(t, *calls)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/sales",
			IdempotencyRequired(IdempotencyConfig{Repo: newMemIdempotencyRepo()}),
			func(c *gin.Context) { c.JSON(201, gin.H{"success": true}) },
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code)
	})

	t.Run("first request runs the handler and caches", func(t *testing.T) {
		repo := newMemIdempotencyRepo()
		router, calls := newIdempotencyRouter(repo, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, 201, w.Code)
		assert.Equal(t, 1, *calls)
		assert.Len(t, repo.keys, 1)
	})

	t.Run("retry replays the cached response", func(t *testing.T) {
		repo := newMemIdempotencyRepo()
		router, calls := newIdempotencyRouter(repo, userID)

		first := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "abc-123")
		router.ServeHTTP(first, req)

		second := httptest.NewRecorder()
		retry := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		retry.Header.Set(IdempotencyKeyHeader, "abc-123")
		router.ServeHTTP(second, retry)

		// The handler ran exactly once; the retry got the stored response
		assert.Equal(t, 1, *calls)
		assert.Equal(t, 201, second.Code)
		assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("different keys book separately", func(t *testing.T) {
		repo := newMemIdempotencyRepo()
		router, calls := newIdempotencyRouter(repo, userID)

		for i, key := range []string{"key-1", "key-2"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
			req.Header.Set(IdempotencyKeyHeader, key)
			router.ServeHTTP(w, req)
			require.Equal(t, i+1, *calls)
		}
	})

	t.Run("expired keys run the handler again", func(t *testing.T) {
		repo := newMemIdempotencyRepo()
		router, calls := newIdempotencyRouter(repo, userID)

		repo.keys["old-key/"+userID.String()] = &entity.IdempotencyKey{
			Key:          "old-key",
			UserID:       userID,
			ResponseCode: 201,
			ResponseBody: `{"success":true}`,
			ExpiresAt:    time.Now().Add(-time.Hour),
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "old-key")
		router.ServeHTTP(w, req)

		assert.Equal(t, 1, *calls)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	})
}
