package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := "user-1"

	t.Run("replays cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("idemp:/salaries:" + userID + ":key-1").SetVal(`{"id":"s-1"}`)

		router := gin.New()
		router.POST("/salaries", func(c *gin.Context) { c.Set("user_id", userID) }, Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run on cache hit")
		})

		req := httptest.NewRequest(http.MethodPost, "/salaries", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "s-1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request acquires lock and reaches handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cacheKey := "idemp:/salaries:" + userID + ":key-2"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		handlerRan := false
		router := gin.New()
		router.POST("/salaries", func(c *gin.Context) { c.Set("user_id", userID) }, Idempotency(rdb), func(c *gin.Context) {
			handlerRan = true
			assert.Equal(t, cacheKey, c.GetString("idempotency_cache_key"))
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodPost, "/salaries", nil)
		req.Header.Set("Idempotency-Key", "key-2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.True(t, handlerRan)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate rejected while lock held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cacheKey := "idemp:/salaries:" + userID + ":key-3"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		router := gin.New()
		router.POST("/salaries", func(c *gin.Context) { c.Set("user_id", userID) }, Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run while the lock is held")
		})

		req := httptest.NewRequest(http.MethodPost, "/salaries", nil)
		req.Header.Set("Idempotency-Key", "key-3")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("no key passes through untouched", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		router := gin.New()
		router.POST("/salaries", Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodPost, "/salaries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
