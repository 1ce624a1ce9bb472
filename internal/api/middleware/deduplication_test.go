package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDeduplicator_Window(t *testing.T) {
	now := time.Unix(1000, 0)
	d := NewDeduplicator(time.Minute)
	d.now = func() time.Time { return now }

	assert.False(t, d.seen("a"))
	assert.True(t, d.seen("a"))
	assert.False(t, d.seen("b"))

	now = now.Add(2 * time.Minute)
	assert.False(t, d.seen("a"))
}

func TestDeduplicator_SweepsExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	d := NewDeduplicator(time.Minute)
	d.now = func() time.Time { return now }

	for _, fp := range []string{"a", "b", "c"} {
		d.seen(fp)
	}
	assert.Equal(t, 3, d.Len())

	now = now.Add(2 * time.Minute)
	d.seen("d")
	assert.Equal(t, 1, d.Len())
}

func TestDeduplicator_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewDeduplicator(time.Minute).Middleware())
	router.POST("/recommend", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/recommend", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, body string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/recommend", strings.NewReader(body)))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, `{"a":1}`))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, `{"a":1}`))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, `{"a":2}`))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, ""))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, ""))
}
