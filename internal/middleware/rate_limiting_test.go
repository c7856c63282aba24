package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/stretchr/testify/assert"

	"github.com/prtracker/prtracker/internal/middleware"
)

type rateLimiterStub struct {
	allowed int
}

func (rl *rateLimiterStub) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{
		Allowed:    rl.allowed,
		RetryAfter: 30 * time.Second,
	}, nil
}

func TestRateLimit(t *testing.T) {
	var nextCalled bool
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	})

	handlerFunc := middleware.RateLimit(&rateLimiterStub{allowed: 1}, "login", 5)(next)
	rr := httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)

	nextCalled = false
	handlerFunc = middleware.RateLimit(&rateLimiterStub{allowed: 0}, "login", 5)(next)
	rr = httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, http.StatusTooEarly, rr.Code)
	assert.False(t, nextCalled)
	assert.Contains(t, rr.Body.String(), "retry after")
}
