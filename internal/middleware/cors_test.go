package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prtracker/prtracker/internal/middleware"
)

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handlerFunc := middleware.Cors()(next)

	// allowed origin
	req := httptest.NewRequest("GET", "/exo", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rr := httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:8080", rr.Header().Get("Access-Control-Allow-Origin"))

	// unknown origin
	req = httptest.NewRequest("GET", "/exo", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// strava redirect comes with no origin at all
	req = httptest.NewRequest("GET", "/strava/callback?code=abc", nil)
	rr = httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
