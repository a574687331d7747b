package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitAllowsBurstThenThrottles(t *testing.T) {
	handler := RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.WithValue(context.Background(), "userID", "rate-limit-test-user")
	got := make([]int, 0, burstSize+1)
	for i := 0; i < burstSize+1; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/expenses", nil).WithContext(ctx)
		handler.ServeHTTP(w, r)
		got = append(got, w.Code)
	}

	for i := 0; i < burstSize; i++ {
		assert.Equal(t, http.StatusOK, got[i])
	}
	assert.Equal(t, http.StatusTooManyRequests, got[burstSize])
}

func TestRateLimitKeysUsersSeparately(t *testing.T) {
	handler := RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust one user's burst.
	first := context.WithValue(context.Background(), "userID", "rate-limit-user-a")
	for i := 0; i < burstSize+1; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(first))
	}

	// A different user still has a fresh limiter.
	second := context.WithValue(context.Background(), "userID", "rate-limit-user-b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(second))
	assert.Equal(t, http.StatusOK, w.Code)
}
