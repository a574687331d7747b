package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	origins := parseOrigins(" https://app.example.com , https://staging.example.com ,")
	assert.Len(t, origins, 2)
	assert.True(t, origins["https://app.example.com"])
	assert.True(t, origins["https://staging.example.com"])
	assert.False(t, origins[""])
}

func TestCorsMiddlewareEchoesAllowedOrigin(t *testing.T) {
	prev := allowedOrigins
	allowedOrigins = parseOrigins("https://app.example.com")
	t.Cleanup(func() { allowedOrigins = prev })

	handler := CorsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	r.Header.Set("Origin", "https://app.example.com")
	handler.ServeHTTP(w, r)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	handler.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsMiddlewareAnswersPreflight(t *testing.T) {
	called := false
	handler := CorsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/expenses", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, called)
}
