package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, opts CORSOptions, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/properties", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	restricted := CORSOptions{AllowedOrigins: []string{"https://akxton.example.com"}, MaxAge: 300}

	t.Run("allowed origin", func(t *testing.T) {
		rec := corsRequest(t, restricted, http.MethodGet, "https://akxton.example.com")
		assert.Equal(t, "https://akxton.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("unknown origin gets no allow headers", func(t *testing.T) {
		rec := corsRequest(t, restricted, http.MethodGet, "https://evil.example.com")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"), "still varies so caches split per origin")
	})

	t.Run("wildcard", func(t *testing.T) {
		rec := corsRequest(t, DefaultCORSOptions(), http.MethodGet, "https://anywhere.example.com")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := corsRequest(t, restricted, http.MethodOptions, "https://akxton.example.com")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("same-origin request untouched", func(t *testing.T) {
		rec := corsRequest(t, restricted, http.MethodGet, "")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Vary"))
	})
}
