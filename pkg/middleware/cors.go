package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions configures which browser origins may call the API.
type CORSOptions struct {
	AllowedOrigins []string // "*" admits any origin
	MaxAge         int      // preflight cache, seconds
}

// DefaultCORSOptions admits any origin, suited for local development. The
// server narrows this to the configured frontend origin in production.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		MaxAge:         300,
	}
}

// The route table only uses these: JSON and multipart bodies carrying a
// bearer token, mutated with POST/PUT/DELETE.
const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Accept, Authorization, Content-Type"
)

// CORS adds Cross-Origin Resource Sharing headers and answers preflights.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if allowed := opts.match(origin); allowed != "" {
					w.Header().Set("Access-Control-Allow-Origin", allowed)
					w.Header().Set("Access-Control-Allow-Methods", corsMethods)
					w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
					if opts.MaxAge > 0 {
						w.Header().Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
					}
				}
				// Caches must key on the origin once responses differ by it.
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// match returns the Allow-Origin header value for the request origin, or ""
// when the origin is not admitted.
func (o CORSOptions) match(origin string) string {
	for _, allowed := range o.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}
