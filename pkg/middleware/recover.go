package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/akxton/config"
	"github.com/shashiranjanraj/akxton/pkg/logger"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a 500 to the client. The stack is only echoed in the body
// outside production mode.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(stack),
					"method", r.Method,
					"path", r.URL.Path,
				)
				if config.IsProduction() {
					response.Error(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
				response.ErrorWithStack(w, fmt.Sprintf("%v", err), string(stack))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
