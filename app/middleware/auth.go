// Package middleware holds the route guards that resolve the request's
// principal. Transport-level middleware (CORS, logging, recovery) lives in
// pkg/middleware.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/auth"
	"github.com/shashiranjanraj/akxton/pkg/response"
	"github.com/shashiranjanraj/akxton/pkg/router"
)

type userKey struct{}
type adminKey struct{}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// RequireUser admits only requests carrying a valid user token whose
// account still exists. A valid token for a since-deleted account is a 403:
// the credential was real, the principal is gone.
func RequireUser(users services.UserStore) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validClaims(w, r, auth.KindUser)
			if !ok {
				return
			}

			user, err := users.FindByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					response.Forbidden(w, "account no longer exists")
					return
				}
				response.Error(w, http.StatusInternalServerError, "could not resolve account")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin admits only requests carrying a valid admin token whose
// admin record still exists.
func RequireAdmin(admins services.AdminStore) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validClaims(w, r, auth.KindAdmin)
			if !ok {
				return
			}

			admin, err := admins.FindByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					response.Forbidden(w, "admin account no longer exists")
					return
				}
				response.Error(w, http.StatusInternalServerError, "could not resolve account")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validClaims(w http.ResponseWriter, r *http.Request, kind auth.Kind) (*auth.Claims, bool) {
	token, ok := bearerToken(r)
	if !ok {
		response.Unauthorized(w, "not authorized, no token")
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		response.Unauthorized(w, "not authorized, token failed")
		return nil, false
	}
	if claims.Kind != kind {
		// the token is real but belongs to the other principal kind
		response.Forbidden(w, "not authorized for this resource")
		return nil, false
	}
	return claims, true
}

// UserFrom returns the user injected by RequireUser.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey{}).(*models.User)
	return user
}

// AdminFrom returns the admin injected by RequireAdmin.
func AdminFrom(ctx context.Context) *models.Admin {
	admin, _ := ctx.Value(adminKey{}).(*models.Admin)
	return admin
}
