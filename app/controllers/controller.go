// Package controllers translates HTTP requests into service calls and
// service results into JSON responses.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/config"
	"github.com/shashiranjanraj/akxton/pkg/bind"
	"github.com/shashiranjanraj/akxton/pkg/logger"
	"github.com/shashiranjanraj/akxton/pkg/response"
	"github.com/shashiranjanraj/akxton/pkg/validate"
)

// respondErr maps the service failure taxonomy onto HTTP statuses.
// Anything unclassified is a 500; its detail reaches the client only
// outside production.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, services.ErrDuplicateRequest):
		response.BadRequest(w, "enquiry already sent")
	case errors.Is(err, services.ErrDuplicateIdentity):
		response.BadRequest(w, "already in use")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w, "not authorized")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "resource not found")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		if config.IsProduction() {
			response.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// orEmpty keeps empty list responses serialising as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// bindJSON decodes and validates the body into dest. On failure it writes
// the 400 itself and reports false.
func bindJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		response.BadRequest(w, validate.FirstError(errs))
		return false
	}
	return true
}
