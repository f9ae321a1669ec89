package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/akxton/app/middleware"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// SavedController serves the bookmark endpoints.
type SavedController struct {
	saved *services.SavedService
}

func NewSavedController(saved *services.SavedService) *SavedController {
	return &SavedController{saved: saved}
}

type toggleInput struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

// Toggle handles POST /api/saved/toggle.
func (c *SavedController) Toggle(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var in toggleInput
	if !bindJSON(w, r, &in) {
		return
	}

	saved, err := c.saved.Toggle(r.Context(), user, in.PropertyID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"saved": saved})
}

// Check handles GET /api/saved/check/{propertyId}.
func (c *SavedController) Check(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	saved, err := c.saved.Check(r.Context(), user, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"saved": saved})
}

// List handles GET /api/saved.
func (c *SavedController) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	entries, err := c.saved.List(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(entries))
}
