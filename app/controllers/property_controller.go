package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/akxton/app/middleware"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// PropertyController serves the listing endpoints: public search and detail,
// owner CRUD with image uploads.
type PropertyController struct {
	properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{properties: properties}
}

// Search handles GET /api/properties.
func (c *PropertyController) Search(w http.ResponseWriter, r *http.Request) {
	q := repositories.ParseSearchQuery(r.URL.Query())

	result, err := c.properties.Search(r.Context(), q)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, result)
}

// Get handles GET /api/properties/{id}.
func (c *PropertyController) Get(w http.ResponseWriter, r *http.Request) {
	property, err := c.properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, property)
}

// MyListings handles GET /api/properties/my-listings.
func (c *PropertyController) MyListings(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	listings, err := c.properties.MyListings(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(listings))
}

// Create handles POST /api/properties (multipart form).
func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	in, uploads, err := decodePropertyForm(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	property, err := c.properties.Create(r.Context(), user, in, uploads)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, property)
}

// Update handles PUT /api/properties/{id} (multipart form).
func (c *PropertyController) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	in, uploads, err := decodePropertyForm(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	property, err := c.properties.Update(r.Context(), user, chi.URLParam(r, "id"), in, uploads)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, property)
}

type deleteImageInput struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

// DeleteImage handles DELETE /api/properties/{id}/images.
func (c *PropertyController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var in deleteImageInput
	if !bindJSON(w, r, &in) {
		return
	}

	property, err := c.properties.DeleteImage(r.Context(), user, chi.URLParam(r, "id"), in.ImageURL)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, property)
}

// Delete handles DELETE /api/properties/{id}.
func (c *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := c.properties.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "property deleted"})
}
