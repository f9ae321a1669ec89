package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/akxton/app/middleware"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// RequestController serves the enquiry endpoints.
type RequestController struct {
	requests *services.RequestService
}

func NewRequestController(requests *services.RequestService) *RequestController {
	return &RequestController{requests: requests}
}

type sendRequestInput struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

// Send handles POST /api/requests.
func (c *RequestController) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var in sendRequestInput
	if !bindJSON(w, r, &in) {
		return
	}

	entry, err := c.requests.Send(r.Context(), user, in.PropertyID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, entry)
}

// Sent handles GET /api/requests/sent.
func (c *RequestController) Sent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	entries, err := c.requests.Sent(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(entries))
}

// Received handles GET /api/requests/received.
func (c *RequestController) Received(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	entries, err := c.requests.Received(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(entries))
}

// Delete handles DELETE /api/requests/{id}.
func (c *RequestController) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := c.requests.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "request deleted"})
}
