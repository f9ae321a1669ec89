package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// AdminController serves the moderation surface.
type AdminController struct {
	auth  *services.AuthService
	admin *services.AdminService
}

func NewAdminController(auth *services.AuthService, admin *services.AdminService) *AdminController {
	return &AdminController{auth: auth, admin: admin}
}

type adminLoginInput struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminAuthPayload struct {
	Admin   *models.Admin `json:"admin"`
	Token   string        `json:"token"`
	IsAdmin bool          `json:"isAdmin"`
}

// Login handles POST /api/admin/login.
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var in adminLoginInput
	if !bindJSON(w, r, &in) {
		return
	}

	admin, token, err := c.auth.LoginAdmin(r.Context(), in.Name, in.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, adminAuthPayload{Admin: admin, Token: token, IsAdmin: true})
}

// Stats handles GET /api/admin/stats.
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.admin.Stats(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, stats)
}

// Users handles GET /api/admin/users.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.admin.Users(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(users))
}

// Properties handles GET /api/admin/properties.
func (c *AdminController) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := c.admin.Properties(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(properties))
}

// Messages handles GET /api/messages.
func (c *AdminController) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := c.admin.Messages(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, orEmpty(messages))
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := c.admin.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "user deleted"})
}

// DeleteProperty handles DELETE /api/admin/properties/{id}.
func (c *AdminController) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := c.admin.DeleteProperty(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "property deleted"})
}

// DeleteMessage handles DELETE /api/messages/{id}.
func (c *AdminController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := c.admin.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "message deleted"})
}
