package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/akxton/app/middleware"
	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// UserController serves registration, login and the account dashboard.
type UserController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewUserController(auth *services.AuthService, users *services.UserService) *UserController {
	return &UserController{auth: auth, users: users}
}

// authPayload is the response for register and login.
type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/users/register.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !bindJSON(w, r, &in) {
		return
	}

	user, token, err := c.auth.Register(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			response.BadRequest(w, "user already exists")
			return
		}
		respondErr(w, r, err)
		return
	}

	response.Created(w, authPayload{User: user, Token: token})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/users/login.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !bindJSON(w, r, &in) {
		return
	}

	user, token, err := c.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid email or password")
			return
		}
		respondErr(w, r, err)
		return
	}

	response.Success(w, authPayload{User: user, Token: token})
}

// Profile handles GET /api/users/profile.
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	profile, err := c.users.Profile(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, profile)
}

// UpdateProfile handles PUT /api/users/profile.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var in services.UpdateProfileInput
	if !bindJSON(w, r, &in) {
		return
	}

	updated, token, err := c.users.UpdateProfile(r.Context(), user, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateIdentity):
			response.BadRequest(w, "email already in use")
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Unauthorized(w, "current password is incorrect")
		default:
			respondErr(w, r, err)
		}
		return
	}
	response.Success(w, authPayload{User: updated, Token: token})
}
