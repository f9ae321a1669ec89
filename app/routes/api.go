// Package routes declares the HTTP surface of the application.
package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/akxton/app/controllers"
	"github.com/shashiranjanraj/akxton/pkg/metrics"
	"github.com/shashiranjanraj/akxton/pkg/response"
	"github.com/shashiranjanraj/akxton/pkg/router"
)

// Deps bundles the controllers and guards the route table needs.
type Deps struct {
	Users      *controllers.UserController
	Properties *controllers.PropertyController
	Saved      *controllers.SavedController
	Requests   *controllers.RequestController
	Messages   *controllers.MessageController
	Admin      *controllers.AdminController

	RequireUser  router.Middleware
	RequireAdmin router.Middleware
}

// Register mounts every route on the router.
func Register(r *router.Router, d Deps) {
	r.Get("/api/health", "health", health)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	users := api.Group("/users")
	users.Post("/register", "users.register", d.Users.Register)
	users.Post("/login", "users.login", d.Users.Login)
	users.Get("/profile", "users.profile", d.Users.Profile, d.RequireUser)
	users.Put("/profile", "users.profile.update", d.Users.UpdateProfile, d.RequireUser)

	properties := api.Group("/properties")
	properties.Get("/", "properties.search", d.Properties.Search)
	properties.Get("/my-listings", "properties.mine", d.Properties.MyListings, d.RequireUser)
	properties.Get("/{id}", "properties.show", d.Properties.Get)
	properties.Post("/", "properties.create", d.Properties.Create, d.RequireUser)
	properties.Put("/{id}", "properties.update", d.Properties.Update, d.RequireUser)
	properties.Delete("/{id}/images", "properties.images.delete", d.Properties.DeleteImage, d.RequireUser)
	properties.Delete("/{id}", "properties.delete", d.Properties.Delete, d.RequireUser)

	saved := api.Group("/saved", d.RequireUser)
	saved.Get("/", "saved.list", d.Saved.List)
	saved.Get("/check/{propertyId}", "saved.check", d.Saved.Check)
	saved.Post("/toggle", "saved.toggle", d.Saved.Toggle)

	requests := api.Group("/requests", d.RequireUser)
	requests.Post("/", "requests.send", d.Requests.Send)
	requests.Get("/sent", "requests.sent", d.Requests.Sent)
	requests.Get("/received", "requests.received", d.Requests.Received)
	requests.Delete("/{id}", "requests.delete", d.Requests.Delete)

	messages := api.Group("/messages")
	messages.Post("/", "messages.send", d.Messages.Send)
	messages.Get("/", "messages.list", d.Admin.Messages, d.RequireAdmin)
	messages.Delete("/{id}", "messages.delete", d.Admin.DeleteMessage, d.RequireAdmin)

	admin := api.Group("/admin")
	admin.Post("/login", "admin.login", d.Admin.Login)

	guarded := admin.Group("/", d.RequireAdmin)
	guarded.Get("/stats", "admin.stats", d.Admin.Stats)
	guarded.Get("/users", "admin.users", d.Admin.Users)
	guarded.Delete("/users/{id}", "admin.users.delete", d.Admin.DeleteUser)
	guarded.Get("/properties", "admin.properties", d.Admin.Properties)
	guarded.Delete("/properties/{id}", "admin.properties.delete", d.Admin.DeleteProperty)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, fmt.Sprintf("not found - %s", req.URL.Path))
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
