package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the route handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth         *AuthHandler
	Destinations *DestinationHandler
	Activities   *ActivityHandler
}

// RegisterRoutes mounts the public read routes and, behind authenticate, the
// mutating routes on r.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)

	r.Get("/destinations", h.Destinations.List)
	r.Get("/destinations/{"+paramID+"}", h.Destinations.Get)
	r.Get("/{"+paramID+"}", h.Destinations.Get)
	r.Get("/{"+paramID+"}/{"+paramActivityID+"}", h.Activities.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/destinations", h.Destinations.Create)
		r.Post("/destinations/{"+paramID+"}", h.Destinations.Create)
		r.Patch("/destinations/{"+paramID+"}", h.Destinations.Update)
		r.Delete("/destinations/{"+paramID+"}", h.Destinations.Delete)

		r.Post("/activities/{"+paramDestinationID+"}", h.Activities.Append)
		r.Patch("/activities/{"+paramDestinationID+"}/{"+paramActivityID+"}", h.Activities.Update)
		r.Delete("/activities/{"+paramDestinationID+"}/{"+paramActivityID+"}", h.Activities.Remove)
	})
}
