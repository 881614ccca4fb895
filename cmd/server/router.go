package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/wanderlist-api/internal/api"
	apiMiddleware "github.com/phrazzld/wanderlist-api/internal/api/middleware"
	"github.com/phrazzld/wanderlist-api/internal/redact"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(app.userService, app.jwtService, app.passwordVerifier),
		Destinations: api.NewDestinationHandler(app.destinationService, app.logger),
		Activities:   api.NewActivityHandler(app.activityService),
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", redact.ErrorAttr(err))
		}
	})

	api.RegisterRoutes(r, handlers, authMiddleware.Authenticate)

	return r
}
