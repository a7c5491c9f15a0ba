/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/auth/*        Login, logout, change password
  /api/employees/*   Roster management (gated)
  /api/vacations/*   Vacation periods (gated)
  /api/ranking/*     Scoring and export (gated)
  /api/dashboard     Overview metrics (gated)

AUTHENTICATION:
  Everything except login, logout, and the health check sits behind
  auth.RequireAuth, mirroring the login-gated pages this API replaces.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		// Everything below requires a session
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuth)

			r.Post("/auth/password", h.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)
				r.Get("/{id}", h.GetEmployee)
				r.Delete("/{id}", h.DeleteEmployee)
				r.Get("/{id}/vacations", h.ListEmployeeVacations)
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Get("/", h.ListVacations)
				r.Post("/", h.CreateVacation)
				r.Delete("/{id}", h.DeleteVacation)
				r.Get("/{id}/points", h.GetVacationPoints)
			})

			r.Route("/ranking", func(r chi.Router) {
				r.Get("/", h.GetRanking)
				r.Get("/export", h.ExportRanking)
				r.Get("/weights", h.GetWeights)
			})

			r.Get("/dashboard", h.GetDashboard)
		})
	})

	// Minimal index page so hitting the root in a browser is not a 404.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Vacation Manager</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Vacation Manager API</h1>
<p>Log in via <code>POST /api/auth/login</code>, then explore:</p>
<ul>
<li><code>/api/employees</code> - Roster</li>
<li><code>/api/vacations</code> - Vacation periods</li>
<li><code>/api/ranking</code> - Point ranking</li>
<li><code>/api/dashboard</code> - Overview</li>
</ul>
</body>
</html>`))
	})

	return r
}
