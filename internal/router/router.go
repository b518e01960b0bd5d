// Package router sets up all HTTP routes and middleware chains for the
// Folio server. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Login attempts are rate-limited per IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Admin routes: authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFAVerifySubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)
			r.Post("/migrate", admin.Migrate)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", admin.ProjectList)
				r.Get("/new", admin.ProjectNew)
				r.Post("/", admin.ProjectCreate)
				r.Post("/reset", admin.ProjectsReset)
				r.Get("/{id}", admin.ProjectEdit)
				r.Post("/{id}", admin.ProjectUpdate)
				r.Delete("/{id}", admin.ProjectDelete)
				r.Post("/{id}/toggle", admin.ProjectToggle)

				// Block editor operations.
				r.Post("/{id}/blocks/append", admin.BlockAppend)
				r.Post("/{id}/blocks/{index}/remove", admin.BlockRemove)
				r.Post("/{id}/blocks/{index}/retype", admin.BlockRetype)
				r.Post("/{id}/blocks/{index}/field", admin.BlockSetField)
				r.Post("/{id}/blocks/{index}/swap", admin.BlockSwap)
				r.Post("/{id}/blocks/{index}/move", admin.BlockMove)
			})

			r.Get("/home", admin.HomeForm)
			r.Post("/home", admin.HomeSave)

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", admin.Messages)
				r.Post("/{id}/read", admin.MessageMarkRead)
				r.Delete("/{id}", admin.MessageDelete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaPage)
				r.Post("/", admin.MediaUpload)
				r.Delete("/{id}", admin.MediaDelete)
			})

			r.Get("/contact", admin.ContactInfoForm)
			r.Post("/contact", admin.ContactInfoSave)
		})
	})

	// Public site.
	r.Get("/", public.Home)
	r.Get("/projects", public.Projects)
	r.Get("/projects/{slug}", public.ProjectDetail)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Get("/contact", public.ContactPage)
		r.Post("/contact", public.ContactSubmit)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
