package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the HTTP surface: public auth endpoints and
// token-protected note endpoints.
func NewRouter(authHandler *AuthHandler, notesHandler *NotesHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/request-otp", authHandler.RequestOtp)
		r.Post("/verify-otp", authHandler.VerifyOtp)
		r.Post("/google", authHandler.GoogleLogin)

		r.With(AuthMiddleware).Get("/me", authHandler.Me)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/", notesHandler.List)
		r.Post("/", notesHandler.Create)
		r.Delete("/{id}", notesHandler.Delete)
	})

	return r
}
