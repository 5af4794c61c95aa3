package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"notes-service/internal/handler"
	"notes-service/pkg/middleware"
)

func SetupRoutes(
	r chi.Router,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	auth *middleware.AuthMiddleware,
) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/users", func(api chi.Router) {
		// ---------------- Public ----------------
		api.Group(func(pub chi.Router) {
			pub.Post("/signup", authHandler.Signup)
			pub.Post("/request-otp", authHandler.RequestOTP)
			pub.Post("/verify-otp", authHandler.VerifyOTP)
			pub.Post("/login", authHandler.Login)
			pub.Post("/google-login", authHandler.GoogleLogin)
			pub.Post("/forgot-password", authHandler.ForgotPassword)
			pub.Post("/verify-reset-otp", authHandler.VerifyResetOTP)
			pub.Get("/validate-token", authHandler.ValidateToken)
		})

		// ---------------- Password reset ----------------
		api.Group(func(g chi.Router) {
			g.Use(auth.RequireResetAuth)
			g.Post("/reset-password", authHandler.ResetPassword)
		})

		// ---------------- Authenticated ----------------
		api.Group(func(g chi.Router) {
			g.Use(auth.RequireSession)
			g.Get("/me", authHandler.Me)
			g.Post("/change-password", authHandler.ChangePassword)
		})
	})

	r.Route("/api/notes", func(api chi.Router) {
		api.Use(auth.RequireSession)
		api.Post("/", noteHandler.Create)
		api.Get("/", noteHandler.List)
		api.Get("/{id}", noteHandler.Get)
		api.Put("/{id}", noteHandler.Update)
		api.Delete("/{id}", noteHandler.Delete)
	})

	return r
}
