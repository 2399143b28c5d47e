package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbot/backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	api.Post("/register", userHandler.Register)
	api.Post("/login", userHandler.Login)
	api.Get("/users", userHandler.ListUsers)

	// Preference writes accept PUT and POST; some frontends send either.
	api.Get("/user/:id/preferences", userHandler.GetPreferences)
	api.Put("/user/:id/preferences", userHandler.SavePreferences)
	api.Post("/user/:id/preferences", userHandler.SavePreferences)

	// Session transcripts are read-only here; the tutoring flow writes them.
	api.Get("/sessions/:user_id", sessionHandler.ListSessions)
	api.Get("/sessions/:user_id/:session_id", sessionHandler.GetSession)
}
