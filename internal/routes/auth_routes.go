package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, deps Deps) {
	repo := repository.NewAdminRepository(deps.DB)
	uc := usecase.NewAuthUsecase(repo, deps.Tokens, deps.Log)
	hdl := handler.NewAuthHandler(uc, deps.Config.CookieSecure, deps.Log)
	auth := middleware.Auth(deps.Tokens)

	api := app.Group("/api/auth")

	// Public
	api.Post("/login", hdl.Login)
	app.Post("/apis/logins", hdl.Login)

	// Session
	api.Get("/check", auth, hdl.Check)
	api.Post("/check", auth, hdl.Check)
	api.Post("/logout", hdl.Logout)
	api.Post("/refresh", auth, hdl.Refresh)
	api.Put("/password", auth, hdl.ChangePassword)
}
