package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewDashboardUsecase(deps.DB)
	hdl := handler.NewDashboardHandler(uc, repository.NewAdminRepository(deps.DB), deps.Log)

	app.Get("/api/dashboard", middleware.Auth(deps.Tokens), hdl.GetStats)
}
