package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaveRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewLeaveUsecase(deps.DB, deps.Notifier, deps.Log)
	hdl := handler.NewLeaveHandler(uc, repository.NewAdminRepository(deps.DB), deps.Log)
	review := middleware.Permission(model.PermReviewLeave)

	api := app.Group("/api/leaves", middleware.Auth(deps.Tokens))

	// Employee
	api.Post("/", hdl.Submit)
	api.Get("/mine", hdl.Mine)
	api.Put("/:id/cancel", hdl.Cancel)

	// Reviewers
	api.Get("/", review, hdl.List)
	api.Get("/employee/:id", review, hdl.ForEmployee)
	api.Post("/:id/decision", review, hdl.Decide)
}
