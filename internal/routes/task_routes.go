package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewTaskUsecase(deps.DB, deps.Notifier, deps.Log)
	hdl := handler.NewTaskHandler(uc, repository.NewAdminRepository(deps.DB), deps.Log)
	assign := middleware.Permission(model.PermAssignTask)

	api := app.Group("/api/tasks", middleware.Auth(deps.Tokens))

	// Assignee
	api.Get("/mine", hdl.Mine)
	api.Get("/finished/mine", hdl.FinishedMine)
	api.Put("/:id/status", hdl.UpdateStatus)

	// Assigners
	api.Post("/", assign, hdl.Assign)
	api.Get("/employee/:id", assign, hdl.ForEmployee)
	api.Get("/finished/employee/:id", assign, hdl.FinishedForEmployee)
	api.Delete("/:id", assign, hdl.Delete)
}
