package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewAdminUsecase(deps.DB, deps.Notifier, deps.Log)
	hdl := handler.NewAdminHandler(uc, deps.Log)
	auth := middleware.Auth(deps.Tokens)
	manage := middleware.Permission(model.PermManageAdmins)

	admins := app.Group("/api/admins", auth, manage)
	admins.Post("/", hdl.Create)
	admins.Get("/", hdl.List)
	admins.Get("/:id", hdl.Get)
	admins.Put("/:id", hdl.Update)
	admins.Put("/:id/login", hdl.UpdateLogin)
	admins.Delete("/:id", hdl.Delete)

	departments := app.Group("/api/departments", auth)
	departments.Get("/", hdl.ListDepartments)
	departments.Post("/", manage, hdl.CreateDepartment)
	departments.Put("/:id/hod", manage, hdl.AssignHOD)
}
