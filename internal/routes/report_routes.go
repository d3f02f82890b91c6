package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, deps Deps) {
	leaves := usecase.NewLeaveUsecase(deps.DB, deps.Notifier, deps.Log)
	dashboard := usecase.NewDashboardUsecase(deps.DB)
	hdl := handler.NewReportHandler(leaves, dashboard, repository.NewAdminRepository(deps.DB), deps.Log)

	api := app.Group("/api/reports", middleware.Auth(deps.Tokens))
	api.Get("/leaves", middleware.Permission(model.PermViewReports), hdl.LeaveRecap)
	api.Get("/tasks", middleware.Role(model.RoleSuperAdmin, model.RoleBoss, model.RoleHumanResource, model.RoleHOD), hdl.TaskRecap)
}
