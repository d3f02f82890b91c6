package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupFileRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewRecordUsecase(deps.DB, deps.Notifier, deps.Log)
	hdl := handler.NewFileHandler(uc, deps.Log)
	recordHdl := handler.NewRecordHandler(uc, deps.Config.UploadDir, deps.Log)
	manage := middleware.Permission(model.PermManageFiles)

	api := app.Group("/api/files", middleware.Auth(deps.Tokens))

	api.Get("/", hdl.List)
	api.Get("/tree", hdl.Tree)
	api.Get("/:id", hdl.Get)

	// Registry
	api.Post("/", manage, hdl.Create)
	api.Put("/:id", manage, hdl.Update)
	api.Delete("/:id", manage, hdl.Delete)
	api.Post("/:id/records", manage, recordHdl.CreateInFile)
}
