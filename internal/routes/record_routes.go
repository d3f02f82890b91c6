package routes

import (
	"office-records-backend/internal/handler"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupRecordRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewRecordUsecase(deps.DB, deps.Notifier, deps.Log)
	hdl := handler.NewRecordHandler(uc, deps.Config.UploadDir, deps.Log)
	auth := middleware.Auth(deps.Tokens)
	manage := middleware.Permission(model.PermManageFiles)
	forward := middleware.Permission(model.PermForwardRecord)

	// Multipart upload used by the registry form
	app.Post("/apis/records", auth, manage, hdl.Upload)
	app.Get("/uploads/records/:name", auth, hdl.Attachment)

	records := app.Group("/api/records", auth)
	records.Get("/track/:tracking", hdl.Track)
	records.Get("/:id", hdl.Get)
	records.Get("/:id/history", hdl.History)
	records.Put("/:id", manage, hdl.Update)
	records.Delete("/:id", manage, hdl.Delete)
	records.Post("/:id/forward", forward, hdl.Forward)
	records.Post("/:id/complete", manage, hdl.Complete)

	// Recipient inbox and sender outbox
	forwarded := app.Group("/api/forwarded", auth)
	forwarded.Get("/", hdl.Inbox)
	forwarded.Get("/sent", hdl.Outbox)
	forwarded.Post("/:id/review", hdl.Review)
}
