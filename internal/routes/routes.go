package routes

import (
	"office-records-backend/config"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the route setup functions need to build handlers.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Tokens   *usecase.TokenManager
	Notifier *notify.Notifier
	Log      *zap.Logger
}

func Setup(app *fiber.App, deps Deps) {
	SetupAuthRoutes(app, deps)
	SetupAdminRoutes(app, deps)
	SetupFileRoutes(app, deps)
	SetupRecordRoutes(app, deps)
	SetupLeaveRoutes(app, deps)
	SetupTaskRoutes(app, deps)
	SetupDashboardRoutes(app, deps)
	SetupReportRoutes(app, deps)
}
