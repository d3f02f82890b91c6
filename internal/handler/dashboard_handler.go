package handler

import (
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard *usecase.DashboardUsecase
	admins    repository.AdminRepository
	log       *zap.Logger
}

func NewDashboardHandler(dashboard *usecase.DashboardUsecase, admins repository.AdminRepository, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, admins: admins, log: log}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	admin, err := currentAdmin(c, h.admins)
	if err != nil {
		return respondError(c, h.log, err)
	}

	stats, err := h.dashboard.Dashboard(admin)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Dashboard", stats)
}
