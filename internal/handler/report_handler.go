package handler

import (
	"time"

	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportHandler struct {
	leaves    *usecase.LeaveUsecase
	dashboard *usecase.DashboardUsecase
	admins    repository.AdminRepository
	log       *zap.Logger
}

func NewReportHandler(leaves *usecase.LeaveUsecase, dashboard *usecase.DashboardUsecase, admins repository.AdminRepository, log *zap.Logger) *ReportHandler {
	return &ReportHandler{leaves: leaves, dashboard: dashboard, admins: admins, log: log}
}

// LeaveRecap sums approved leave days per employee. Year defaults to the
// current one; month=0 covers the whole year.
func (h *ReportHandler) LeaveRecap(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	report, err := h.leaves.Report(year, month)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"year":    year,
		"month":   month,
		"data":    report,
	})
}

func (h *ReportHandler) TaskRecap(c *fiber.Ctx) error {
	admin, err := currentAdmin(c, h.admins)
	if err != nil {
		return respondError(c, h.log, err)
	}
	stats, err := h.dashboard.TaskReport(admin)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Task report", stats)
}
