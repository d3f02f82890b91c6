package handler

import (
	"io"
	"strings"

	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LeaveHandler struct {
	leaves *usecase.LeaveUsecase
	admins repository.AdminRepository
	log    *zap.Logger
}

func NewLeaveHandler(leaves *usecase.LeaveUsecase, admins repository.AdminRepository, log *zap.Logger) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, admins: admins, log: log}
}

type LeaveRequest struct {
	LeaveType    string `json:"leave_type" form:"leave_type" validate:"required"`
	StartDate    string `json:"start_date" form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" form:"end_date" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" form:"reason"`
	Evidence     string `json:"evidence" form:"evidence"`
	EvidenceName string `json:"evidence_name" form:"evidence_name"`
}

// Submit accepts JSON with base64 evidence or a multipart form with an
// evidence file.
func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	var req LeaveRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	leaveType, err := model.ParseLeaveType(req.LeaveType)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	in := usecase.SubmitLeaveInput{
		LeaveType:    leaveType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
		EvidenceName: req.EvidenceName,
	}

	if upload, err := c.FormFile("evidence"); err == nil {
		f, err := upload.Open()
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "cannot read evidence file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "cannot read evidence file")
		}
		in.Evidence = data
		in.EvidenceName = upload.Filename
		in.EvidenceMime = upload.Header.Get("Content-Type")
	} else if strings.TrimSpace(req.Evidence) != "" {
		data, mime, err := usecase.DecodeEvidence(req.Evidence)
		if err != nil {
			return respondError(c, h.log, err)
		}
		in.Evidence = data
		in.EvidenceMime = mime
	}

	leave, err := h.leaves.Submit(middleware.AdminID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Leave application submitted", usecase.ToLeaveView(*leave))
}

func (h *LeaveHandler) Mine(c *fiber.Ctx) error {
	leaves, err := h.leaves.ForEmployee(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Leave applications", usecase.ToLeaveViews(leaves))
}

func (h *LeaveHandler) ForEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	leaves, err := h.leaves.ForEmployee(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Leave applications", usecase.ToLeaveViews(leaves))
}

func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	leave, err := h.leaves.Cancel(id, middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Leave application cancelled", usecase.ToLeaveView(*leave))
}

// List is the reviewer queue. HODs only see their own department.
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	reviewer, err := currentAdmin(c, h.admins)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var status model.LeaveStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := model.ParseLeaveStatus(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		status = parsed
	}

	leaves, err := h.leaves.List(reviewer, status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Leave applications", usecase.ToLeaveViews(leaves))
}

type LeaveDecisionRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req LeaveDecisionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	status, err := model.ParseLeaveStatus(req.Status)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	reviewer, err := currentAdmin(c, h.admins)
	if err != nil {
		return respondError(c, h.log, err)
	}

	leave, err := h.leaves.Decide(id, reviewer, status, req.Note)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Leave application "+string(status), usecase.ToLeaveView(*leave))
}
