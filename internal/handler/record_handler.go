package handler

import (
	"fmt"
	"os"
	"path/filepath"

	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecordHandler struct {
	records   *usecase.RecordUsecase
	uploadDir string
	log       *zap.Logger
}

func NewRecordHandler(records *usecase.RecordUsecase, uploadDir string, log *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, uploadDir: uploadDir, log: log}
}

type RecordRequest struct {
	FileID     uint   `json:"file_id" form:"file_id"`
	Type       string `json:"type" form:"type"`
	Date       string `json:"date" form:"date"`
	From       string `json:"from" form:"from"`
	To         string `json:"to" form:"to"`
	Subject    string `json:"subject" form:"subject"`
	Content    string `json:"content" form:"content"`
	Attachment string `json:"attachment" form:"-"`
	Reference  string `json:"reference" form:"reference"`
}

func (r RecordRequest) toInput() usecase.RecordInput {
	return usecase.RecordInput{
		Type:       r.Type,
		Date:       r.Date,
		From:       r.From,
		To:         r.To,
		Subject:    r.Subject,
		Content:    r.Content,
		Attachment: r.Attachment,
		Reference:  r.Reference,
	}
}

// CreateInFile handles POST /api/files/:id/records with a JSON body.
func (h *RecordHandler) CreateInFile(c *fiber.Ctx) error {
	fileID, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.records.CreateRecord(fileID, middleware.AdminID(c), req.toInput())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Record created", record)
}

// Upload handles the multipart form: file_id plus an optional attachment.
func (h *RecordHandler) Upload(c *fiber.Ctx) error {
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.FileID == 0 {
		return fail(c, fiber.StatusBadRequest, "file_id is required")
	}

	// 1. Save the attachment, if any
	var savedPath string
	if attachment, err := c.FormFile("attachment"); err == nil {
		dir := filepath.Join(h.uploadDir, "records")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return respondError(c, h.log, err)
		}
		name := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(attachment.Filename))
		savedPath = filepath.Join(dir, name)
		if err := c.SaveFile(attachment, savedPath); err != nil {
			return respondError(c, h.log, err)
		}
		req.Attachment = "/uploads/records/" + name
	}

	// 2. Create the record; an orphaned attachment is removed
	record, err := h.records.CreateRecord(req.FileID, middleware.AdminID(c), req.toInput())
	if err != nil {
		if savedPath != "" {
			if rmErr := os.Remove(savedPath); rmErr != nil {
				h.log.Warn("cannot remove attachment", zap.String("path", savedPath), zap.Error(rmErr))
			}
		}
		return respondError(c, h.log, err)
	}
	return created(c, "Record created", record)
}

// Attachment serves a stored record attachment to signed-in users.
func (h *RecordHandler) Attachment(c *fiber.Ctx) error {
	name := filepath.Base(c.Params("name"))
	if name == "." || name == string(filepath.Separator) {
		return fail(c, fiber.StatusNotFound, "attachment not found")
	}
	path := filepath.Join(h.uploadDir, "records", name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return fail(c, fiber.StatusNotFound, "attachment not found")
	}
	return c.SendFile(path)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	record, err := h.records.GetRecord(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record found", record)
}

func (h *RecordHandler) Track(c *fiber.Ctx) error {
	record, err := h.records.TrackRecord(c.Params("tracking"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record found", record)
}

func (h *RecordHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	record, err := h.records.UpdateRecord(id, req.toInput())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record updated", record)
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.records.DeleteRecord(id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record deleted", nil)
}

func (h *RecordHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	history, err := h.records.History(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record history", history)
}

type ForwardRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Notes       string `json:"notes"`
}

func (h *RecordHandler) Forward(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req ForwardRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	forward, err := h.records.Forward(id, middleware.AdminID(c), req.RecipientID, req.Notes)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Record forwarded", forward)
}

func (h *RecordHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	record, err := h.records.Complete(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Record completed", record)
}

// Inbox lists forwards addressed to the caller, optionally by status.
func (h *RecordHandler) Inbox(c *fiber.Ctx) error {
	var status model.ForwardStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := model.ParseForwardStatus(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		status = parsed
	}

	forwards, err := h.records.Inbox(middleware.AdminID(c), status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "count": len(forwards), "data": forwards})
}

func (h *RecordHandler) Outbox(c *fiber.Ctx) error {
	forwards, err := h.records.Outbox(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Sent records", forwards)
}

type ReviewRequest struct {
	Decision   string `json:"decision" validate:"required"`
	Note       string `json:"note"`
	Department string `json:"department"`
}

func (h *RecordHandler) Review(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	decision, err := model.ParseReviewDecision(req.Decision)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	forward, err := h.records.Review(id, middleware.AdminID(c), middleware.CurrentRole(c), usecase.ReviewInput{
		Decision:   decision,
		Note:       req.Note,
		Department: req.Department,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Review saved", forward)
}
