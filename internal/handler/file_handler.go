package handler

import (
	"strconv"

	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FileHandler struct {
	records *usecase.RecordUsecase
	log     *zap.Logger
}

func NewFileHandler(records *usecase.RecordUsecase, log *zap.Logger) *FileHandler {
	return &FileHandler{records: records, log: log}
}

type FileRequest struct {
	FileNumber  string `json:"file_number" form:"file_number"`
	Name        string `json:"name" form:"name"`
	Type        string `json:"type" form:"type"`
	Description string `json:"description" form:"description"`
}

func (r FileRequest) toInput() (usecase.FileInput, error) {
	in := usecase.FileInput{FileNumber: r.FileNumber, Name: r.Name, Description: r.Description}
	if r.Type != "" {
		fileType, err := model.ParseFileType(r.Type)
		if err != nil {
			return in, err
		}
		in.Type = fileType
	}
	return in, nil
}

func (h *FileHandler) Create(c *fiber.Ctx) error {
	var req FileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.FileNumber == "" || req.Name == "" || req.Type == "" {
		return fail(c, fiber.StatusBadRequest, "file_number, name and type are required")
	}
	in, err := req.toInput()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := h.records.CreateFile(middleware.AdminID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "File created", file)
}

func (h *FileHandler) List(c *fiber.Ctx) error {
	filter, err := fileFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	files, err := h.records.ListFiles(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Files", files)
}

func (h *FileHandler) Tree(c *fiber.Ctx) error {
	filter, err := fileFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	tree, err := h.records.FileTree(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "File tree", tree)
}

func (h *FileHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	file, err := h.records.GetFile(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "File found", file)
}

func (h *FileHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req FileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	in, err := req.toInput()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := h.records.UpdateFile(id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "File updated", file)
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.records.DeleteFile(id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "File deleted", nil)
}

func fileFilter(c *fiber.Ctx) (repository.FileFilter, error) {
	var filter repository.FileFilter
	if raw := c.Query("type"); raw != "" {
		fileType, err := model.ParseFileType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = fileType
	}
	if raw := c.Query("owner"); raw != "" {
		owner, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.OwnerID = uint(owner)
	}
	return filter, nil
}
