package handler

import (
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks  *usecase.TaskUsecase
	admins repository.AdminRepository
	log    *zap.Logger
}

func NewTaskHandler(tasks *usecase.TaskUsecase, admins repository.AdminRepository, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, admins: admins, log: log}
}

type AssignTaskRequest struct {
	EmployeeID  uint   `json:"employee_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    string `json:"priority"`
}

func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	var req AssignTaskRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	priority, err := model.ParseTaskPriority(req.Priority)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Assign(middleware.AdminID(c), usecase.AssignTaskInput{
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Task assigned", task)
}

func (h *TaskHandler) Mine(c *fiber.Ctx) error {
	tasks, err := h.tasks.ForEmployee(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Tasks", tasks)
}

func (h *TaskHandler) ForEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	tasks, err := h.tasks.ForEmployee(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Tasks", tasks)
}

func (h *TaskHandler) FinishedMine(c *fiber.Ctx) error {
	finished, err := h.tasks.FinishedForEmployee(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Finished tasks", finished)
}

func (h *TaskHandler) FinishedForEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	finished, err := h.tasks.FinishedForEmployee(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Finished tasks", finished)
}

type TaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req TaskStatusRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	status, err := model.ParseTaskStatus(req.Status)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	actor, err := currentAdmin(c, h.admins)
	if err != nil {
		return respondError(c, h.log, err)
	}

	result, err := h.tasks.UpdateStatus(id, actor, status, req.Note)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if result.Finished != nil {
		return ok(c, "Task completed", result)
	}
	return ok(c, "Task status updated", result)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.tasks.Delete(id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Task deleted", nil)
}
