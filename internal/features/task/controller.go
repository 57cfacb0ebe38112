package task

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type TaskController struct {
	Service TaskService
}

func NewTaskController(service TaskService) *TaskController {
	return &TaskController{
		Service: service,
	}
}

// CreateTask godoc
// @Summary Create task
// @Description Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body Task true "Task"
// @Success 201 {object} Task
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var task Task
	if err := ctx.BodyParser(&task); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.Service.CreateTask(ctx.UserContext(), &task); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks godoc
// @Summary List recent tasks
// @Description List recent open tasks, newest first
// @Tags tasks
// @Produce json
// @Param limit query int false "Max items (1-20, default 5)"
// @Success 200 {array} Task
// @Failure 500 {object} map[string]interface{}
// @Router /api/tasks [get]
func (c *TaskController) ListTasks(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "5"), 10, 64)

	tasks, err := c.Service.ListRecentTasks(ctx.UserContext(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return ctx.JSON(tasks)
}
