package task

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskApi struct {
	Controller *TaskController
	Config     *config.Config
}

func NewTaskApi(controller *TaskController, cfg *config.Config) api.Route {
	return &TaskApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *TaskApi) Setup(app *fiber.App) {
	group := app.Group("/api/tasks", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/", a.Controller.CreateTask)
	group.Get("/", a.Controller.ListTasks)
}
