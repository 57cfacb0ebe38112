package project

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectApi struct {
	Controller *ProjectController
	Config     *config.Config
}

func NewProjectApi(controller *ProjectController, cfg *config.Config) api.Route {
	return &ProjectApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *ProjectApi) Setup(app *fiber.App) {
	group := app.Group("/api/projects/business/projects", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/", a.Controller.CreateProject)
	group.Get("/", a.Controller.ListProjects)
	group.Get("/:id", a.Controller.GetProject)
}
