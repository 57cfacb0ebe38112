package snapshot

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SnapshotApi struct {
	Controller *SnapshotController
	Config     *config.Config
}

func NewSnapshotApi(controller *SnapshotController, cfg *config.Config) api.Route {
	return &SnapshotApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *SnapshotApi) Setup(app *fiber.App) {
	group := app.Group("/api/projects/business/snapshots", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListSnapshots)
	group.Post("/", a.Controller.TakeSnapshot)
}
