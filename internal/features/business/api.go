package business

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BusinessApi struct {
	Controller *BusinessController
	Config     *config.Config
}

func NewBusinessApi(controller *BusinessController, cfg *config.Config) api.Route {
	return &BusinessApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *BusinessApi) Setup(app *fiber.App) {
	group := app.Group("/api/projects/business", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/dashboard", a.Controller.GetDashboard)
	group.Get("/dashboard/export", a.Controller.ExportDashboard)
	group.Get("/divisions-stats", a.Controller.GetDivisionsStats)
	group.Get("/dashboard-timeseries", a.Controller.GetTimeseries)
}
