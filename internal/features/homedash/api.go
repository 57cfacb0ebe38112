package homedash

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	Controller *DashboardController
	Config     *config.Config
}

func NewDashboardApi(controller *DashboardController, cfg *config.Config) api.Route {
	return &DashboardApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/users/me/home-dashboard", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.GetDashboard)
	group.Put("/", a.Controller.SaveDashboard)
	group.Get("/data", a.Controller.GetDashboardData)
	group.Get("/catalog", a.Controller.GetCatalog)
	group.Post("/widgets", a.Controller.AddWidget)
	group.Delete("/widgets/:id", a.Controller.RemoveWidget)
	group.Put("/widgets/:id", a.Controller.ReconfigureWidget)
	group.Post("/reset", a.Controller.ResetDashboard)
}
