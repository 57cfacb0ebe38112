package settings

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	Controller *SettingsController
	Config     *config.Config
}

func NewSettingsApi(controller *SettingsController, cfg *config.Config) api.Route {
	return &SettingsApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/settings", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.GetBusinessSettings)
	group.Put("/", a.Controller.UpdateBusinessSettings)
}
