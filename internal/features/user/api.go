package user

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	Controller *UserController
	Config     *config.Config
}

func NewUserApi(controller *UserController, cfg *config.Config) api.Route {
	return &UserApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/me", a.Controller.GetMe)
}
