package auth

import (
	"go-bizops/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	Controller *AuthController
}

func NewAuthApi(controller *AuthController) api.Route {
	return &AuthApi{
		Controller: controller,
	}
}

func (a *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/register", a.Controller.Register)
	group.Post("/login", a.Controller.Login)
}
