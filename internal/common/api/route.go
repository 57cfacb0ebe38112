package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's API type so Fx can collect them
// into one group and register them against the app in a single pass.
type Route interface {
	Setup(app *fiber.App)
}
