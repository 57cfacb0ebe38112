package system

import (
	"go-bizops/internal/common/api"
	"go-bizops/internal/config"
	"go-bizops/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SystemApi struct {
	Hub    *Hub
	Config *config.Config
}

func NewSystemApi(hub *Hub, cfg *config.Config) api.Route {
	return &SystemApi{
		Hub:    hub,
		Config: cfg,
	}
}

func (a *SystemApi) Setup(app *fiber.App) {
	app.Get("/health", a.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Browsers cannot set an Authorization header on a websocket upgrade,
	// so the token rides in the query string.
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userID := "dev-admin-id"
		if !a.Config.SkipAuth {
			claims, err := utils.ValidateToken(conn.Query("token"))
			if err != nil {
				conn.Close()
				return
			}
			userID = claims.UserID
		}
		a.Hub.Serve(userID, conn)
	}))
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (a *SystemApi) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}
