package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{
		Service: service,
	}
}

// GetBusinessSettings godoc
// @Summary Get business settings
// @Description Get status labels and divisions used by dashboard filters
// @Tags settings
// @Produce json
// @Success 200 {object} Settings
// @Failure 500 {object} map[string]interface{}
// @Router /api/settings [get]
func (c *SettingsController) GetBusinessSettings(ctx *fiber.Ctx) error {
	settings, err := c.Service.GetBusinessSettings(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(settings)
}

// UpdateBusinessSettings godoc
// @Summary Update business settings
// @Description Replace status labels and divisions
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body Settings true "Business Settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/settings [put]
func (c *SettingsController) UpdateBusinessSettings(ctx *fiber.Ctx) error {
	var settings Settings
	if err := ctx.BodyParser(&settings); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.UpdateBusinessSettings(ctx.UserContext(), settings); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Settings updated successfully"})
}
