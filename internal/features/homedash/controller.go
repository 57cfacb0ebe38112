package homedash

import (
	"errors"

	"go-bizops/internal/features/widget"
	"go-bizops/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{
		Service: service,
	}
}

func userIDFromCtx(ctx *fiber.Ctx) (string, error) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok || claims.UserID == "" {
		return "", errors.New("missing user claims")
	}
	return claims.UserID, nil
}

// GetDashboard godoc
// @Summary Get home dashboard
// @Description Get the caller's dashboard layout and widgets, or the default when none is saved
// @Tags home-dashboard
// @Produce json
// @Success 200 {object} DashboardState
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard [get]
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := c.Service.GetDashboard(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(state)
}

// SaveDashboard godoc
// @Summary Save home dashboard
// @Description Replace the caller's dashboard layout and widgets wholesale
// @Tags home-dashboard
// @Accept json
// @Produce json
// @Param state body DashboardState true "Dashboard state"
// @Success 200 {object} DashboardState
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard [put]
func (c *DashboardController) SaveDashboard(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var state DashboardState
	if err := ctx.BodyParser(&state); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.SaveDashboard(ctx.UserContext(), userID, state); err != nil {
		if errors.Is(err, ErrSaveInFlight) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(state)
}

// GetDashboardData godoc
// @Summary Get rendered widget data
// @Description Render every widget of the caller's dashboard; failures are reported per widget
// @Tags home-dashboard
// @Produce json
// @Success 200 {object} map[string]WidgetData
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard/data [get]
func (c *DashboardController) GetDashboardData(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := c.Service.GetDashboardData(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(data)
}

// GetCatalog godoc
// @Summary List available widget types
// @Tags home-dashboard
// @Produce json
// @Success 200 {array} widget.CatalogItem
// @Router /api/users/me/home-dashboard/catalog [get]
func (c *DashboardController) GetCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(widget.Catalog())
}

type addWidgetRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// AddWidget godoc
// @Summary Add a widget
// @Description Append a widget of the given type at the bottom of the grid
// @Tags home-dashboard
// @Accept json
// @Produce json
// @Param widget body addWidgetRequest true "Widget type and optional title"
// @Success 200 {object} DashboardState
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard/widgets [post]
func (c *DashboardController) AddWidget(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req addWidgetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := c.Service.AddWidget(ctx.UserContext(), userID, req.Type, req.Title)
	if err != nil {
		return c.mutationError(ctx, err)
	}
	return ctx.JSON(state)
}

// RemoveWidget godoc
// @Summary Remove a widget
// @Description Remove a widget from both layout and widgets; unknown ids are a no-op
// @Tags home-dashboard
// @Produce json
// @Param id path string true "Widget id"
// @Success 200 {object} DashboardState
// @Failure 409 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard/widgets/{id} [delete]
func (c *DashboardController) RemoveWidget(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := c.Service.RemoveWidget(ctx.UserContext(), userID, ctx.Params("id"))
	if err != nil {
		return c.mutationError(ctx, err)
	}
	return ctx.JSON(state)
}

type reconfigureRequest struct {
	Title  *string                `json:"title"`
	Config map[string]interface{} `json:"config"`
}

// ReconfigureWidget godoc
// @Summary Reconfigure a widget
// @Description Replace a widget's config and optionally its title; layout is untouched
// @Tags home-dashboard
// @Accept json
// @Produce json
// @Param id path string true "Widget id"
// @Param changes body reconfigureRequest true "New title and config"
// @Success 200 {object} DashboardState
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard/widgets/{id} [put]
func (c *DashboardController) ReconfigureWidget(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req reconfigureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := c.Service.ReconfigureWidget(ctx.UserContext(), userID, ctx.Params("id"), req.Title, req.Config)
	if err != nil {
		return c.mutationError(ctx, err)
	}
	return ctx.JSON(state)
}

// ResetDashboard godoc
// @Summary Reset the dashboard
// @Description Replace the caller's dashboard with the default and persist immediately
// @Tags home-dashboard
// @Produce json
// @Success 200 {object} DashboardState
// @Failure 409 {object} map[string]interface{}
// @Router /api/users/me/home-dashboard/reset [post]
func (c *DashboardController) ResetDashboard(ctx *fiber.Ctx) error {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := c.Service.ResetDashboard(ctx.UserContext(), userID)
	if err != nil {
		return c.mutationError(ctx, err)
	}
	return ctx.JSON(state)
}

func (c *DashboardController) mutationError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrSaveInFlight):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUnknownWidgetType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
