package project

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ProjectController struct {
	Service ProjectService
}

func NewProjectController(service ProjectService) *ProjectController {
	return &ProjectController{
		Service: service,
	}
}

// CreateProject godoc
// @Summary Create project
// @Description Create a new project or opportunity record
// @Tags projects
// @Accept json
// @Produce json
// @Param project body Project true "Project"
// @Success 201 {object} Project
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/projects [post]
func (c *ProjectController) CreateProject(ctx *fiber.Ctx) error {
	var project Project
	if err := ctx.BodyParser(&project); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.Service.CreateProject(ctx.UserContext(), &project); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(project)
}

// GetProject godoc
// @Summary Get project
// @Description Get one project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Project
// @Failure 404 {object} map[string]interface{}
// @Router /api/projects/business/projects/{id} [get]
func (c *ProjectController) GetProject(ctx *fiber.Ctx) error {
	project, err := c.Service.GetProject(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(project)
}

// ListProjects godoc
// @Summary List recent projects
// @Description List recent projects, newest first
// @Tags projects
// @Produce json
// @Param limit query int false "Max items (1-20, default 5)"
// @Success 200 {array} Project
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/projects [get]
func (c *ProjectController) ListProjects(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "5"), 10, 64)

	projects, err := c.Service.ListRecentProjects(ctx.UserContext(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if projects == nil {
		projects = []Project{}
	}
	return ctx.JSON(projects)
}
