package snapshot

import (
	"github.com/gofiber/fiber/v2"
)

type SnapshotController struct {
	Service SnapshotService
}

func NewSnapshotController(service SnapshotService) *SnapshotController {
	return &SnapshotController{
		Service: service,
	}
}

// ListSnapshots godoc
// @Summary List business snapshots
// @Description Daily dashboard aggregates, newest first
// @Tags snapshots
// @Produce json
// @Param limit query int false "Max rows (default 30)"
// @Success 200 {array} Snapshot
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/snapshots [get]
func (c *SnapshotController) ListSnapshots(ctx *fiber.Ctx) error {
	snapshots, err := c.Service.ListSnapshots(ctx.UserContext(), int64(ctx.QueryInt("limit", 30)))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return ctx.JSON(snapshots)
}

// TakeSnapshot godoc
// @Summary Take a snapshot now
// @Description Capture today's dashboard aggregates outside the schedule
// @Tags snapshots
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/snapshots [post]
func (c *SnapshotController) TakeSnapshot(ctx *fiber.Ctx) error {
	snapshot, err := c.Service.TakeSnapshot(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(snapshot)
}
