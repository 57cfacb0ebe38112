package business

import (
	"fmt"
	"strings"

	"go-bizops/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type BusinessController struct {
	Service BusinessService
}

func NewBusinessController(service BusinessService) *BusinessController {
	return &BusinessController{
		Service: service,
	}
}

func queryFromCtx(ctx *fiber.Ctx) SummaryQuery {
	mode := Mode(ctx.Query("mode", string(ModeQuantity)))
	if mode != ModeValue {
		mode = ModeQuantity
	}

	var statuses []string
	if raw := ctx.Query("statuses"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	division := ctx.Query("division_id")
	if division == "" {
		if v, ok := ctx.UserContext().Value(models.DivisionIDKey).(string); ok {
			division = v
		}
	}

	return SummaryQuery{
		DivisionID: division,
		DateFrom:   ctx.Query("date_from"),
		DateTo:     ctx.Query("date_to"),
		Mode:       mode,
		Statuses:   statuses,
	}
}

// GetDashboard godoc
// @Summary Business dashboard summary
// @Description Status-keyed counts or values for opportunities and projects
// @Tags business
// @Produce json
// @Param division_id query string false "Division filter"
// @Param date_from query string false "ISO date lower bound"
// @Param date_to query string false "ISO date upper bound"
// @Param mode query string false "quantity or value"
// @Param statuses query string false "Comma separated status labels"
// @Success 200 {object} Summary
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/dashboard [get]
func (c *BusinessController) GetDashboard(ctx *fiber.Ctx) error {
	summary, err := c.Service.GetDashboardSummary(ctx.UserContext(), queryFromCtx(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(summary)
}

// GetDivisionsStats godoc
// @Summary Division stats
// @Description Per-division counts and value aggregates
// @Tags business
// @Produce json
// @Param division_id query string false "Division filter"
// @Param date_from query string false "ISO date lower bound"
// @Param date_to query string false "ISO date upper bound"
// @Success 200 {array} DivisionStats
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/divisions-stats [get]
func (c *BusinessController) GetDivisionsStats(ctx *fiber.Ctx) error {
	stats, err := c.Service.GetDivisionStats(ctx.UserContext(), queryFromCtx(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if stats == nil {
		stats = []DivisionStats{}
	}
	return ctx.JSON(stats)
}

// GetTimeseries godoc
// @Summary Dashboard timeseries
// @Description Month-bucketed values for one metric, for line charts
// @Tags business
// @Produce json
// @Param metric query string true "opportunities_by_status, projects_by_status, opportunities_by_division or projects_by_division"
// @Param mode query string false "quantity or value"
// @Success 200 {object} Timeseries
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/dashboard-timeseries [get]
func (c *BusinessController) GetTimeseries(ctx *fiber.Ctx) error {
	q := TimeseriesQuery{
		Metric:       Metric(ctx.Query("metric", string(MetricProjectsByStatus))),
		SummaryQuery: queryFromCtx(ctx),
	}

	series, err := c.Service.GetTimeseries(ctx.UserContext(), q)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(series)
}

// ExportDashboard godoc
// @Summary Export dashboard summary
// @Description Download the current dashboard summary as an XLSX workbook
// @Tags business
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} map[string]interface{}
// @Router /api/projects/business/dashboard/export [get]
func (c *BusinessController) ExportDashboard(ctx *fiber.Ctx) error {
	q := queryFromCtx(ctx)
	summary, err := c.Service.GetDashboardSummary(ctx.UserContext(), q)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Dashboard"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &[]interface{}{"Section", "Status", "Count / Value", "Profit"})

	row := 2
	writeSection := func(section string, byStatus map[string]interface{}) {
		for label, v := range byStatus {
			cell := fmt.Sprintf("A%d", row)
			switch sv := v.(type) {
			case StatusValue:
				f.SetSheetRow(sheet, cell, &[]interface{}{section, label, sv.FinalTotalWithGST, sv.Profit})
			default:
				f.SetSheetRow(sheet, cell, &[]interface{}{section, label, v, ""})
			}
			row++
		}
	}
	writeSection("Opportunities", summary.OpportunitiesByStatus)
	writeSection("Projects", summary.ProjectsByStatus)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="business-dashboard.xlsx"`)
	return ctx.Send(buf.Bytes())
}
