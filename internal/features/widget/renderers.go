package widget

import (
	"context"
	"fmt"
	"strings"

	"go-bizops/internal/common/models"
	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"
	"go-bizops/pkg/chartsvg"

	"go.uber.org/zap"
)

// KpiPayload is the rendered output of one KPI card.
type KpiPayload struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Format    string  `json:"format"`
	Period    string  `json:"period"`
}

// divisionFromContext returns the division the request was scoped to via the
// X-Bizops-Division header, used when a widget config has no division filter
// of its own.
func divisionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(models.DivisionIDKey).(string); ok {
		return v
	}
	return ""
}

func (r *Registry) renderKPI(ctx context.Context, config map[string]interface{}) (interface{}, error) {
	var cfg KpiConfig
	decodeConfig(config, &cfg)
	cfg.applyDefaults()
	if cfg.Division == "" {
		cfg.Division = divisionFromContext(ctx)
	}

	dateFrom, dateTo := CalculateDateRange(cfg.Period, cfg.CustomStart, cfg.CustomEnd)

	mode := business.ModeQuantity
	if cfg.Metric == "opportunities_value" || cfg.Metric == "projects_value" || cfg.Metric == "profit" {
		mode = business.ModeValue
	}

	q := business.SummaryQuery{
		DivisionID: cfg.Division,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Mode:       mode,
	}
	if cfg.Status != "" {
		q.Statuses = []string{cfg.Status}
	}

	summary, err := r.Source.DashboardSummary(ctx, q)
	if err != nil {
		return nil, err
	}

	byStatus := summary.ProjectsByStatus
	if strings.HasPrefix(cfg.Metric, "opportunities_") {
		byStatus = summary.OpportunitiesByStatus
	}

	var value float64
	for _, raw := range byStatus {
		switch v := raw.(type) {
		case business.StatusValue:
			if cfg.Metric == "profit" {
				value += v.Profit
			} else {
				value += v.FinalTotalWithGST
			}
		case map[string]interface{}:
			if cfg.Metric == "profit" {
				value += toNumber(v["profit"])
			} else {
				value += firstNumber(v, "final_total_with_gst", "opportunities_value")
			}
		default:
			value += toNumber(raw)
		}
	}

	return KpiPayload{
		Metric:    cfg.Metric,
		Value:     value,
		Formatted: formatValue(value, cfg.Format),
		Format:    cfg.Format,
		Period:    cfg.Period,
	}, nil
}

// ChartPayload carries both the normalized entries and the rendered SVG so
// clients can use either.
type ChartPayload struct {
	Metric    string            `json:"metric"`
	ChartType string            `json:"chart_type"`
	Mode      string            `json:"mode"`
	Palette   string            `json:"palette"`
	Entries   []ChartEntry      `json:"entries,omitempty"`
	Months    []string          `json:"months,omitempty"`
	Series    []chartsvg.Series `json:"series,omitempty"`
	SVG       string            `json:"svg"`
}

func (r *Registry) renderChart(ctx context.Context, config map[string]interface{}) (interface{}, error) {
	var cfg ChartConfig
	decodeConfig(config, &cfg)
	cfg.applyDefaults()
	if cfg.Division == "" {
		cfg.Division = divisionFromContext(ctx)
	}

	dateFrom, dateTo := CalculateDateRange(cfg.Period, cfg.CustomStart, cfg.CustomEnd)
	metric := business.Metric(cfg.Metric)
	colors := chartsvg.PaletteColors(cfg.Palette)

	q := business.SummaryQuery{
		DivisionID: cfg.Division,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Mode:       business.Mode(cfg.Mode),
	}

	payload := ChartPayload{
		Metric:    cfg.Metric,
		ChartType: cfg.ChartType,
		Mode:      cfg.Mode,
		Palette:   cfg.Palette,
	}

	if cfg.ChartType == "line" {
		ts, err := r.Source.Timeseries(ctx, business.TimeseriesQuery{Metric: metric, SummaryQuery: q})
		if err != nil {
			return nil, err
		}
		payload.Months = ts.Months
		payload.Series = ts.Series
		payload.SVG = chartsvg.RenderLine(ts.Months, ts.Series, colors)
		return payload, nil
	}

	var entries []ChartEntry
	if metric.IsDivisionMetric() {
		rows, err := r.Source.DivisionStats(ctx, q)
		if err != nil {
			return nil, err
		}
		entries = EntriesFromDivisionStats(rows, metric.IsOpportunityMetric(), cfg.Mode)
	} else {
		summary, err := r.Source.DashboardSummary(ctx, q)
		if err != nil {
			return nil, err
		}
		byStatus := summary.ProjectsByStatus
		if metric.IsOpportunityMetric() {
			byStatus = summary.OpportunitiesByStatus
		}
		entries = ExtractEntries(cfg.Mode, byStatus)
	}

	if cfg.Transform != "" {
		transformed, err := applyTransform(cfg.Transform, entries)
		if err != nil {
			r.Logger.Warn("chart transform failed, using raw entries", zap.Error(err))
		} else {
			entries = transformed
		}
	}

	entries = PrepareEntries(entries)
	payload.Entries = entries

	data := make([]chartsvg.Datum, 0, len(entries))
	for _, e := range entries {
		data = append(data, chartsvg.Datum{Label: e.Label, Value: e.Value, Percent: e.Percent})
	}

	switch cfg.ChartType {
	case "pie":
		payload.SVG = chartsvg.RenderPie(data, colors)
	case "donut":
		payload.SVG = chartsvg.RenderDonut(data, colors)
	default:
		payload.SVG = chartsvg.RenderBar(data, colors)
	}
	return payload, nil
}

type TaskListPayload struct {
	Items   []task.Task `json:"items"`
	ViewAll string      `json:"view_all"`
}

func (r *Registry) renderTaskList(ctx context.Context, config map[string]interface{}) (interface{}, error) {
	var cfg ListConfig
	decodeConfig(config, &cfg)
	cfg.applyDefaults()

	items, err := r.Source.RecentTasks(ctx, int64(cfg.Limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []task.Task{}
	}
	return TaskListPayload{Items: items, ViewAll: "/tasks"}, nil
}

type ProjectListPayload struct {
	Items   []project.Project `json:"items"`
	ViewAll string            `json:"view_all"`
}

func (r *Registry) renderProjectList(ctx context.Context, config map[string]interface{}) (interface{}, error) {
	var cfg ListConfig
	decodeConfig(config, &cfg)
	cfg.applyDefaults()

	items, err := r.Source.RecentProjects(ctx, int64(cfg.Limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []project.Project{}
	}
	return ProjectListPayload{Items: items, ViewAll: "/projects"}, nil
}

// Shortcut is one navigation shortcut in the shortcuts widget.
type Shortcut struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

type ShortcutsPayload struct {
	Items []Shortcut `json:"items"`
}

var shortcutPalette = []Shortcut{
	{Key: "tasks", Label: "Tasks", Icon: "check-square", Path: "/tasks"},
	{Key: "projects", Label: "Projects", Icon: "briefcase", Path: "/projects"},
	{Key: "schedule", Label: "Schedule", Icon: "calendar", Path: "/schedule"},
	{Key: "customers", Label: "Customers", Icon: "users", Path: "/customers"},
	{Key: "clock", Label: "Time Clock", Icon: "clock", Path: "/clock"},
	{Key: "dashboard", Label: "Business Dashboard", Icon: "bar-chart", Path: "/business/dashboard"},
}

func (r *Registry) renderShortcuts(config map[string]interface{}) ShortcutsPayload {
	var cfg ShortcutsConfig
	decodeConfig(config, &cfg)

	if len(cfg.Items) == 0 {
		return ShortcutsPayload{Items: shortcutPalette}
	}

	items := make([]Shortcut, 0, len(cfg.Items))
	for _, key := range cfg.Items {
		for _, s := range shortcutPalette {
			if s.Key == key {
				items = append(items, s)
				break
			}
		}
	}
	return ShortcutsPayload{Items: items}
}

// formatValue renders a KPI number. Currency gets a dollar sign, thousands
// separators and two decimals; plain numbers drop trailing zero decimals.
func formatValue(v float64, format string) string {
	if format == "currency" {
		return "$" + groupThousands(fmt.Sprintf("%.2f", v))
	}
	if v == float64(int64(v)) {
		return groupThousands(fmt.Sprintf("%d", int64(v)))
	}
	return groupThousands(fmt.Sprintf("%.2f", v))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
