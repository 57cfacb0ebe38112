package widget

import (
	"context"

	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"

	"go.uber.org/zap"
)

// DataSource is everything the widget renderers fetch. The business, task
// and project services satisfy it locally; apiclient.RemoteSource satisfies
// it against a remote business API.
type DataSource interface {
	DashboardSummary(ctx context.Context, q business.SummaryQuery) (*business.Summary, error)
	DivisionStats(ctx context.Context, q business.SummaryQuery) ([]business.DivisionStats, error)
	Timeseries(ctx context.Context, q business.TimeseriesQuery) (*business.Timeseries, error)
	RecentTasks(ctx context.Context, limit int64) ([]task.Task, error)
	RecentProjects(ctx context.Context, limit int64) ([]project.Project, error)
}

// MetaFor returns the metadata for a widget type. The second return is false
// for types this build does not know.
func MetaFor(widgetType string) (Meta, bool) {
	switch widgetType {
	case TypeKPI:
		return Meta{
			Label:       "KPI Card",
			Category:    CategoryKPIs,
			DefaultSize: Size{W: 2, H: 2},
			DefaultConfig: map[string]interface{}{
				"metric": "projects_count",
				"period": "all",
				"format": "number",
			},
		}, true
	case TypeChart:
		return Meta{
			Label:       "Chart",
			Category:    CategoryCharts,
			DefaultSize: Size{W: 4, H: 4},
			DefaultConfig: map[string]interface{}{
				"metric":     "projects_by_status",
				"chart_type": "bar",
				"mode":       "quantity",
				"period":     "all",
			},
		}, true
	case TypeTaskList:
		return Meta{
			Label:         "Tasks",
			Category:      CategoryLists,
			DefaultSize:   Size{W: 2, H: 4},
			DefaultConfig: map[string]interface{}{"limit": 5},
		}, true
	case TypeProjectList:
		return Meta{
			Label:         "Projects",
			Category:      CategoryLists,
			DefaultSize:   Size{W: 2, H: 4},
			DefaultConfig: map[string]interface{}{"limit": 5},
		}, true
	case TypeShortcuts:
		return Meta{
			Label:         "Shortcuts",
			Category:      CategoryShortcuts,
			DefaultSize:   Size{W: 4, H: 1},
			DefaultConfig: map[string]interface{}{},
		}, true
	default:
		return Meta{}, false
	}
}

// CatalogItem is one entry of the widget picker catalog.
type CatalogItem struct {
	Type string `json:"type"`
	Meta
}

// Catalog lists every registered widget type in picker order.
func Catalog() []CatalogItem {
	types := []string{TypeKPI, TypeChart, TypeTaskList, TypeProjectList, TypeShortcuts}
	items := make([]CatalogItem, 0, len(types))
	for _, t := range types {
		meta, _ := MetaFor(t)
		items = append(items, CatalogItem{Type: t, Meta: meta})
	}
	return items
}

// Registry renders widget instances from their persisted type and config.
type Registry struct {
	Source DataSource
	Logger *zap.Logger
}

func NewRegistry(source DataSource, logger *zap.Logger) *Registry {
	return &Registry{
		Source: source,
		Logger: logger,
	}
}

// UnknownPayload is rendered in place of a widget whose type this build no
// longer (or does not yet) know. Persisted dashboards outlive widget types,
// so this is a placeholder, never an error.
type UnknownPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Render produces the payload for one widget instance. Fetch errors are
// returned to the caller, which records them widget-locally; an unknown type
// renders a placeholder payload instead.
func (r *Registry) Render(ctx context.Context, widgetType, title string, config map[string]interface{}) (interface{}, error) {
	switch widgetType {
	case TypeKPI:
		return r.renderKPI(ctx, config)
	case TypeChart:
		return r.renderChart(ctx, config)
	case TypeTaskList:
		return r.renderTaskList(ctx, config)
	case TypeProjectList:
		return r.renderProjectList(ctx, config)
	case TypeShortcuts:
		return r.renderShortcuts(config), nil
	default:
		return UnknownPayload{
			Type:    widgetType,
			Message: "Unknown widget type: " + widgetType,
		}, nil
	}
}
