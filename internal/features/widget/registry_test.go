package widget

import (
	"context"
	"strings"
	"testing"

	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"

	"go.uber.org/zap"
)

type stubSource struct {
	summary  *business.Summary
	stats    []business.DivisionStats
	series   *business.Timeseries
	tasks    []task.Task
	projects []project.Project
}

func (s *stubSource) DashboardSummary(ctx context.Context, q business.SummaryQuery) (*business.Summary, error) {
	return s.summary, nil
}

func (s *stubSource) DivisionStats(ctx context.Context, q business.SummaryQuery) ([]business.DivisionStats, error) {
	return s.stats, nil
}

func (s *stubSource) Timeseries(ctx context.Context, q business.TimeseriesQuery) (*business.Timeseries, error) {
	return s.series, nil
}

func (s *stubSource) RecentTasks(ctx context.Context, limit int64) ([]task.Task, error) {
	return s.tasks, nil
}

func (s *stubSource) RecentProjects(ctx context.Context, limit int64) ([]project.Project, error) {
	return s.projects, nil
}

func newTestRegistry(src DataSource) *Registry {
	return NewRegistry(src, zap.NewNop())
}

func TestRenderUnknownTypeIsPlaceholderNotError(t *testing.T) {
	r := newTestRegistry(&stubSource{})

	got, err := r.Render(context.Background(), "weather", "Weather", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, ok := got.(UnknownPayload)
	if !ok {
		t.Fatalf("payload type = %T, want UnknownPayload", got)
	}
	if payload.Type != "weather" {
		t.Errorf("Type = %q, want weather", payload.Type)
	}
}

func TestRenderKPISumsAcrossStatuses(t *testing.T) {
	r := newTestRegistry(&stubSource{
		summary: &business.Summary{
			OpportunitiesByStatus: map[string]interface{}{},
			ProjectsByStatus: map[string]interface{}{
				"Won":  business.StatusValue{FinalTotalWithGST: 1000, Profit: 200},
				"Open": business.StatusValue{FinalTotalWithGST: 500, Profit: 100},
			},
		},
	})

	got, err := r.Render(context.Background(), TypeKPI, "Revenue", map[string]interface{}{
		"metric": "projects_value",
		"format": "currency",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := got.(KpiPayload)
	if payload.Value != 1500 {
		t.Errorf("Value = %v, want 1500", payload.Value)
	}
	if payload.Formatted != "$1,500.00" {
		t.Errorf("Formatted = %q, want $1,500.00", payload.Formatted)
	}
}

func TestRenderChartDefaultsAndSVG(t *testing.T) {
	r := newTestRegistry(&stubSource{
		summary: &business.Summary{
			ProjectsByStatus: map[string]interface{}{
				"Active": float64(3),
				"Done":   float64(7),
			},
		},
	})

	// Broken chart_type and mode fall back to bar/quantity.
	got, err := r.Render(context.Background(), TypeChart, "", map[string]interface{}{
		"chart_type": "treemap",
		"mode":       "weight",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := got.(ChartPayload)
	if payload.ChartType != "bar" || payload.Mode != "quantity" {
		t.Errorf("defaults = %s/%s, want bar/quantity", payload.ChartType, payload.Mode)
	}
	if payload.Palette != "ocean" {
		t.Errorf("palette = %q, want ocean for a project metric", payload.Palette)
	}
	if len(payload.Entries) != 2 || payload.Entries[0].Label != "Done" {
		t.Errorf("entries = %+v, want Done first", payload.Entries)
	}
	if !strings.Contains(payload.SVG, "<svg") {
		t.Errorf("SVG missing root element: %q", payload.SVG)
	}
}

func TestRenderChartOpportunityDefaultPalette(t *testing.T) {
	r := newTestRegistry(&stubSource{
		summary: &business.Summary{OpportunitiesByStatus: map[string]interface{}{"Quoted": float64(1)}},
	})

	got, err := r.Render(context.Background(), TypeChart, "", map[string]interface{}{
		"metric": "opportunities_by_status",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := got.(ChartPayload).Palette; p != "sunset" {
		t.Errorf("palette = %q, want sunset for an opportunity metric", p)
	}
}

func TestRenderChartTransform(t *testing.T) {
	r := newTestRegistry(&stubSource{
		summary: &business.Summary{
			ProjectsByStatus: map[string]interface{}{"Won": float64(2), "Lost": float64(4)},
		},
	})

	got, err := r.Render(context.Background(), TypeChart, "", map[string]interface{}{
		"transform": `for e in entries { e.value = e.value * 10 }`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := got.(ChartPayload)
	if payload.Entries[0].Value != 40 {
		t.Errorf("transformed top value = %v, want 40", payload.Entries[0].Value)
	}
}

func TestRenderShortcutsFiltersPalette(t *testing.T) {
	r := newTestRegistry(&stubSource{})

	got, err := r.Render(context.Background(), TypeShortcuts, "", map[string]interface{}{
		"items": []interface{}{"projects", "clock", "nope"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := got.(ShortcutsPayload)
	if len(payload.Items) != 2 {
		t.Fatalf("len = %d, want 2", len(payload.Items))
	}
	if payload.Items[0].Key != "projects" || payload.Items[1].Key != "clock" {
		t.Errorf("items = %+v, want projects then clock", payload.Items)
	}
}

func TestMetaForUnknown(t *testing.T) {
	if _, ok := MetaFor("weather"); ok {
		t.Error("weather should not be registered")
	}
	if len(Catalog()) != 5 {
		t.Errorf("catalog size = %d, want 5", len(Catalog()))
	}
}
