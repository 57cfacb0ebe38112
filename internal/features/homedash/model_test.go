package homedash

import (
	"reflect"
	"testing"

	"go-bizops/internal/features/widget"
)

func idSets(s DashboardState) (map[string]bool, map[string]bool) {
	layout := make(map[string]bool)
	for _, item := range s.Layout {
		layout[item.ID] = true
	}
	widgets := make(map[string]bool)
	for _, w := range s.Widgets {
		widgets[w.ID] = true
	}
	return layout, widgets
}

func assertInvariant(t *testing.T, s DashboardState) {
	t.Helper()
	layout, widgets := idSets(s)
	if !reflect.DeepEqual(layout, widgets) {
		t.Fatalf("id sets differ: layout=%v widgets=%v", layout, widgets)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
}

func TestDefaultStateIsValid(t *testing.T) {
	assertInvariant(t, DefaultState())
}

func TestWithAddedStacksAtBottom(t *testing.T) {
	state := DefaultState()
	meta, _ := widget.MetaFor(widget.TypeKPI)

	bottom := 0
	for _, item := range state.Layout {
		if item.Y+item.H > bottom {
			bottom = item.Y + item.H
		}
	}

	next := state.WithAdded(widget.TypeKPI, "New KPI", meta)
	assertInvariant(t, next)

	if len(next.Widgets) != len(state.Widgets)+1 {
		t.Fatalf("widgets len = %d, want %d", len(next.Widgets), len(state.Widgets)+1)
	}

	added := next.Layout[len(next.Layout)-1]
	if added.X != 0 || added.Y != bottom {
		t.Errorf("placed at (%d,%d), want (0,%d)", added.X, added.Y, bottom)
	}
	if added.W != meta.DefaultSize.W || added.H != meta.DefaultSize.H {
		t.Errorf("size = %dx%d, want default %dx%d", added.W, added.H, meta.DefaultSize.W, meta.DefaultSize.H)
	}

	// The original state is untouched.
	if len(state.Widgets) == len(next.Widgets) {
		t.Error("WithAdded mutated the receiver")
	}
}

func TestWithAddedOnEmptyState(t *testing.T) {
	meta, _ := widget.MetaFor(widget.TypeChart)
	next := DashboardState{}.WithAdded(widget.TypeChart, "", meta)
	assertInvariant(t, next)
	if next.Layout[0].Y != 0 {
		t.Errorf("y = %d, want 0 on empty grid", next.Layout[0].Y)
	}
}

func TestWithRemoved(t *testing.T) {
	state := DefaultState()
	next := state.WithRemoved("default-tasks")
	assertInvariant(t, next)

	if len(next.Widgets) != len(state.Widgets)-1 {
		t.Fatalf("widgets len = %d, want %d", len(next.Widgets), len(state.Widgets)-1)
	}
	for _, w := range next.Widgets {
		if w.ID == "default-tasks" {
			t.Error("removed widget still present")
		}
	}
}

func TestWithRemovedUnknownIDIsNoOp(t *testing.T) {
	state := DefaultState()
	next := state.WithRemoved("no-such-widget")
	if !reflect.DeepEqual(state, next) {
		t.Error("removing an unknown id changed the state")
	}
}

func TestWithReconfiguredTouchesOnlyConfig(t *testing.T) {
	state := DefaultState()
	title := "Renamed"
	next := state.WithReconfigured("default-kpi-projects", &title, map[string]interface{}{"metric": "profit"})
	assertInvariant(t, next)

	if !reflect.DeepEqual(state.Layout, next.Layout) {
		t.Error("reconfigure must not alter layout")
	}
	for _, w := range next.Widgets {
		if w.ID == "default-kpi-projects" {
			if w.Title != "Renamed" || w.Config["metric"] != "profit" {
				t.Errorf("widget = %+v, want renamed with profit metric", w)
			}
		}
	}
}

func TestMigrateTo8Col(t *testing.T) {
	fourCol := DashboardState{
		Layout: []LayoutItem{
			{ID: "a", X: 0, Y: 0, W: 2, H: 2},
			{ID: "b", X: 2, Y: 0, W: 2, H: 2},
		},
		Widgets: []WidgetDef{
			{ID: "a", Type: widget.TypeKPI, Config: map[string]interface{}{}},
			{ID: "b", Type: widget.TypeKPI, Config: map[string]interface{}{}},
		},
	}

	once := fourCol.MigrateTo8Col()
	if once.Layout[0].W != 4 || once.Layout[1].X != 4 {
		t.Errorf("migrated layout = %+v, want doubled x/w", once.Layout)
	}
	assertInvariant(t, once)

	twice := once.MigrateTo8Col()
	if !reflect.DeepEqual(once, twice) {
		t.Error("migration is not idempotent")
	}
}

func TestValidateRejectsBrokenStates(t *testing.T) {
	tests := []struct {
		name  string
		state DashboardState
	}{
		{
			"layout without widget",
			DashboardState{Layout: []LayoutItem{{ID: "a", W: 1, H: 1}}},
		},
		{
			"widget without layout",
			DashboardState{Widgets: []WidgetDef{{ID: "a", Type: widget.TypeKPI}}},
		},
		{
			"duplicate layout id",
			DashboardState{
				Layout:  []LayoutItem{{ID: "a", W: 1, H: 1}, {ID: "a", X: 1, W: 1, H: 1}},
				Widgets: []WidgetDef{{ID: "a", Type: widget.TypeKPI}},
			},
		},
		{
			"exceeds grid width",
			DashboardState{
				Layout:  []LayoutItem{{ID: "a", X: 6, W: 4, H: 1}},
				Widgets: []WidgetDef{{ID: "a", Type: widget.TypeKPI}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.state.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
