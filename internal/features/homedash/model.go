package homedash

import (
	"fmt"
	"time"

	"go-bizops/internal/features/widget"
)

// gridCols is the home dashboard grid width. Older records were saved on a
// 4-column grid and are migrated on load.
const gridCols = 8

type LayoutItem struct {
	ID string `json:"id" bson:"id"`
	X  int    `json:"x" bson:"x"`
	Y  int    `json:"y" bson:"y"`
	W  int    `json:"w" bson:"w"`
	H  int    `json:"h" bson:"h"`
}

type WidgetDef struct {
	ID     string                 `json:"id" bson:"id"`
	Type   string                 `json:"type" bson:"type"`
	Title  string                 `json:"title,omitempty" bson:"title,omitempty"`
	Config map[string]interface{} `json:"config" bson:"config"`
}

// DashboardState is the complete persisted unit for one user's home
// dashboard. The id sets of Layout and Widgets are always identical; every
// mutation goes through the With* operations below so no call site can break
// that invariant by touching one collection without the other.
type DashboardState struct {
	Layout  []LayoutItem `json:"layout" bson:"layout"`
	Widgets []WidgetDef  `json:"widgets" bson:"widgets"`
}

// DashboardRecord is the stored document, one per user.
type DashboardRecord struct {
	UserID         string `json:"user_id" bson:"user_id"`
	DashboardState `bson:",inline"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// newWidgetID builds a fresh unique widget id.
func newWidgetID(widgetType string) string {
	return fmt.Sprintf("%s-%d", widgetType, time.Now().UnixNano())
}

// WithAdded returns a copy of the state with one new widget of the given
// type, stacked at the bottom of the grid (x=0, y = max over existing items
// of y+h). Size and base config come from the registry metadata.
func (s DashboardState) WithAdded(widgetType, title string, meta widget.Meta) DashboardState {
	out := s.clone()

	bottom := 0
	for _, item := range out.Layout {
		if item.Y+item.H > bottom {
			bottom = item.Y + item.H
		}
	}

	id := newWidgetID(widgetType)
	config := map[string]interface{}{}
	for k, v := range meta.DefaultConfig {
		config[k] = v
	}

	out.Layout = append(out.Layout, LayoutItem{
		ID: id,
		X:  0,
		Y:  bottom,
		W:  meta.DefaultSize.W,
		H:  meta.DefaultSize.H,
	})
	out.Widgets = append(out.Widgets, WidgetDef{
		ID:     id,
		Type:   widgetType,
		Title:  title,
		Config: config,
	})
	return out
}

// WithRemoved returns a copy of the state without the given widget, removed
// from both collections together. Removing an unknown id is a no-op.
func (s DashboardState) WithRemoved(id string) DashboardState {
	out := DashboardState{
		Layout:  make([]LayoutItem, 0, len(s.Layout)),
		Widgets: make([]WidgetDef, 0, len(s.Widgets)),
	}
	for _, item := range s.Layout {
		if item.ID != id {
			out.Layout = append(out.Layout, item)
		}
	}
	for _, w := range s.Widgets {
		if w.ID != id {
			out.Widgets = append(out.Widgets, w)
		}
	}
	return out
}

// WithReconfigured returns a copy with one widget's config (and optionally
// title) replaced in place. Layout is untouched. An unknown id is a no-op.
func (s DashboardState) WithReconfigured(id string, title *string, config map[string]interface{}) DashboardState {
	out := s.clone()
	for i := range out.Widgets {
		if out.Widgets[i].ID != id {
			continue
		}
		if config != nil {
			out.Widgets[i].Config = config
		}
		if title != nil {
			out.Widgets[i].Title = *title
		}
		break
	}
	return out
}

// MigrateTo8Col doubles x and w of every item of a layout saved on the old
// 4-column grid. Anything with max w > 4 is already 8-column; the guard makes
// the migration a one-way, idempotent transform.
func (s DashboardState) MigrateTo8Col() DashboardState {
	maxW := 0
	for _, item := range s.Layout {
		if item.W > maxW {
			maxW = item.W
		}
	}
	if maxW > 4 {
		return s
	}

	out := s.clone()
	for i := range out.Layout {
		out.Layout[i].X *= 2
		out.Layout[i].W *= 2
	}
	return out
}

// Validate checks the persisted-state invariants: ids unique per collection,
// the two id sets identical, and geometry non-negative within the grid.
func (s DashboardState) Validate() error {
	layoutIDs := make(map[string]bool, len(s.Layout))
	for _, item := range s.Layout {
		if item.ID == "" {
			return fmt.Errorf("layout item without id")
		}
		if layoutIDs[item.ID] {
			return fmt.Errorf("duplicate layout id %q", item.ID)
		}
		layoutIDs[item.ID] = true

		if item.X < 0 || item.Y < 0 || item.W <= 0 || item.H <= 0 {
			return fmt.Errorf("layout item %q has invalid geometry", item.ID)
		}
		if item.X+item.W > gridCols {
			return fmt.Errorf("layout item %q exceeds %d columns", item.ID, gridCols)
		}
	}

	widgetIDs := make(map[string]bool, len(s.Widgets))
	for _, w := range s.Widgets {
		if w.ID == "" {
			return fmt.Errorf("widget without id")
		}
		if widgetIDs[w.ID] {
			return fmt.Errorf("duplicate widget id %q", w.ID)
		}
		widgetIDs[w.ID] = true

		if !layoutIDs[w.ID] {
			return fmt.Errorf("widget %q has no layout entry", w.ID)
		}
	}
	for id := range layoutIDs {
		if !widgetIDs[id] {
			return fmt.Errorf("layout entry %q has no widget", id)
		}
	}
	return nil
}

func (s DashboardState) clone() DashboardState {
	out := DashboardState{
		Layout:  make([]LayoutItem, len(s.Layout)),
		Widgets: make([]WidgetDef, len(s.Widgets)),
	}
	copy(out.Layout, s.Layout)
	copy(out.Widgets, s.Widgets)
	return out
}

// DefaultState is the dashboard every user starts with. It is kept in memory
// until the user explicitly edits or resets; a plain GET never writes it back.
func DefaultState() DashboardState {
	return DashboardState{
		Layout: []LayoutItem{
			{ID: "default-kpi-projects", X: 0, Y: 0, W: 2, H: 2},
			{ID: "default-kpi-revenue", X: 2, Y: 0, W: 2, H: 2},
			{ID: "default-shortcuts", X: 4, Y: 0, W: 4, H: 1},
			{ID: "default-chart-status", X: 0, Y: 2, W: 4, H: 4},
			{ID: "default-tasks", X: 4, Y: 2, W: 2, H: 4},
			{ID: "default-projects", X: 6, Y: 2, W: 2, H: 4},
		},
		Widgets: []WidgetDef{
			{
				ID:    "default-kpi-projects",
				Type:  widget.TypeKPI,
				Title: "Projects",
				Config: map[string]interface{}{
					"metric": "projects_count",
					"period": "all",
					"format": "number",
				},
			},
			{
				ID:    "default-kpi-revenue",
				Type:  widget.TypeKPI,
				Title: "Revenue",
				Config: map[string]interface{}{
					"metric": "projects_value",
					"period": "last_year",
					"format": "currency",
				},
			},
			{
				ID:     "default-shortcuts",
				Type:   widget.TypeShortcuts,
				Config: map[string]interface{}{},
			},
			{
				ID:    "default-chart-status",
				Type:  widget.TypeChart,
				Title: "Projects by Status",
				Config: map[string]interface{}{
					"metric":     "projects_by_status",
					"chart_type": "bar",
					"mode":       "quantity",
					"period":     "all",
				},
			},
			{
				ID:     "default-tasks",
				Type:   widget.TypeTaskList,
				Title:  "My Tasks",
				Config: map[string]interface{}{"limit": 5},
			},
			{
				ID:     "default-projects",
				Type:   widget.TypeProjectList,
				Title:  "Recent Projects",
				Config: map[string]interface{}{"limit": 5},
			},
		},
	}
}
