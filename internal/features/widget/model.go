package widget

import "encoding/json"

// Widget types form a closed set. Persisted dashboards may still reference a
// type removed in a later version, so every dispatch point carries an
// unknown-type fallback instead of an error.
const (
	TypeKPI         = "kpi"
	TypeChart       = "chart"
	TypeTaskList    = "task_list"
	TypeProjectList = "project_list"
	TypeShortcuts   = "shortcuts"
)

const (
	CategoryKPIs      = "KPIs"
	CategoryCharts    = "Charts"
	CategoryLists     = "Lists"
	CategoryShortcuts = "Shortcuts"
)

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Meta describes one widget type for pickers and default placement.
type Meta struct {
	Label         string                 `json:"label"`
	Category      string                 `json:"category"`
	DefaultSize   Size                   `json:"default_size"`
	DefaultConfig map[string]interface{} `json:"default_config"`
}

// KpiConfig configures one KPI card. Every field has a default so a missing
// or malformed config bag still renders.
type KpiConfig struct {
	Metric      string `json:"metric"`       // opportunities_count, projects_count, opportunities_value, projects_value, profit
	Period      string `json:"period"`       // all, last_year, last_6_months, last_3_months, last_month, custom
	CustomStart string `json:"custom_start"` // ISO date, custom period only
	CustomEnd   string `json:"custom_end"`
	Division    string `json:"division"`
	Status      string `json:"status"` // optional single status label filter
	Format      string `json:"format"` // number or currency
}

func (c *KpiConfig) applyDefaults() {
	if c.Metric == "" {
		c.Metric = "projects_count"
	}
	if c.Period == "" {
		c.Period = "all"
	}
	if c.Format != "currency" {
		c.Format = "number"
	}
}

// ChartConfig configures one chart widget.
type ChartConfig struct {
	Metric      string `json:"metric"`     // opportunities_by_status, projects_by_status, opportunities_by_division, projects_by_division
	ChartType   string `json:"chart_type"` // bar, pie, donut, line
	Mode        string `json:"mode"`       // quantity or value
	Period      string `json:"period"`
	CustomStart string `json:"custom_start"`
	CustomEnd   string `json:"custom_end"`
	Division    string `json:"division"`
	Palette     string `json:"palette"`
	Transform   string `json:"transform"` // optional tengo script over the normalized entries
}

func (c *ChartConfig) applyDefaults() {
	if c.Metric == "" {
		c.Metric = "projects_by_status"
	}
	switch c.ChartType {
	case "bar", "pie", "donut", "line":
	default:
		c.ChartType = "bar"
	}
	if c.Mode != "value" {
		c.Mode = "quantity"
	}
	if c.Period == "" {
		c.Period = "all"
	}
	if c.Palette == "" {
		// Default palette follows the metric flavor.
		if isOpportunityMetric(c.Metric) {
			c.Palette = "sunset"
		} else {
			c.Palette = "ocean"
		}
	}
}

func isOpportunityMetric(metric string) bool {
	return metric == "opportunities_by_status" || metric == "opportunities_by_division"
}

// ListConfig configures the task and project list widgets.
type ListConfig struct {
	Limit int `json:"limit"`
}

func (c *ListConfig) applyDefaults() {
	if c.Limit <= 0 {
		c.Limit = 5
	}
	if c.Limit > 20 {
		c.Limit = 20
	}
}

// ShortcutsConfig selects which navigation shortcuts to show. Empty means
// the full palette.
type ShortcutsConfig struct {
	Items []string `json:"items"`
}

// decodeConfig round-trips the free-form config bag into a typed config.
// Unknown keys are dropped, malformed values fall back to zero values and the
// type's defaults take over; a broken config never fails a render.
func decodeConfig(config map[string]interface{}, out interface{}) {
	if config == nil {
		return
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, out)
}
