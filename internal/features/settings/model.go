package settings

import (
	"time"

	common_models "go-bizops/internal/common/models"
)

type SettingsType string

const (
	SettingsTypeBusiness SettingsType = "business"
)

// Settings carries the status-label and division enumerations the dashboards
// filter by. KPI widgets read these to offer per-status filters.
type Settings struct {
	Type                SettingsType             `json:"type" bson:"type"`
	OpportunityStatuses []string                 `json:"opportunity_statuses" bson:"opportunity_statuses"`
	ProjectStatuses     []string                 `json:"project_statuses" bson:"project_statuses"`
	Divisions           []common_models.Division `json:"divisions" bson:"divisions"`
	UpdatedAt           time.Time                `json:"updated_at" bson:"updated_at"`
}

// DefaultSettings is returned when no settings document exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		Type:                SettingsTypeBusiness,
		OpportunityStatuses: []string{"New", "Quoted", "Won", "Lost"},
		ProjectStatuses:     []string{"Pending", "In Progress", "On Hold", "Completed", "Cancelled"},
		Divisions: []common_models.Division{
			{ID: "construction", Name: "Construction"},
			{ID: "maintenance", Name: "Maintenance"},
			{ID: "electrical", Name: "Electrical"},
		},
	}
}
