package settings

import (
	"context"
	"time"

	"go-bizops/pkg/utils"
)

type SettingsService interface {
	GetBusinessSettings(ctx context.Context) (*Settings, error)
	UpdateBusinessSettings(ctx context.Context, settings Settings) error
}

type SettingsServiceImpl struct {
	Repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) SettingsService {
	return &SettingsServiceImpl{
		Repo: repo,
	}
}

func (s *SettingsServiceImpl) GetBusinessSettings(ctx context.Context) (*Settings, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeBusiness)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsServiceImpl) UpdateBusinessSettings(ctx context.Context, settings Settings) error {
	settings.Type = SettingsTypeBusiness
	settings.UpdatedAt = time.Now()

	// Divisions created through the UI come with a name only.
	for i := range settings.Divisions {
		if settings.Divisions[i].ID == "" {
			settings.Divisions[i].ID = utils.Slugify(settings.Divisions[i].Name)
		}
	}

	return s.Repo.Upsert(ctx, &settings)
}
