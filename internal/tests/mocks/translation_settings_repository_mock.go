package mocks

import (
	"context"

	"glossa/internal/models"
)

type TranslationSettingsRepositoryMock struct {
	GetFunc    func(ctx context.Context) (*models.TranslationSettings, error)
	UpdateFunc func(ctx context.Context, settings *models.TranslationSettings) error
}

func (m *TranslationSettingsRepositoryMock) Get(ctx context.Context) (*models.TranslationSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	defaults := models.DefaultTranslationSettings()
	return &defaults, nil
}

func (m *TranslationSettingsRepositoryMock) Update(ctx context.Context, settings *models.TranslationSettings) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, settings)
	}
	return nil
}
