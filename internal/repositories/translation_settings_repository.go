package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"glossa/internal/models"
)

type TranslationSettingsRepository interface {
	Get(ctx context.Context) (*models.TranslationSettings, error)
	Update(ctx context.Context, settings *models.TranslationSettings) error
}

type translationSettingsRepository struct {
	db *gorm.DB
}

func NewTranslationSettingsRepository(db *gorm.DB) TranslationSettingsRepository {
	return &translationSettingsRepository{db: db}
}

func (r *translationSettingsRepository) Get(ctx context.Context) (*models.TranslationSettings, error) {
	var settings models.TranslationSettings
	if err := r.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing saved yet
			defaults := models.DefaultTranslationSettings()
			return &defaults, nil
		}
		return nil, err
	}
	if settings.AutoSelectionMode == "" {
		settings.AutoSelectionMode = models.AutoSelectionInclusive
	}
	return &settings, nil
}

func (r *translationSettingsRepository) Update(ctx context.Context, settings *models.TranslationSettings) error {
	// Ensure ID is set to 1 for single-row table
	settings.ID = 1
	if settings.Version == 0 {
		settings.Version = 1
	}
	return r.db.WithContext(ctx).Save(settings).Error
}
