package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

// PreferenceService stores per-user display preferences.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the user's preferences, defaulting to the light theme when
// none were stored yet.
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPreference{UserID: userID, Theme: "light"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// SetTheme updates the stored theme, creating the row when missing.
func (s *PreferenceService) SetTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	if theme != "light" && theme != "dark" {
		return ErrInvalidTheme
	}

	var pref models.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.WithContext(ctx).Create(&models.UserPreference{UserID: userID, Theme: theme}).Error
	}
	if err != nil {
		return err
	}

	pref.Theme = theme
	return s.db.WithContext(ctx).Save(&pref).Error
}
