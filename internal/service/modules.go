package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

// ModuleService stores per-user progress counters. Saves replace the full
// set in one transaction.
type ModuleService struct {
	db *gorm.DB
}

func NewModuleService(db *gorm.DB) *ModuleService {
	return &ModuleService{db: db}
}

// Replace clears the user's modules and inserts the given set.
func (s *ModuleService) Replace(ctx context.Context, userID uuid.UUID, modules []types.ModuleInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserModule{}).Error; err != nil {
			return err
		}
		for _, m := range modules {
			module := models.UserModule{
				UserID:    userID,
				Label:     m.Label,
				Completed: m.Completed,
				Total:     m.Total,
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the user's modules.
func (s *ModuleService) List(ctx context.Context, userID uuid.UUID) ([]models.UserModule, error) {
	var modules []models.UserModule
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}
