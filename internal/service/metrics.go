package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

// WeightHistoryLimit caps how many points the progress chart shows.
const WeightHistoryLimit = 24

// ComputeBMI expects height in centimeters and weight in kilograms and
// returns the BMI rounded to one decimal place. A non-positive height
// yields 0; callers clamp form input, this function never errors.
func ComputeBMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0 // to meters
	return math.Round(weightKg/(h*h)*10) / 10
}

// BMICategory maps a BMI value to its display label. Zero or undefined
// BMI has no category.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// MetricService persists calculator submissions and the derived weight
// history.
type MetricService struct {
	db *gorm.DB
}

func NewMetricService(db *gorm.DB) *MetricService {
	return &MetricService{db: db}
}

// SaveSnapshot inserts a BMI record and appends exactly one weight history
// point in the same transaction.
func (s *MetricService) SaveSnapshot(ctx context.Context, userID uuid.UUID, req *types.SaveBMIRequest) (*models.BMIRecord, error) {
	category := req.Category
	if category == "" {
		category = BMICategory(req.BMI)
	}

	record := models.BMIRecord{
		UserID:   userID,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Age:      req.Age,
		BMI:      req.BMI,
		Category: category,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&models.WeightEntry{
			UserID:   userID,
			WeightKg: req.WeightKg,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// LatestSnapshot returns the newest BMI record for the user.
func (s *MetricService) LatestSnapshot(ctx context.Context, userID uuid.UUID) (*models.BMIRecord, error) {
	var record models.BMIRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// WeightHistory returns the most recent points, newest first.
func (s *MetricService) WeightHistory(ctx context.Context, userID uuid.UUID) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Limit(WeightHistoryLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
