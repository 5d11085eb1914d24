package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

const planCacheTTL = 24 * time.Hour

// DietPlanService keeps at most one plan per user. Replacement happens
// inside a transaction so a racing second save can never leave zero or
// two rows.
type DietPlanService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewDietPlanService creates the service. The Redis client is optional;
// without it every read goes to the database.
func NewDietPlanService(db *gorm.DB, redisClient *redis.Client) *DietPlanService {
	return &DietPlanService{db: db, redis: redisClient}
}

// Save replaces the user's plan with the given one.
func (s *DietPlanService) Save(ctx context.Context, userID uuid.UUID, dietType, category string, items []string) (*models.DietPlan, error) {
	plan := models.DietPlan{
		UserID:   userID,
		DietType: dietType,
		Category: category,
		Items:    models.JSONStringArray(items),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DietPlan{}).Error; err != nil {
			return err
		}
		return tx.Create(&plan).Error
	})
	if err != nil {
		return nil, err
	}

	s.cachePlan(ctx, &plan)
	return &plan, nil
}

// Latest returns the user's current plan, from cache when possible.
func (s *DietPlanService) Latest(ctx context.Context, userID uuid.UUID) (*models.DietPlan, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, planCacheKey(userID)).Bytes()
		if err == nil {
			var plan models.DietPlan
			if err := json.Unmarshal(data, &plan); err == nil {
				return &plan, nil
			}
			// Corrupt cache entry: fall through to the database.
		}
	}

	var plan models.DietPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}

	s.cachePlan(ctx, &plan)
	return &plan, nil
}

// cachePlan is best-effort; a cache failure never fails the request.
func (s *DietPlanService) cachePlan(ctx context.Context, plan *models.DietPlan) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, planCacheKey(plan.UserID), data, planCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache diet plan for user %s: %v", plan.UserID, err)
	}
}

func planCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("dietplan:latest:%s", userID)
}
