package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BMIRecord is one submitted calculator result. The newest row per user
// is the current snapshot; older rows are kept as history.
type BMIRecord struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	HeightCm  float64   `gorm:"not null" json:"height_cm"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	Age       int       `json:"age"`
	BMI       float64   `gorm:"not null" json:"bmi"`
	Category  string    `gorm:"size:20" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *BMIRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// WeightEntry is appended once per saved BMI record.
type WeightEntry struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	WeightKg   float64   `gorm:"not null" json:"weight_kg"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}

func (e *WeightEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	return nil
}
