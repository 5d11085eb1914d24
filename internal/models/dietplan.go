package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONStringArray stores a string slice as a JSON text column so the same
// model works on Postgres and SQLite.
type JSONStringArray []string

// Value implements the driver.Valuer interface
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// DietPlan holds the single retained plan per user. The uniqueIndex on
// UserID backs the transactional replace in DietPlanService.
type DietPlan struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DietType  string          `gorm:"size:20;not null" json:"diet_type"`
	Category  string          `gorm:"size:20;not null" json:"category"`
	Items     JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
