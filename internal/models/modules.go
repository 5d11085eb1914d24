package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModule is one progress counter (e.g. Workouts 3/10). The full set
// is replaced wholesale on every save.
type UserModule struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Label     string    `gorm:"size:100;not null" json:"label"`
	Completed int       `gorm:"not null;default:0" json:"completed"`
	Total     int       `gorm:"not null;default:0" json:"total"`
}

func (m *UserModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
