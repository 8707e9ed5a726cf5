package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SaveRecord is one user's saved-today flag for one gang on one calendar
// day. The composite unique index is what makes the toggle write path an
// upsert: there is never more than one row per (user, gang, day).
type SaveRecord struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_save_user_gang_date" json:"user_id"`
	GangID    uint           `gorm:"not null;uniqueIndex:idx_save_user_gang_date;index" json:"gang_id"`
	Saved     bool           `gorm:"not null;default:false" json:"saved"`
	SaveDate  datatypes.Date `gorm:"not null;uniqueIndex:idx_save_user_gang_date" json:"save_date"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook is called before creating a new save record
func (s *SaveRecord) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the SaveRecord model
func (SaveRecord) TableName() string {
	return "daily_saves"
}

// SaveRequest represents the body of a save toggle
type SaveRequest struct {
	Saved *bool `json:"saved" binding:"required"`
}
