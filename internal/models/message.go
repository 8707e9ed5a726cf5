package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage represents a message in a gang's shared chat
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	GangID    uint      `gorm:"not null;index:idx_messages_gang_created" json:"gang_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_gang_created" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate hook is called before creating a new message
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// SendMessageRequest represents the data needed to send a chat message
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}
