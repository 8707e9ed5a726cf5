package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user account
type User struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username   string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	HashedPass string    `gorm:"size:255;not null" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook is called before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// RegisterRequest represents the data needed to create a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the data needed for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a username change
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Profile is the /me response: account data plus aggregate stats.
// Streaks and achievements are placeholders kept for API compatibility.
type Profile struct {
	ID            uint     `json:"id"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	TotalSaves    int64    `json:"total_saves"`
	CurrentStreak int      `json:"current_streak"`
	BestStreak    int      `json:"best_streak"`
	GangsJoined   int64    `json:"gangs_joined"`
	Achievements  []string `json:"achievements"`
}
