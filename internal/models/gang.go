package models

import (
	"time"

	"gorm.io/gorm"
)

// Role of a member inside a gang. Exactly one host per gang, assigned at
// creation time.
const (
	RoleHost   = "host"
	RoleMember = "member"
)

// Gang represents a savings-accountability group. GangID is the public
// 5-digit join code; ID is the internal key everything else references.
type Gang struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"not null;default:true" json:"is_public"`
	GangID      string    `gorm:"uniqueIndex;size:10;not null" json:"gang_id"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	Members []GangMember `gorm:"foreignKey:GangID;references:ID" json:"members,omitempty"`
}

// GangMember links a user to a gang with a role
type GangMember struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_gang_member" json:"user_id"`
	GangID   uint      `gorm:"not null;uniqueIndex:idx_gang_member;index" json:"gang_id"`
	Role     string    `gorm:"size:10;not null;default:member" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate hook is called before creating a new membership
func (m *GangMember) BeforeCreate(tx *gorm.DB) error {
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	return nil
}

// TableName specifies the table name for the Gang model
func (Gang) TableName() string {
	return "gangs"
}

// TableName specifies the table name for the GangMember model
func (GangMember) TableName() string {
	return "gang_members"
}

// CreateGangRequest represents the data needed to create a new gang
type CreateGangRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

// GangSummary is the per-gang row returned by the user's gang list
type GangSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GangID      string `json:"gang_id"`
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
}
