package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles — managers review requests, employees track attendance
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// User represents an approved account in the attendance system
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password hash from JSON requests/responses
	Role       string         `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	EmployeeID string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_id"`
	Department string         `gorm:"type:varchar(100)" json:"department"`
	LastLogin  *time.Time     `json:"last_login"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
