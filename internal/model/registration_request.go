package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationRequest represents a self-registration awaiting manager review.
// The password is hashed before storage; approval copies the hash into a new
// User untouched. Processed requests are kept as an audit trail, never deleted.
type RegistrationRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Password        string     `gorm:"type:varchar(255);not null" json:"-"` // Already bcrypt-hashed
	EmployeeID      string     `gorm:"type:varchar(50);not null;index" json:"employee_id"`
	Department      string     `gorm:"type:varchar(100);not null" json:"department"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer        *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
