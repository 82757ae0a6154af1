package model

import (
	"time"

	"github.com/google/uuid"
)

// Review status values shared by leave requests and registration requests
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Leave types accepted on application
const (
	LeaveSick      = "sick"
	LeaveVacation  = "vacation"
	LeavePersonal  = "personal"
	LeaveEmergency = "emergency"
	LeaveOther     = "other"
)

// Leave represents an employee leave request awaiting manager review.
// It transitions from pending to approved or rejected exactly once.
type Leave struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time  `gorm:"type:date;not null" json:"end_date"`
	LeaveType     string     `gorm:"type:varchar(20);not null" json:"leave_type"`
	Reason        string     `gorm:"type:text;not null" json:"reason"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedBy    *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer      *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewComment string     `gorm:"type:text" json:"review_comment"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
