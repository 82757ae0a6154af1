package model

import (
	"time"

	"github.com/google/uuid"
)

// Problem report statuses. Any status is reachable from any other via an
// explicit update; resolved and closed stamp the resolver.
const (
	ProblemOpen       = "open"
	ProblemInProgress = "in-progress"
	ProblemResolved   = "resolved"
	ProblemClosed     = "closed"
)

// Problem report categories
const (
	CategoryAttendance = "attendance"
	CategoryTechnical  = "technical"
	CategoryAccount    = "account"
	CategoryOther      = "other"
)

// Problem report priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ProblemReport is an issue filed by an employee and worked by a manager
type ProblemReport struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subject     string     `gorm:"type:varchar(255);not null" json:"subject"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    string     `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Status      string     `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	ResolvedBy  *uuid.UUID `gorm:"type:uuid" json:"resolved_by"`
	Resolver    *User      `gorm:"foreignKey:ResolvedBy" json:"resolver,omitempty"`
	Resolution  string     `gorm:"type:text" json:"resolution"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
