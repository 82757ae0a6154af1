package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApproveLeave        = "APPROVE_LEAVE"
	ActionRejectLeave         = "REJECT_LEAVE"
	ActionResolveProblem      = "RESOLVE_PROBLEM"
	ActionUpdateProblemStatus = "UPDATE_PROBLEM_STATUS"
	ActionApproveRegistration = "APPROVE_REGISTRATION"
	ActionRejectRegistration  = "REJECT_REGISTRATION"
)

// AuditLog tracks Who, What, and When for manager review decisions
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
