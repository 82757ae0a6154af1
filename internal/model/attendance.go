package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance status values. Absence is normally derived at read time —
// a stored "absent" row only appears when a manager records one explicitly.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
)

// Attendance records one working day for one user. The composite unique
// index guards against duplicate rows when two check-ins race.
type Attendance struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date         time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Status       string     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalHours   float64    `gorm:"not null;default:0" json:"total_hours"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
