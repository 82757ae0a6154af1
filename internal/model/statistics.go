package model

import (
	"time"

	"github.com/google/uuid"
)

// MonthlySummary aggregates one user's attendance for a month
type MonthlySummary struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
	TotalDays  int     `json:"totalDays"`
}

// TeamSummary aggregates attendance across every employee for a month
type TeamSummary struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TotalEmployees int64   `json:"totalEmployees"`
	TotalRecords   int     `json:"totalRecords"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	HalfDay        int     `json:"halfDay"`
	TotalHours     float64 `json:"totalHours"`
}

// AbsentEmployee identifies an employee with no attendance row for a day
type AbsentEmployee struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employeeId"`
	Department string    `json:"department"`
}

// TodayStatus is the manager view of the current day. Absence is derived —
// employees without a row for the day are counted absent.
type TodayStatus struct {
	Date            time.Time        `json:"date"`
	TotalEmployees  int              `json:"totalEmployees"`
	Present         int              `json:"present"`
	Absent          int              `json:"absent"`
	Late            int              `json:"late"`
	AbsentEmployees []AbsentEmployee `json:"absentEmployees"`
}

// EmployeeStats is one row of the monthly performance ranking
type EmployeeStats struct {
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	TotalHours     float64 `json:"totalHours"`
	Score          float64 `json:"score"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// DailyTrend is one day of the weekly attendance trend
type DailyTrend struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

// DepartmentStat is a department-wise presence breakdown for one day
type DepartmentStat struct {
	Department string `json:"department"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

// HeatmapEntry is one day of the yearly attendance heat map
type HeatmapEntry struct {
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	TotalHours   float64    `json:"totalHours"`
}
