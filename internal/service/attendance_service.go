package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checkout shorter than this many hours counts as a half day.
const halfDayThresholdHours = 4.0

var csvHeader = []string{"Date", "Employee ID", "Name", "Department", "Check In", "Check Out", "Status", "Total Hours"}

// EmployeeAttendance bundles one employee's records and monthly summary for
// the manager drill-down view.
type EmployeeAttendance struct {
	Employee *model.User          `json:"employee"`
	Records  []model.Attendance   `json:"records"`
	Summary  model.MonthlySummary `json:"summary"`
}

// AttendanceService defines the interface for business logic related to Attendance
type AttendanceService interface {
	CheckIn(ctx context.Context, userID uuid.UUID) (*model.Attendance, error)
	CheckOut(ctx context.Context, userID uuid.UUID) (*model.Attendance, error)
	Today(ctx context.Context, userID uuid.UUID) (*model.Attendance, error)
	MyHistory(ctx context.Context, userID uuid.UUID, month time.Month, year int) ([]model.Attendance, error)
	MySummary(ctx context.Context, userID uuid.UUID, month time.Month, year int) (*model.MonthlySummary, error)
	All(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, int64, error)
	ByEmployee(ctx context.Context, employeeID string, month time.Month, year int) (*EmployeeAttendance, error)
	TeamSummary(ctx context.Context, month time.Month, year int) (*model.TeamSummary, error)
	TodayStatus(ctx context.Context) (*model.TodayStatus, error)
	ExportCSV(ctx context.Context, filter repository.AttendanceFilter) ([]byte, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	userRepo repository.UserRepository
	hub      interface{ GetBroadcast() chan []byte } // optional websocket hub
	cutoff   int                                     // minutes after midnight; check-ins past this are late
	now      func() time.Time
}

// NewAttendanceService returns a new instance of AttendanceService. The
// cutoff is an "HH:MM" wall-clock time; invalid values fall back to 09:00.
func NewAttendanceService(
	repo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	hub interface{ GetBroadcast() chan []byte },
	cutoff string,
) AttendanceService {
	return &attendanceService{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		cutoff:   parseCutoff(cutoff),
		now:      time.Now,
	}
}

func parseCutoff(cutoff string) int {
	t, err := time.Parse("15:04", cutoff)
	if err != nil {
		return 9 * 60
	}
	return t.Hour()*60 + t.Minute()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthRange(month time.Month, year int) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

func (s *attendanceService) CheckIn(ctx context.Context, userID uuid.UUID) (*model.Attendance, error) {
	now := s.now()
	today := dateOnly(now)

	attendance, err := s.repo.GetByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if attendance != nil && attendance.CheckInTime != nil {
		return nil, ErrAlreadyCheckedIn
	}

	status := model.StatusPresent
	if now.Hour()*60+now.Minute() > s.cutoff {
		status = model.StatusLate
	}

	if attendance != nil {
		// A row without a check-in can exist ahead of time; complete it.
		attendance.CheckInTime = &now
		attendance.Status = status
		if err := s.repo.Update(ctx, attendance); err != nil {
			return nil, err
		}
	} else {
		attendance = &model.Attendance{
			UserID:      userID,
			Date:        today,
			CheckInTime: &now,
			Status:      status,
		}
		if err := s.repo.Create(ctx, attendance); err != nil {
			return nil, err
		}
	}

	s.notify("attendance.checked_in", attendance)
	return attendance, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID uuid.UUID) (*model.Attendance, error) {
	now := s.now()

	attendance, err := s.repo.GetByUserAndDate(ctx, userID, dateOnly(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if attendance.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}
	if attendance.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	hours := now.Sub(*attendance.CheckInTime).Hours()
	if hours < 0 {
		hours = 0
	}

	attendance.CheckOutTime = &now
	attendance.TotalHours = round2(hours)
	if hours < halfDayThresholdHours {
		attendance.Status = model.StatusHalfDay
	}

	if err := s.repo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	s.notify("attendance.checked_out", attendance)
	return attendance, nil
}

// Today returns nil without error when the user has no record for the day.
func (s *attendanceService) Today(ctx context.Context, userID uuid.UUID) (*model.Attendance, error) {
	attendance, err := s.repo.GetByUserAndDate(ctx, userID, dateOnly(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return attendance, nil
}

func (s *attendanceService) MyHistory(ctx context.Context, userID uuid.UUID, month time.Month, year int) ([]model.Attendance, error) {
	start, end := monthRange(month, year)
	return s.repo.ListByUserBetween(ctx, userID, start, end)
}

func (s *attendanceService) MySummary(ctx context.Context, userID uuid.UUID, month time.Month, year int) (*model.MonthlySummary, error) {
	start, end := monthRange(month, year)
	records, err := s.repo.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(records, month, year)
	return &summary, nil
}

// summarize derives the monthly summary from raw records. Absence is the gap
// between elapsed working days and days with any record.
func (s *attendanceService) summarize(records []model.Attendance, month time.Month, year int) model.MonthlySummary {
	summary := model.MonthlySummary{Month: int(month), Year: year, TotalDays: len(records)}

	totalHours := 0.0
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			summary.Present++
		case model.StatusLate:
			summary.Late++
		case model.StatusHalfDay:
			summary.HalfDay++
		}
		totalHours += r.TotalHours
	}
	summary.TotalHours = round2(totalHours)

	workingDays := elapsedWorkingDays(s.now(), month, year)
	if absent := workingDays - summary.Present - summary.Late - summary.HalfDay; absent > 0 {
		summary.Absent = absent
	}
	return summary
}

func (s *attendanceService) All(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, int64, error) {
	total, err := s.repo.CountBetween(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.repo.ListBetween(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *attendanceService) ByEmployee(ctx context.Context, employeeID string, month time.Month, year int) (*EmployeeAttendance, error) {
	user, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	start, end := monthRange(month, year)
	records, err := s.repo.ListByUserBetween(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}

	return &EmployeeAttendance{
		Employee: user,
		Records:  records,
		Summary:  s.summarize(records, month, year),
	}, nil
}

func (s *attendanceService) TeamSummary(ctx context.Context, month time.Month, year int) (*model.TeamSummary, error) {
	start, end := monthRange(month, year)
	records, err := s.repo.ListBetween(ctx, repository.AttendanceFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}
	totalEmployees, err := s.userRepo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}

	summary := model.TeamSummary{
		Month:          int(month),
		Year:           year,
		TotalEmployees: totalEmployees,
		TotalRecords:   len(records),
	}
	totalHours := 0.0
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			summary.Present++
		case model.StatusAbsent:
			summary.Absent++
		case model.StatusLate:
			summary.Late++
		case model.StatusHalfDay:
			summary.HalfDay++
		}
		totalHours += r.TotalHours
	}
	summary.TotalHours = round2(totalHours)
	return &summary, nil
}

func (s *attendanceService) TodayStatus(ctx context.Context) (*model.TodayStatus, error) {
	today := dateOnly(s.now())

	records, err := s.repo.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID]*model.Attendance, len(records))
	for i := range records {
		byUser[records[i].UserID] = &records[i]
	}

	status := &model.TodayStatus{
		Date:            today,
		TotalEmployees:  len(employees),
		AbsentEmployees: []model.AbsentEmployee{},
	}
	for _, emp := range employees {
		record, ok := byUser[emp.ID]
		if !ok || record.Status == model.StatusAbsent {
			status.Absent++
			status.AbsentEmployees = append(status.AbsentEmployees, model.AbsentEmployee{
				ID:         emp.ID,
				Name:       emp.Name,
				EmployeeID: emp.EmployeeID,
				Department: emp.Department,
			})
			continue
		}
		if record.Status == model.StatusLate {
			status.Late++
		} else {
			status.Present++
		}
	}
	return status, nil
}

// ExportCSV renders matching records as CSV. The header row is always
// written, even when no records match.
func (s *attendanceService) ExportCSV(ctx context.Context, filter repository.AttendanceFilter) ([]byte, error) {
	filter.Limit = 0
	records, err := s.repo.ListBetween(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, r := range records {
		var employeeID, name, department string
		if r.User != nil {
			employeeID = r.User.EmployeeID
			name = r.User.Name
			department = r.User.Department
		}
		row := []string{
			r.Date.Format("2006-01-02"),
			employeeID,
			name,
			department,
			formatClock(r.CheckInTime),
			formatClock(r.CheckOutTime),
			r.Status,
			strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

// notify pushes an attendance event to connected dashboard clients. The send
// never blocks request handling.
func (s *attendanceService) notify(event string, attendance *model.Attendance) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":    event,
		"user_id": attendance.UserID.String(),
		"date":    attendance.Date.Format("2006-01-02"),
		"status":  attendance.Status,
	})
	if err != nil {
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
	}
}
