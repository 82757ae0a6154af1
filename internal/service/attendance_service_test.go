package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttendanceService(repo repository.AttendanceRepository, userRepo repository.UserRepository, at time.Time) *attendanceService {
	svc := NewAttendanceService(repo, userRepo, nil, "09:00").(*attendanceService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestCheckInBeforeCutoffIsPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 8, 45, 0, 0, time.UTC))
	userID := uuid.New()

	attendance, err := svc.CheckIn(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, attendance.Status)
	assert.Equal(t, "2026-08-12", attendance.Date.Format("2006-01-02"))
	require.NotNil(t, attendance.CheckInTime)
}

func TestCheckInAtCutoffIsPresent(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC))

	attendance, err := svc.CheckIn(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, attendance.Status)
}

func TestCheckInAfterCutoffIsLate(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Date(2026, 8, 12, 9, 15, 0, 0, time.UTC))

	attendance, err := svc.CheckIn(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, model.StatusLate, attendance.Status)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 8, 45, 0, 0, time.UTC))
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckInCompletesRowWithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 8, 45, 0, 0, time.UTC))
	userID := uuid.New()

	// A day row can exist before the employee checks in.
	repo.records = append(repo.records, &model.Attendance{
		ID:     uuid.New(),
		UserID: userID,
		Date:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		Status: model.StatusAbsent,
	})

	attendance, err := svc.CheckIn(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, attendance.Status)
	require.NotNil(t, attendance.CheckInTime)
	// The existing row is completed, not duplicated.
	assert.Len(t, repo.records, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Date(2026, 8, 12, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCheckOutComputesRoundedHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	userID := uuid.New()

	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 8, 30, 0, 0, time.UTC))
	_, err := svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 8, 12, 17, 0, 0, 0, time.UTC) }
	attendance, err := svc.CheckOut(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 8.5, attendance.TotalHours)
	assert.Equal(t, model.StatusPresent, attendance.Status)
	require.NotNil(t, attendance.CheckOutTime)
}

func TestShortDayBecomesHalfDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	userID := uuid.New()

	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC))
	_, err := svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 8, 12, 12, 30, 0, 0, time.UTC) }
	attendance, err := svc.CheckOut(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusHalfDay, attendance.Status)
	assert.Equal(t, 3.0, attendance.TotalHours)
}

func TestCheckOutTwice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	userID := uuid.New()

	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Date(2026, 8, 12, 8, 0, 0, 0, time.UTC))
	_, err := svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 8, 12, 17, 0, 0, 0, time.UTC) }
	_, err = svc.CheckOut(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestTodayReturnsNilWithoutRecord(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC))

	attendance, err := svc.Today(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, attendance)
}

func seedRecord(repo *fakeAttendanceRepo, userID uuid.UUID, day time.Time, status string, hours float64) {
	repo.records = append(repo.records, &model.Attendance{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       day,
		Status:     status,
		TotalHours: hours,
	})
}

func TestMySummaryDerivesAbsence(t *testing.T) {
	repo := newFakeAttendanceRepo()
	userID := uuid.New()

	// Wednesday Aug 12, 2026: eight working days have elapsed this month.
	now := time.Date(2026, 8, 12, 18, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(repo, newFakeUserRepo(), now)

	days := []int{3, 4, 5, 6, 7}
	for _, d := range days {
		seedRecord(repo, userID, time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC), model.StatusPresent, 8)
	}
	seedRecord(repo, userID, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), model.StatusLate, 7.5)

	summary, err := svc.MySummary(context.Background(), userID, time.August, 2026)

	require.NoError(t, err)
	assert.Equal(t, 5, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 0, summary.HalfDay)
	assert.Equal(t, 2, summary.Absent) // Aug 11 and Aug 12 have no record
	assert.Equal(t, 6, summary.TotalDays)
	assert.Equal(t, 47.5, summary.TotalHours)
}

func TestTodayStatusDerivesAbsence(t *testing.T) {
	repo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo()
	now := time.Date(2026, 8, 12, 11, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(repo, userRepo, now)

	present := &model.User{ID: uuid.New(), Name: "Anna", EmployeeID: "E1", Role: model.RoleEmployee}
	late := &model.User{ID: uuid.New(), Name: "Ben", EmployeeID: "E2", Role: model.RoleEmployee}
	missing := &model.User{ID: uuid.New(), Name: "Cara", EmployeeID: "E3", Role: model.RoleEmployee, Department: "Sales"}
	for _, u := range []*model.User{present, late, missing} {
		userRepo.users[u.ID] = u
	}

	today := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	seedRecord(repo, present.ID, today, model.StatusPresent, 0)
	seedRecord(repo, late.ID, today, model.StatusLate, 0)

	status, err := svc.TodayStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalEmployees)
	assert.Equal(t, 1, status.Present)
	assert.Equal(t, 1, status.Late)
	assert.Equal(t, 1, status.Absent)
	require.Len(t, status.AbsentEmployees, 1)
	assert.Equal(t, "E3", status.AbsentEmployees[0].EmployeeID)
	assert.Equal(t, "Sales", status.AbsentEmployees[0].Department)
}

func TestExportCSVHeaderOnlyWhenEmpty(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Now())

	data, err := svc.ExportCSV(context.Background(), repository.AttendanceFilter{})

	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestExportCSVRows(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, newFakeUserRepo(), time.Now())

	checkIn := time.Date(2026, 8, 12, 8, 45, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 12, 17, 15, 0, 0, time.UTC)
	repo.records = append(repo.records, &model.Attendance{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		User:         &model.User{Name: "Anna", EmployeeID: "E1", Department: "Engineering"},
		Date:         time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       model.StatusPresent,
		TotalHours:   8.5,
	})

	data, err := svc.ExportCSV(context.Background(), repository.AttendanceFilter{})

	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-08-12", "E1", "Anna", "Engineering", "08:45:00", "17:15:00", "present", "8.50"}, rows[1])
}

func TestByEmployeeUnknownID(t *testing.T) {
	svc := newTestAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(), time.Now())

	_, err := svc.ByEmployee(context.Background(), "NOPE", time.August, 2026)

	assert.ErrorIs(t, err, ErrNotFound)
}
