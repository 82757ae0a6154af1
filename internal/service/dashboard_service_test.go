package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(attRepo *fakeAttendanceRepo, userRepo *fakeUserRepo, leaveRepo *fakeLeaveRepo, probRepo *fakeProblemRepo, regRepo *fakeRegistrationRepo, at time.Time) *dashboardService {
	attendance := newTestAttendanceService(attRepo, userRepo, at)
	svc := NewDashboardService(attendance, attRepo, userRepo, leaveRepo, probRepo, regRepo).(*dashboardService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestBestEmployeesRanking(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestDashboardService(attRepo, userRepo, newFakeLeaveRepo(), newFakeProblemRepo(), newFakeRegistrationRepo(), now)

	full := &model.User{ID: uuid.New(), Name: "Anna", EmployeeID: "E1", Role: model.RoleEmployee}
	partial := &model.User{ID: uuid.New(), Name: "Ben", EmployeeID: "E2", Role: model.RoleEmployee}
	userRepo.users[full.ID] = full
	userRepo.users[partial.ID] = partial

	// July 2026 has 23 working days. Anna attends all of them, Ben ten.
	attended := 0
	for d := 1; d <= 31 && attended < 23; d++ {
		day := time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		seedRecord(attRepo, full.ID, day, model.StatusPresent, 8)
		if attended < 10 {
			seedRecord(attRepo, partial.ID, day, model.StatusPresent, 8)
		}
		attended++
	}

	stats, err := svc.BestEmployees(context.Background(), time.July, 2026)

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "E1", stats[0].EmployeeID)
	assert.Equal(t, 100.0, stats[0].Score)
	assert.Equal(t, "E2", stats[1].EmployeeID)
	assert.Equal(t, 43.48, stats[1].Score)
	assert.Equal(t, 13, stats[1].Absent)
}

func TestEmployeeDashboardCounts(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo()
	leaveRepo := newFakeLeaveRepo()
	probRepo := newFakeProblemRepo()
	now := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestDashboardService(attRepo, userRepo, leaveRepo, probRepo, newFakeRegistrationRepo(), now)

	userID := uuid.New()
	seedRecord(attRepo, userID, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), model.StatusPresent, 0)
	seedRecord(attRepo, userID, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), model.StatusLate, 7)
	// Outside the trailing week, must not appear in recent records.
	seedRecord(attRepo, userID, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), model.StatusPresent, 8)

	pendingLeave(leaveRepo, userID)
	approved := pendingLeave(leaveRepo, userID)
	approved.Status = model.ReviewApproved

	openProblem(probRepo, userID)
	closed := openProblem(probRepo, userID)
	closed.Status = model.ProblemClosed

	dashboard, err := svc.Employee(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, dashboard.Today)
	assert.Len(t, dashboard.RecentAttendance, 2)
	assert.Equal(t, 1, dashboard.PendingLeaves)
	assert.Equal(t, 1, dashboard.OpenProblems)
}

func TestManagerDashboardPendingCounts(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo()
	leaveRepo := newFakeLeaveRepo()
	probRepo := newFakeProblemRepo()
	regRepo := newFakeRegistrationRepo()
	now := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestDashboardService(attRepo, userRepo, leaveRepo, probRepo, regRepo, now)

	emp := &model.User{ID: uuid.New(), Name: "Anna", EmployeeID: "E1", Role: model.RoleEmployee, Department: "Engineering"}
	userRepo.users[emp.ID] = emp

	pendingLeave(leaveRepo, emp.ID)
	openProblem(probRepo, emp.ID)
	inProgress := openProblem(probRepo, emp.ID)
	inProgress.Status = model.ProblemInProgress
	resolved := openProblem(probRepo, emp.ID)
	resolved.Status = model.ProblemResolved
	pendingRegistration(regRepo)

	dashboard, err := svc.Manager(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.PendingLeaves)
	// Open and in-progress both count as outstanding; resolved does not.
	assert.Equal(t, 2, dashboard.OpenProblems)
	assert.Equal(t, 1, dashboard.PendingRegistrations)
	assert.Len(t, dashboard.WeeklyTrend, 7)
	require.Len(t, dashboard.Departments, 1)
	assert.Equal(t, "Engineering", dashboard.Departments[0].Department)
	assert.Equal(t, 1, dashboard.Departments[0].Absent)
}
