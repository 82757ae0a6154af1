package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

const trendDays = 7

// EmployeeDashboard is the landing view for an employee
type EmployeeDashboard struct {
	Today            *model.Attendance    `json:"today"`
	Summary          model.MonthlySummary `json:"summary"`
	RecentAttendance []model.Attendance   `json:"recentAttendance"`
	PendingLeaves    int                  `json:"pendingLeaves"`
	OpenProblems     int                  `json:"openProblems"`
}

// ManagerDashboard is the landing view for a manager
type ManagerDashboard struct {
	Today                *model.TodayStatus     `json:"today"`
	WeeklyTrend          []model.DailyTrend     `json:"weeklyTrend"`
	Departments          []model.DepartmentStat `json:"departments"`
	PendingLeaves        int                    `json:"pendingLeaves"`
	PendingRegistrations int                    `json:"pendingRegistrations"`
	OpenProblems         int                    `json:"openProblems"`
}

// DashboardService defines the interface for the aggregated landing views
type DashboardService interface {
	Employee(ctx context.Context, userID uuid.UUID) (*EmployeeDashboard, error)
	Manager(ctx context.Context) (*ManagerDashboard, error)
	BestEmployees(ctx context.Context, month time.Month, year int) ([]model.EmployeeStats, error)
}

type dashboardService struct {
	attendance AttendanceService
	attRepo    repository.AttendanceRepository
	userRepo   repository.UserRepository
	leaveRepo  repository.LeaveRepository
	probRepo   repository.ProblemRepository
	regRepo    repository.RegistrationRepository
	now        func() time.Time
}

// NewDashboardService returns a new instance of DashboardService
func NewDashboardService(
	attendance AttendanceService,
	attRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	leaveRepo repository.LeaveRepository,
	probRepo repository.ProblemRepository,
	regRepo repository.RegistrationRepository,
) DashboardService {
	return &dashboardService{
		attendance: attendance,
		attRepo:    attRepo,
		userRepo:   userRepo,
		leaveRepo:  leaveRepo,
		probRepo:   probRepo,
		regRepo:    regRepo,
		now:        time.Now,
	}
}

func (s *dashboardService) Employee(ctx context.Context, userID uuid.UUID) (*EmployeeDashboard, error) {
	now := s.now()

	today, err := s.attendance.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.attendance.MySummary(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return nil, err
	}

	weekStart := dateOnly(now).AddDate(0, 0, -trendDays)
	recent, err := s.attRepo.ListByUserBetween(ctx, userID, weekStart, dateOnly(now))
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	pendingLeaves := 0
	for _, l := range leaves {
		if l.Status == model.ReviewPending {
			pendingLeaves++
		}
	}

	problems, err := s.probRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	openProblems := 0
	for _, p := range problems {
		if p.Status == model.ProblemOpen || p.Status == model.ProblemInProgress {
			openProblems++
		}
	}

	return &EmployeeDashboard{
		Today:            today,
		Summary:          *summary,
		RecentAttendance: recent,
		PendingLeaves:    pendingLeaves,
		OpenProblems:     openProblems,
	}, nil
}

func (s *dashboardService) Manager(ctx context.Context) (*ManagerDashboard, error) {
	today, err := s.attendance.TodayStatus(ctx)
	if err != nil {
		return nil, err
	}

	trend, err := s.weeklyTrend(ctx, today.TotalEmployees)
	if err != nil {
		return nil, err
	}
	departments, err := s.departmentStats(ctx)
	if err != nil {
		return nil, err
	}

	pendingLeaves, err := s.leaveRepo.List(ctx, model.ReviewPending)
	if err != nil {
		return nil, err
	}
	pendingRegs, err := s.regRepo.List(ctx, model.ReviewPending)
	if err != nil {
		return nil, err
	}
	problems, err := s.probRepo.List(ctx, repository.ProblemFilter{})
	if err != nil {
		return nil, err
	}
	openProblems := 0
	for _, p := range problems {
		if p.Status == model.ProblemOpen || p.Status == model.ProblemInProgress {
			openProblems++
		}
	}

	return &ManagerDashboard{
		Today:                today,
		WeeklyTrend:          trend,
		Departments:          departments,
		PendingLeaves:        len(pendingLeaves),
		PendingRegistrations: len(pendingRegs),
		OpenProblems:         openProblems,
	}, nil
}

// weeklyTrend counts presence per day over the last week, today included.
func (s *dashboardService) weeklyTrend(ctx context.Context, totalEmployees int) ([]model.DailyTrend, error) {
	trend := make([]model.DailyTrend, 0, trendDays)
	today := dateOnly(s.now())

	for offset := trendDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		records, err := s.attRepo.ListByDate(ctx, day)
		if err != nil {
			return nil, err
		}

		entry := model.DailyTrend{Date: day.Format("2006-01-02")}
		attended := 0
		for _, r := range records {
			switch r.Status {
			case model.StatusLate:
				entry.Late++
				attended++
			case model.StatusAbsent:
			default:
				entry.Present++
				attended++
			}
		}
		if absent := totalEmployees - attended; absent > 0 {
			entry.Absent = absent
		}
		trend = append(trend, entry)
	}
	return trend, nil
}

// departmentStats breaks today's presence down per department.
func (s *dashboardService) departmentStats(ctx context.Context) ([]model.DepartmentStat, error) {
	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attRepo.ListByDate(ctx, dateOnly(s.now()))
	if err != nil {
		return nil, err
	}

	attended := make(map[uuid.UUID]bool, len(records))
	for _, r := range records {
		if r.Status != model.StatusAbsent {
			attended[r.UserID] = true
		}
	}

	byName := make(map[string]*model.DepartmentStat)
	order := make([]string, 0)
	for _, emp := range employees {
		stat, ok := byName[emp.Department]
		if !ok {
			stat = &model.DepartmentStat{Department: emp.Department}
			byName[emp.Department] = stat
			order = append(order, emp.Department)
		}
		stat.Total++
		if attended[emp.ID] {
			stat.Present++
		} else {
			stat.Absent++
		}
	}

	stats := make([]model.DepartmentStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, *byName[name])
	}
	return stats, nil
}

// BestEmployees ranks employees by monthly performance score.
func (s *dashboardService) BestEmployees(ctx context.Context, month time.Month, year int) ([]model.EmployeeStats, error) {
	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	start, end := monthRange(month, year)
	records, err := s.attRepo.ListBetween(ctx, repository.AttendanceFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]model.Attendance, len(employees))
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	workingDays := elapsedWorkingDays(s.now(), month, year)
	stats := make([]model.EmployeeStats, 0, len(employees))
	for _, emp := range employees {
		stat := model.EmployeeStats{
			EmployeeID: emp.EmployeeID,
			Name:       emp.Name,
			Email:      emp.Email,
			Department: emp.Department,
		}
		totalHours := 0.0
		halfDays := 0
		for _, r := range byUser[emp.ID] {
			switch r.Status {
			case model.StatusPresent:
				stat.Present++
			case model.StatusLate:
				stat.Late++
			case model.StatusHalfDay:
				halfDays++
			}
			totalHours += r.TotalHours
		}
		if absent := workingDays - stat.Present - stat.Late - halfDays; absent > 0 {
			stat.Absent = absent
		}
		stat.TotalHours = round2(totalHours)
		stat.Score = PerformanceScore(stat.Present, stat.Late, halfDays, workingDays)
		stat.AttendanceRate = AttendanceRate(stat.Present, stat.Late, halfDays, workingDays)
		stats = append(stats, stat)
	}

	return RankEmployees(stats), nil
}
