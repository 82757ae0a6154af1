package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.User, error) {
	for _, user := range f.users {
		if user.EmployeeID == employeeID {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ListEmployees(_ context.Context) ([]model.User, error) {
	var employees []model.User
	for _, user := range f.users {
		if user.Role == model.RoleEmployee {
			employees = append(employees, *user)
		}
	}
	return employees, nil
}

func (f *fakeUserRepo) CountEmployees(ctx context.Context) (int64, error) {
	employees, _ := f.ListEmployees(ctx)
	return int64(len(employees)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeAttendanceRepo struct {
	records []*model.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (f *fakeAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	if attendance.ID == uuid.Nil {
		attendance.ID = uuid.New()
	}
	f.records = append(f.records, attendance)
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, attendance *model.Attendance) error {
	for i, r := range f.records {
		if r.ID == attendance.ID {
			f.records[i] = attendance
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	for _, r := range f.records {
		if r.UserID == userID && sameDay(r.Date, date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListByUserBetween(_ context.Context, userID uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, r := range f.records {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) matches(r *model.Attendance, filter repository.AttendanceFilter) bool {
	if filter.UserID != nil && r.UserID != *filter.UserID {
		return false
	}
	if filter.StartDate != nil && r.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && r.Date.After(*filter.EndDate) {
		return false
	}
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	return true
}

func (f *fakeAttendanceRepo) ListBetween(_ context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, r := range f.records {
		if f.matches(r, filter) {
			out = append(out, *r)
		}
	}
	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
		if len(out) > filter.Limit {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountBetween(_ context.Context, filter repository.AttendanceFilter) (int64, error) {
	var total int64
	for _, r := range f.records {
		if f.matches(r, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, r := range f.records {
		if sameDay(r.Date, date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves map[uuid.UUID]*model.Leave
	audits []*model.AuditLog
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[uuid.UUID]*model.Leave)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	if leave.ID == uuid.Nil {
		leave.ID = uuid.New()
	}
	f.leaves[leave.ID] = leave
	return nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Leave, error) {
	if leave, ok := f.leaves[id]; ok {
		return leave, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Leave, error) {
	var out []model.Leave
	for _, l := range f.leaves {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, status string) ([]model.Leave, error) {
	var out []model.Leave
	for _, l := range f.leaves {
		if status == "" || l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateWithAudit(_ context.Context, leave *model.Leave, audit *model.AuditLog) error {
	f.leaves[leave.ID] = leave
	f.audits = append(f.audits, audit)
	return nil
}

type fakeProblemRepo struct {
	reports map[uuid.UUID]*model.ProblemReport
	audits  []*model.AuditLog
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{reports: make(map[uuid.UUID]*model.ProblemReport)}
}

func (f *fakeProblemRepo) Create(_ context.Context, report *model.ProblemReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	f.reports[report.ID] = report
	return nil
}

func (f *fakeProblemRepo) GetByID(_ context.Context, id uuid.UUID) (*model.ProblemReport, error) {
	if report, ok := f.reports[id]; ok {
		return report, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProblemRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.ProblemReport, error) {
	var out []model.ProblemReport
	for _, r := range f.reports {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeProblemRepo) List(_ context.Context, filter repository.ProblemFilter) ([]model.ProblemReport, error) {
	var out []model.ProblemReport
	for _, r := range f.reports {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && r.Priority != filter.Priority {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeProblemRepo) UpdateWithAudit(_ context.Context, report *model.ProblemReport, audit *model.AuditLog) error {
	f.reports[report.ID] = report
	f.audits = append(f.audits, audit)
	return nil
}

type fakeRegistrationRepo struct {
	requests     map[uuid.UUID]*model.RegistrationRequest
	createdUsers []*model.User
	audits       []*model.AuditLog
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{requests: make(map[uuid.UUID]*model.RegistrationRequest)}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, request *model.RegistrationRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.RegistrationRequest, error) {
	if request, ok := f.requests[id]; ok {
		return request, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegistrationRepo) List(_ context.Context, status string) ([]model.RegistrationRequest, error) {
	var out []model.RegistrationRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) PendingExists(_ context.Context, email, employeeID string) (bool, error) {
	for _, r := range f.requests {
		if r.Status == model.ReviewPending && (r.Email == email || r.EmployeeID == employeeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationRepo) Approve(_ context.Context, request *model.RegistrationRequest, user *model.User, audit *model.AuditLog) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.createdUsers = append(f.createdUsers, user)
	f.requests[request.ID] = request
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakeRegistrationRepo) RejectWithAudit(_ context.Context, request *model.RegistrationRequest, audit *model.AuditLog) error {
	f.requests[request.ID] = request
	f.audits = append(f.audits, audit)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *model.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) GetByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTokenRepo) DeleteByToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context, now time.Time) error {
	for key, t := range f.tokens {
		if t.ExpiresAt.Before(now) {
			delete(f.tokens, key)
		}
	}
	return nil
}
