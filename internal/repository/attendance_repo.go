package repository

import (
	"backend/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceFilter narrows attendance queries for manager views and exports
type AttendanceFilter struct {
	UserID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Offset    int
	Limit     int // 0 means no limit (exports fetch every matching row)
}

// AttendanceRepository defines the interface for data access of Attendance entities
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	Update(ctx context.Context, attendance *model.Attendance) error
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error)
	ListByUserBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Attendance, error)
	ListBetween(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
	CountBetween(ctx context.Context, filter AttendanceFilter) (int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository returns a new instance of AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) ListByUserBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) applyFilter(ctx context.Context, filter AttendanceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.Format("2006-01-02"))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *attendanceRepository) ListBetween(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	var records []model.Attendance
	query := r.applyFilter(ctx, filter).Preload("User").Order("date DESC")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) CountBetween(ctx context.Context, filter AttendanceFilter) (int64, error) {
	var total int64
	if err := r.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("date = ?", date.Format("2006-01-02")).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
