package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRepository defines the interface for data access of Leave entities
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Leave, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error)
	List(ctx context.Context, status string) ([]model.Leave, error)
	UpdateWithAudit(ctx context.Context, leave *model.Leave, audit *model.AuditLog) error
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository returns a new instance of LeaveRepository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	var leave model.Leave
	if err := r.db.WithContext(ctx).Preload("User").First(&leave, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) List(ctx context.Context, status string) ([]model.Leave, error) {
	var leaves []model.Leave
	query := r.db.WithContext(ctx).Preload("User").Preload("Reviewer").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// UpdateWithAudit persists a review decision and its audit log atomically
func (r *leaveRepository) UpdateWithAudit(ctx context.Context, leave *model.Leave, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(leave).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
