package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProblemFilter narrows problem report queries for the manager list view
type ProblemFilter struct {
	Status   string
	Priority string
	Category string
}

// ProblemRepository defines the interface for data access of ProblemReport entities
type ProblemRepository interface {
	Create(ctx context.Context, report *model.ProblemReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProblemReport, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ProblemReport, error)
	List(ctx context.Context, filter ProblemFilter) ([]model.ProblemReport, error)
	UpdateWithAudit(ctx context.Context, report *model.ProblemReport, audit *model.AuditLog) error
}

type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository returns a new instance of ProblemRepository
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Create(ctx context.Context, report *model.ProblemReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *problemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProblemReport, error) {
	var report model.ProblemReport
	if err := r.db.WithContext(ctx).Preload("User").First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *problemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ProblemReport, error) {
	var reports []model.ProblemReport
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *problemRepository) List(ctx context.Context, filter ProblemFilter) ([]model.ProblemReport, error) {
	var reports []model.ProblemReport
	query := r.db.WithContext(ctx).Preload("User").Preload("Resolver").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateWithAudit persists a status change and its audit log atomically
func (r *problemRepository) UpdateWithAudit(ctx context.Context, report *model.ProblemReport, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
