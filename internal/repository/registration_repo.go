package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationRepository defines the interface for data access of RegistrationRequest entities
type RegistrationRepository interface {
	Create(ctx context.Context, request *model.RegistrationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RegistrationRequest, error)
	List(ctx context.Context, status string) ([]model.RegistrationRequest, error)
	PendingExists(ctx context.Context, email, employeeID string) (bool, error)
	Approve(ctx context.Context, request *model.RegistrationRequest, user *model.User, audit *model.AuditLog) error
	RejectWithAudit(ctx context.Context, request *model.RegistrationRequest, audit *model.AuditLog) error
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository returns a new instance of RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, request *model.RegistrationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RegistrationRequest, error) {
	var request model.RegistrationRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *registrationRepository) List(ctx context.Context, status string) ([]model.RegistrationRequest, error) {
	var requests []model.RegistrationRequest
	query := r.db.WithContext(ctx).Preload("Reviewer").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *registrationRepository) PendingExists(ctx context.Context, email, employeeID string) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.RegistrationRequest{}).
		Where("status = ? AND (email = ? OR employee_id = ?)", model.ReviewPending, email, employeeID).
		Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// Approve creates the user account, marks the request approved and writes the
// audit log in one transaction. The unique indexes on users guard against a
// concurrent approval racing the duplicate checks done in the service layer.
func (r *registrationRepository) Approve(ctx context.Context, request *model.RegistrationRequest, user *model.User, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *registrationRepository) RejectWithAudit(ctx context.Context, request *model.RegistrationRequest, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
