package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Used when a manager rejects without giving a reason.
const defaultRejectionReason = "No reason provided"

// DTO for Request validation
type RejectRegistrationRequest struct {
	Reason string `json:"reason"`
}

// RegistrationService defines the interface for business logic related to RegistrationRequest
type RegistrationService interface {
	List(ctx context.Context, status string) ([]model.RegistrationRequest, error)
	Approve(ctx context.Context, id, reviewerID uuid.UUID) (*model.User, error)
	Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*model.RegistrationRequest, error)
}

type registrationService struct {
	repo     repository.RegistrationRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewRegistrationService returns a new instance of RegistrationService
func NewRegistrationService(repo repository.RegistrationRepository, userRepo repository.UserRepository) RegistrationService {
	return &registrationService{repo: repo, userRepo: userRepo, now: time.Now}
}

func (s *registrationService) List(ctx context.Context, status string) ([]model.RegistrationRequest, error) {
	return s.repo.List(ctx, status)
}

// Approve turns a pending request into an employee account. The password was
// hashed at registration time and is copied over unchanged.
func (s *registrationService) Approve(ctx context.Context, id, reviewerID uuid.UUID) (*model.User, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != model.ReviewPending {
		return nil, ErrAlreadyReviewed
	}

	// An account may have been created since the request was filed.
	if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.userRepo.GetByEmployeeID(ctx, request.EmployeeID); err == nil {
		return nil, ErrEmployeeIDTaken
	}

	user := &model.User{
		Name:       request.Name,
		Email:      request.Email,
		Password:   request.Password,
		Role:       model.RoleEmployee,
		EmployeeID: request.EmployeeID,
		Department: request.Department,
	}

	now := s.now()
	request.Status = model.ReviewApproved
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now

	details, _ := json.Marshal(map[string]interface{}{
		"email":       request.Email,
		"employee_id": request.EmployeeID,
		"department":  request.Department,
	})
	audit := &model.AuditLog{
		UserID:     &reviewerID,
		Action:     model.ActionApproveRegistration,
		EntityID:   request.ID.String(),
		EntityName: request.Name,
		Details:    string(details),
	}

	if err := s.repo.Approve(ctx, request, user, audit); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *registrationService) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*model.RegistrationRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != model.ReviewPending {
		return nil, ErrAlreadyReviewed
	}

	if reason == "" {
		reason = defaultRejectionReason
	}

	now := s.now()
	request.Status = model.ReviewRejected
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.RejectionReason = reason

	details, _ := json.Marshal(map[string]interface{}{
		"email":       request.Email,
		"employee_id": request.EmployeeID,
		"reason":      reason,
	})
	audit := &model.AuditLog{
		UserID:     &reviewerID,
		Action:     model.ActionRejectRegistration,
		EntityID:   request.ID.String(),
		EntityName: request.Name,
		Details:    string(details),
	}

	if err := s.repo.RejectWithAudit(ctx, request, audit); err != nil {
		return nil, err
	}
	return request, nil
}
