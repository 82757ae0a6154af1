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

// DTOs for Request validation
type ApplyLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	LeaveType string `json:"leave_type" binding:"required,oneof=sick vacation personal emergency other"`
	Reason    string `json:"reason" binding:"required"`
}

type ReviewLeaveRequest struct {
	Comment string `json:"comment"`
}

// LeaveService defines the interface for business logic related to Leave
type LeaveService interface {
	Apply(ctx context.Context, userID uuid.UUID, req ApplyLeaveRequest) (*model.Leave, error)
	MyLeaves(ctx context.Context, userID uuid.UUID) ([]model.Leave, error)
	List(ctx context.Context, status string) ([]model.Leave, error)
	Approve(ctx context.Context, id, reviewerID uuid.UUID, comment string) (*model.Leave, error)
	Reject(ctx context.Context, id, reviewerID uuid.UUID, comment string) (*model.Leave, error)
}

type leaveService struct {
	repo repository.LeaveRepository
	now  func() time.Time
}

// NewLeaveService returns a new instance of LeaveService
func NewLeaveService(repo repository.LeaveRepository) LeaveService {
	return &leaveService{repo: repo, now: time.Now}
}

func (s *leaveService) Apply(ctx context.Context, userID uuid.UUID, req ApplyLeaveRequest) (*model.Leave, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end date")
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	leave := &model.Leave{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		Status:    model.ReviewPending,
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) MyLeaves(ctx context.Context, userID uuid.UUID) ([]model.Leave, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *leaveService) List(ctx context.Context, status string) ([]model.Leave, error) {
	return s.repo.List(ctx, status)
}

func (s *leaveService) Approve(ctx context.Context, id, reviewerID uuid.UUID, comment string) (*model.Leave, error) {
	return s.review(ctx, id, reviewerID, model.ReviewApproved, comment, model.ActionApproveLeave)
}

// Reject requires a comment so the employee always learns why.
func (s *leaveService) Reject(ctx context.Context, id, reviewerID uuid.UUID, comment string) (*model.Leave, error) {
	if comment == "" {
		return nil, ErrCommentRequired
	}
	return s.review(ctx, id, reviewerID, model.ReviewRejected, comment, model.ActionRejectLeave)
}

func (s *leaveService) review(ctx context.Context, id, reviewerID uuid.UUID, status, comment, action string) (*model.Leave, error) {
	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if leave.Status != model.ReviewPending {
		return nil, ErrAlreadyReviewed
	}

	now := s.now()
	leave.Status = status
	leave.ReviewedBy = &reviewerID
	leave.ReviewComment = comment
	leave.ReviewedAt = &now

	details, _ := json.Marshal(map[string]interface{}{
		"status":     status,
		"comment":    comment,
		"start_date": leave.StartDate.Format("2006-01-02"),
		"end_date":   leave.EndDate.Format("2006-01-02"),
		"leave_type": leave.LeaveType,
	})
	entityName := ""
	if leave.User != nil {
		entityName = leave.User.Name
	}
	audit := &model.AuditLog{
		UserID:     &reviewerID,
		Action:     action,
		EntityID:   leave.ID.String(),
		EntityName: entityName,
		Details:    string(details),
	}

	if err := s.repo.UpdateWithAudit(ctx, leave, audit); err != nil {
		return nil, err
	}
	return leave, nil
}
