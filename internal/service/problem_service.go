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
type ReportProblemRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"omitempty,oneof=attendance technical account other"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

type UpdateProblemRequest struct {
	Status     string `json:"status" binding:"required,oneof=open in-progress resolved closed"`
	Resolution string `json:"resolution"`
}

type ResolveProblemRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// ProblemService defines the interface for business logic related to ProblemReport
type ProblemService interface {
	Report(ctx context.Context, userID uuid.UUID, req ReportProblemRequest) (*model.ProblemReport, error)
	MyReports(ctx context.Context, userID uuid.UUID) ([]model.ProblemReport, error)
	List(ctx context.Context, filter repository.ProblemFilter) ([]model.ProblemReport, error)
	Resolve(ctx context.Context, id, managerID uuid.UUID, resolution string) (*model.ProblemReport, error)
	UpdateStatus(ctx context.Context, id, managerID uuid.UUID, req UpdateProblemRequest) (*model.ProblemReport, error)
}

type problemService struct {
	repo repository.ProblemRepository
	now  func() time.Time
}

// NewProblemService returns a new instance of ProblemService
func NewProblemService(repo repository.ProblemRepository) ProblemService {
	return &problemService{repo: repo, now: time.Now}
}

func (s *problemService) Report(ctx context.Context, userID uuid.UUID, req ReportProblemRequest) (*model.ProblemReport, error) {
	report := &model.ProblemReport{
		UserID:      userID,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      model.ProblemOpen,
	}
	if report.Category == "" {
		report.Category = model.CategoryOther
	}
	if report.Priority == "" {
		report.Priority = model.PriorityMedium
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *problemService) MyReports(ctx context.Context, userID uuid.UUID) ([]model.ProblemReport, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *problemService) List(ctx context.Context, filter repository.ProblemFilter) ([]model.ProblemReport, error) {
	return s.repo.List(ctx, filter)
}

// Resolve marks a report resolved with the given resolution text.
func (s *problemService) Resolve(ctx context.Context, id, managerID uuid.UUID, resolution string) (*model.ProblemReport, error) {
	return s.UpdateStatus(ctx, id, managerID, UpdateProblemRequest{
		Status:     model.ProblemResolved,
		Resolution: resolution,
	})
}

// UpdateStatus moves a report to any status. Resolving or closing requires a
// resolution text and stamps the resolver.
func (s *problemService) UpdateStatus(ctx context.Context, id, managerID uuid.UUID, req UpdateProblemRequest) (*model.ProblemReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	action := model.ActionUpdateProblemStatus
	report.Status = req.Status
	if req.Status == model.ProblemResolved || req.Status == model.ProblemClosed {
		if req.Resolution == "" {
			return nil, ErrResolutionRequired
		}
		now := s.now()
		report.Resolution = req.Resolution
		report.ResolvedBy = &managerID
		report.ResolvedAt = &now
		if req.Status == model.ProblemResolved {
			action = model.ActionResolveProblem
		}
	}

	details, _ := json.Marshal(map[string]interface{}{
		"status":     req.Status,
		"resolution": req.Resolution,
		"subject":    report.Subject,
	})
	entityName := ""
	if report.User != nil {
		entityName = report.User.Name
	}
	audit := &model.AuditLog{
		UserID:     &managerID,
		Action:     action,
		EntityID:   report.ID.String(),
		EntityName: entityName,
		Details:    string(details),
	}

	if err := s.repo.UpdateWithAudit(ctx, report, audit); err != nil {
		return nil, err
	}
	return report, nil
}
