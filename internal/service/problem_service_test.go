package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openProblem(repo *fakeProblemRepo, userID uuid.UUID) *model.ProblemReport {
	report := &model.ProblemReport{
		ID:          uuid.New(),
		UserID:      userID,
		Subject:     "badge reader broken",
		Description: "cannot check in at the front door",
		Category:    model.CategoryTechnical,
		Priority:    model.PriorityHigh,
		Status:      model.ProblemOpen,
	}
	repo.reports[report.ID] = report
	return report
}

func TestReportProblemDefaults(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)

	report, err := svc.Report(context.Background(), uuid.New(), ReportProblemRequest{
		Subject:     "wrong hours",
		Description: "yesterday shows 0 hours",
	})

	require.NoError(t, err)
	assert.Equal(t, model.CategoryOther, report.Category)
	assert.Equal(t, model.PriorityMedium, report.Priority)
	assert.Equal(t, model.ProblemOpen, report.Status)
}

func TestResolveProblemRequiresResolution(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)
	report := openProblem(repo, uuid.New())

	_, err := svc.UpdateStatus(context.Background(), report.ID, uuid.New(), UpdateProblemRequest{
		Status: model.ProblemResolved,
	})

	assert.ErrorIs(t, err, ErrResolutionRequired)
}

func TestResolveProblemStampsResolver(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)
	report := openProblem(repo, uuid.New())
	managerID := uuid.New()

	resolved, err := svc.UpdateStatus(context.Background(), report.ID, managerID, UpdateProblemRequest{
		Status:     model.ProblemResolved,
		Resolution: "replaced the badge reader",
	})

	require.NoError(t, err)
	assert.Equal(t, model.ProblemResolved, resolved.Status)
	assert.Equal(t, &managerID, resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "replaced the badge reader", resolved.Resolution)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, model.ActionResolveProblem, repo.audits[0].Action)
}

func TestResolveShorthand(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)
	report := openProblem(repo, uuid.New())
	managerID := uuid.New()

	resolved, err := svc.Resolve(context.Background(), report.ID, managerID, "reset the account")

	require.NoError(t, err)
	assert.Equal(t, model.ProblemResolved, resolved.Status)
	assert.Equal(t, "reset the account", resolved.Resolution)
	assert.Equal(t, &managerID, resolved.ResolvedBy)
}

func TestCloseProblemRequiresResolution(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)
	report := openProblem(repo, uuid.New())

	_, err := svc.UpdateStatus(context.Background(), report.ID, uuid.New(), UpdateProblemRequest{
		Status: model.ProblemClosed,
	})

	assert.ErrorIs(t, err, ErrResolutionRequired)
}

func TestMoveProblemToInProgress(t *testing.T) {
	repo := newFakeProblemRepo()
	svc := NewProblemService(repo)
	report := openProblem(repo, uuid.New())

	updated, err := svc.UpdateStatus(context.Background(), report.ID, uuid.New(), UpdateProblemRequest{
		Status: model.ProblemInProgress,
	})

	require.NoError(t, err)
	assert.Equal(t, model.ProblemInProgress, updated.Status)
	assert.Nil(t, updated.ResolvedBy)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, model.ActionUpdateProblemStatus, repo.audits[0].Action)
}

func TestUpdateProblemNotFound(t *testing.T) {
	svc := NewProblemService(newFakeProblemRepo())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), UpdateProblemRequest{
		Status: model.ProblemClosed,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
