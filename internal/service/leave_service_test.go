package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingLeave(repo *fakeLeaveRepo, userID uuid.UUID) *model.Leave {
	leave := &model.Leave{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		LeaveType: model.LeaveVacation,
		Reason:    "family trip",
		Status:    model.ReviewPending,
	}
	repo.leaves[leave.ID] = leave
	return leave
}

func TestApplyLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo)

	leave, err := svc.Apply(context.Background(), uuid.New(), ApplyLeaveRequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		LeaveType: model.LeaveSick,
		Reason:    "flu",
	})

	require.NoError(t, err)
	assert.Equal(t, model.ReviewPending, leave.Status)
	assert.Equal(t, "2026-09-01", leave.StartDate.Format("2006-01-02"))
	assert.Len(t, repo.leaves, 1)
}

func TestApplyLeaveEndBeforeStart(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveRepo())

	_, err := svc.Apply(context.Background(), uuid.New(), ApplyLeaveRequest{
		StartDate: "2026-09-03",
		EndDate:   "2026-09-01",
		LeaveType: model.LeaveSick,
		Reason:    "flu",
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestApproveLeaveWritesAudit(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo)
	leave := pendingLeave(repo, uuid.New())
	reviewerID := uuid.New()

	reviewed, err := svc.Approve(context.Background(), leave.ID, reviewerID, "enjoy")

	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, reviewed.Status)
	assert.Equal(t, &reviewerID, reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, model.ActionApproveLeave, repo.audits[0].Action)
	assert.Equal(t, leave.ID.String(), repo.audits[0].EntityID)
}

func TestRejectLeaveRequiresComment(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo)
	leave := pendingLeave(repo, uuid.New())

	_, err := svc.Reject(context.Background(), leave.ID, uuid.New(), "")

	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.Equal(t, model.ReviewPending, repo.leaves[leave.ID].Status)
}

func TestRejectLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo)
	leave := pendingLeave(repo, uuid.New())

	reviewed, err := svc.Reject(context.Background(), leave.ID, uuid.New(), "short staffed that week")

	require.NoError(t, err)
	assert.Equal(t, model.ReviewRejected, reviewed.Status)
	assert.Equal(t, "short staffed that week", reviewed.ReviewComment)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, model.ActionRejectLeave, repo.audits[0].Action)
}

func TestReviewLeaveTwice(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo)
	leave := pendingLeave(repo, uuid.New())

	_, err := svc.Approve(context.Background(), leave.ID, uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), leave.ID, uuid.New(), "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewLeaveNotFound(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveRepo())

	_, err := svc.Approve(context.Background(), uuid.New(), uuid.New(), "")

	assert.ErrorIs(t, err, ErrNotFound)
}
