package service

import "errors"

// Sentinel errors let handlers map business failures to HTTP status codes
// without string matching.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrEmailTaken         = errors.New("email already exists")
	ErrEmployeeIDTaken    = errors.New("employee id already exists")
	ErrPendingRequest     = errors.New("a pending registration request already exists for this email or employee id")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrAlreadyReviewed    = errors.New("request has already been reviewed")
	ErrCommentRequired    = errors.New("a comment is required when rejecting a leave request")
	ErrResolutionRequired = errors.New("a resolution is required when resolving a problem report")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)
