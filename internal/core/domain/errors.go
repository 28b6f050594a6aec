package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is deactivated")
	ErrNotAFaculty       = errors.New("referenced user is not an active faculty member")
)

// Leave errors
var (
	ErrLeaveNotFound      = errors.New("leave not found")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrDocumentRequired   = errors.New("supporting document required")
	ErrGuideNotFound      = errors.New("student has no guide on record")
	ErrInvalidTransition  = errors.New("leave is not in a state that allows this action")
	ErrNotApprover        = errors.New("actor is not an approver for this leave")
	ErrBalanceNotFound    = errors.New("leave balance not found")
	ErrHolidayNotFound    = errors.New("holiday not found")
)
