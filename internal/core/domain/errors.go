package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers get one generic failure on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrSessionExpired     = errors.New("session expired")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrSectionNotFound = errors.New("configuration section not found")
	ErrItemNotFound    = errors.New("configuration item not found")

	ErrOperationNotFound = errors.New("operation not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrVehicleNotFound   = errors.New("campaign vehicle not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyClosed    = errors.New("task already closed")
	ErrObservationsRequired = errors.New("observations are required to close a task")

	ErrForbidden = errors.New("access forbidden")
)
