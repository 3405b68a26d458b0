package booking

import "errors"

var (
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrAreaNotFound         = errors.New("area not found in workspace")
	ErrWorkspaceNotBookable = errors.New("workspace is not bookable")
	ErrCapacityUnavailable  = errors.New("capacity no longer available")
	ErrConcurrencyConflict  = errors.New("concurrent booking conflict")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("reservation not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
)
