package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these so the HTTP
// layer can pick a status code with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// kindError attaches a kind to a specific message
func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

// Validation errors
var (
	ErrInvalidRole          = kindError(ErrInvalidInput, "invalid role")
	ErrInvalidPaymentMethod = kindError(ErrInvalidInput, "payment method must be Card or Bank Transfer")
	ErrInvalidAction        = kindError(ErrInvalidInput, "action must be approve or reject")
)

// Workflow errors
var (
	ErrCauseRejected      = kindError(ErrConflict, "cause was rejected and can no longer change")
	ErrWrongStage         = kindError(ErrConflict, "cause is not waiting on this gate")
	ErrAlreadyPublished   = kindError(ErrConflict, "cause is already published")
	ErrNotFullyApproved   = kindError(ErrPreconditionFailed, "cause is not fully approved")
	ErrStaleCause         = kindError(ErrConflict, "cause was modified by another request")
	ErrPublishHasNoReject = kindError(ErrInvalidInput, "publish only supports approve")
)
