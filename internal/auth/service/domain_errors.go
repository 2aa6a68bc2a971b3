package service

import (
	"net/http"

	commonerrors "github.com/realtyhub/backend/internal/common/errors"
)

var (
	// ErrInvalidCredentials is deliberately identical for unknown email and
	// wrong password so responses cannot be used for account enumeration.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Email already registered",
	)

	ErrEmailsTaken = commonerrors.NewDomainError(
		"EMAILS_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Some emails are already registered",
	)

	ErrDuplicateInput = commonerrors.NewDomainError(
		"DUPLICATE_INPUT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Duplicate emails in request",
	)

	ErrEmptyBatch = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Invalid input: users must be a non-empty array",
	)

	ErrMissingFields = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"All users must have fullName, email, address, and password",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)
)

func internalError(cause error) commonerrors.DomainError {
	return commonerrors.ErrInternalError.WithCause(cause)
}
