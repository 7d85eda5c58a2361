package domain

import "errors"

// Domain errors - business rule violations.
// These errors are part of the domain language.
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountDeleted  = errors.New("account has been deleted")
	ErrHandleTaken     = errors.New("handle is already taken")

	// Name errors
	ErrNameRequired    = errors.New("name is required")
	ErrNameLength      = errors.New("name must be at most 50 characters")
	ErrBirthNameLength = errors.New("birth name must be at most 50 characters")

	// Mail address errors
	ErrMailRequired = errors.New("mail address is required")
	ErrMailInvalid  = errors.New("mail address format is invalid")

	// Image errors
	ErrImageCIDRequired  = errors.New("image CID is required")
	ErrImageBlobRequired = errors.New("image data is required")
)
