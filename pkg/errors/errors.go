package contacts_errors

import "errors"

// Common errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyExists    = errors.New("already exists")
	ErrRateLimited      = errors.New("rate limited")
	ErrMissingFile      = errors.New("missing file")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrTransformFailed  = errors.New("image transform failed")
	ErrRelocationFailed = errors.New("file relocation failed")
)
