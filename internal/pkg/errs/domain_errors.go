package errs

import "errors"

// Error categories surfaced at the use-case boundary. Concrete errors are
// marked with one of these so the HTTP layer maps categories, not instances.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDuplicateSettlement = errors.New("duplicate settlement")
	ErrTimeout             = errors.New("timeout")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
