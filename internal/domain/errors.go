package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Todo errors
	ErrTodoNotFound = errors.New("todo not found")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrForbiddenField   = errors.New("not allowed to edit this todo")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid authentication token")

	// Validation errors
	ErrTitleRequired    = errors.New("title is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidCategory  = errors.New("invalid category")
)
