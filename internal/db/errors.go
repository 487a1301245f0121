package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")

	// Feedback errors
	ErrInvalidFeedback = errors.New("invalid feedback row")
)
