package assessments

import "errors"

var (
	ErrNotFound      = errors.New("assessment not found")
	ErrUserRequired  = errors.New("user id is required")
	ErrNotConfigured = errors.New("assessments service not configured")
)
